package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/account"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/rates"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

const defaultShutdownTimeout = 10 * time.Second

type Rest struct {
	Logger          *logrus.Logger
	Port            string
	Service         *service.Service
	ShutdownTimeout time.Duration
}

// Handler builds the router: /status plus every huma operation.
func (r *Rest) Handler() http.Handler {
	response.Install()

	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	config := huma.DefaultConfig("Ledger Server", "1.0.0")
	// Responses are plain envelopes; skip the $schema link field.
	config.CreateHooks = nil
	api := humago.New(mux, config)
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	account.NewOpenAccountHandler(r.Service.Account).Register(api)
	account.NewDeleteAccountHandler(r.Service.Account).Register(api)
	account.NewGetBalanceHandler(r.Service.Account).Register(api)
	account.NewListAccountsHandler(r.Service.Account).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Account).Register(api)
	transaction.NewDepositHandler(r.Service.Transaction).Register(api)
	transaction.NewWithdrawHandler(r.Service.Transaction).Register(api)
	transaction.NewTransferHandler(r.Service.Transaction).Register(api)
	rates.NewListRatesHandler(r.Service.Rates).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then shuts the server down
// gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	timeout := r.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
