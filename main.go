package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Fatal("godotenv.Load")
		return
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Fatal("logging.SetLevel")
		return
	}
	logger.Info("ledger-server starting")
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.Debug(spew.Sdump(envConfig))
	}

	rates, err := loadRates(envConfig.FXRatesFile)
	if err != nil {
		logger.WithError(err).WithField("file", envConfig.FXRatesFile).Fatal("currency.LoadTable")
		return
	}
	logger.WithField("pairs", len(rates.Pairs())).Info("conversion rates loaded")

	store := storage.NewStorage()
	op := operator.NewOperatorDelegator(store, envConfig.Workers, logger)
	op.Start()
	defer op.Stop()

	svc := service.NewService(store, op, rates)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		httpRest := api.Rest{
			Logger:          logger,
			Port:            envConfig.Port,
			Service:         svc,
			ShutdownTimeout: envConfig.ShutdownTimeout,
		}
		return httpRest.Serve(ctx)
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("ledger-server shutting down")
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("ledger-server stopped")
		return
	}
	logger.Info("ledger-server stopped")
}

func loadRates(path string) (*currency.Table, error) {
	if path == "" {
		return currency.DefaultTable(), nil
	}
	return currency.LoadTable(path)
}
