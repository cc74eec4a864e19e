// Package response defines the {statusCode, message, data} envelope used by
// every v1 endpoint and maps ledger errors onto it.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledgererr"
)

const internalErrorMessage = "Internal server error"

// Envelope wraps a successful response payload.
type Envelope[T any] struct {
	StatusCode int    `json:"statusCode" doc:"HTTP status code"`
	Message    string `json:"message" doc:"Human readable outcome"`
	Data       T      `json:"data" doc:"Response payload"`
}

// Empty is a successful response with no payload.
type Empty struct {
	StatusCode int    `json:"statusCode" doc:"HTTP status code"`
	Message    string `json:"message" doc:"Human readable outcome"`
}

// OK builds a 200 envelope around data.
func OK[T any](message string, data T) Envelope[T] {
	return Envelope[T]{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	}
}

// Done builds a 200 response without data.
func Done(message string) Empty {
	return Empty{StatusCode: http.StatusOK, Message: message}
}

// Error is the envelope written for every failed request. It carries no
// data.
type Error struct {
	StatusCode int    `json:"statusCode" doc:"HTTP status code"`
	Message    string `json:"message" doc:"Human readable error"`
	err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.StatusCode
}

func (e *Error) Unwrap() error {
	return e.err
}

// Install replaces huma's default error constructor so that framework
// errors, such as request validation failures, use the same envelope.
func Install() {
	huma.NewError = newError
}

func newError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	if status >= http.StatusInternalServerError {
		msg = internalErrorMessage
	}
	return &Error{
		StatusCode: status,
		Message:    msg,
		err:        errors.Join(errs...),
	}
}

// FromError translates err into the status and message the API returns
// for it. Anything that is not a ledger error is an internal error.
func FromError(err error) *Error {
	var statusErr *Error
	if errors.As(err, &statusErr) {
		return statusErr
	}

	var ledgerErr *ledgererr.Error
	if !errors.As(err, &ledgerErr) {
		return &Error{StatusCode: http.StatusInternalServerError, Message: internalErrorMessage, err: err}
	}

	status, message := describe(ledgerErr)
	return &Error{StatusCode: status, Message: message, err: err}
}

func describe(err *ledgererr.Error) (int, string) {
	switch err.Kind {
	case ledgererr.KindAccountNotFound:
		return http.StatusNotFound, fmt.Sprintf("Account not found with no: %s", err.Subject)
	case ledgererr.KindNoAccountsExist:
		return http.StatusNotFound, "No account found. Please create a new one."
	case ledgererr.KindInsufficientFunds:
		return http.StatusBadRequest, fmt.Sprintf("Insufficient funds for account no: %s", err.Subject)
	case ledgererr.KindPositiveBalance:
		return http.StatusBadRequest, fmt.Sprintf("Cannot delete non-zero balance for account no: %s. Please empty account first.", err.Subject)
	case ledgererr.KindUnknownRatePair:
		return http.StatusBadRequest, fmt.Sprintf("No conversion rate for %s", err.Subject)
	case ledgererr.KindInvalidAmount:
		return http.StatusBadRequest, fmt.Sprintf("Invalid amount: %s", err.Subject)
	case ledgererr.KindUnknownCurrency:
		return http.StatusBadRequest, fmt.Sprintf("Unknown currency: %s", err.Subject)
	case ledgererr.KindSameAccount:
		return http.StatusBadRequest, fmt.Sprintf("Cannot transfer to the same account: %s", err.Subject)
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
