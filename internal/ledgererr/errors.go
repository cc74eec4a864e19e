// Package ledgererr defines the typed errors raised by the ledger engine.
//
// Every domain failure is an *Error carrying a Kind and the identifier it
// concerns. Transport adapters translate the Kind; the engine never builds
// user-facing text.
package ledgererr

import (
	"errors"
	"fmt"
)

// Kind enumerates the domain failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindAccountNotFound
	KindNoAccountsExist
	KindInsufficientFunds
	KindPositiveBalance
	KindUnknownRatePair
	KindInvalidAmount
	KindUnknownCurrency
	KindSameAccount
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindAccountNotFound:   "account not found",
	KindNoAccountsExist:   "no accounts exist",
	KindInsufficientFunds: "insufficient funds",
	KindPositiveBalance:   "non-zero balance",
	KindUnknownRatePair:   "unknown rate pair",
	KindInvalidAmount:     "invalid amount",
	KindUnknownCurrency:   "unknown currency",
	KindSameAccount:       "same account",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a domain error. Subject is the offending identifier: an account
// number, a currency pair, an amount.
type Error struct {
	Kind    Kind
	Subject string
}

// New returns an *Error of the given kind.
func New(kind Kind, subject string) *Error {
	return &Error{Kind: kind, Subject: subject}
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Subject
}

// Is matches any *Error of the same kind, so errors.Is(err, New(KindX, ""))
// works regardless of subject.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
