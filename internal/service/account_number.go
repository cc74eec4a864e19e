package service

import (
	"math/rand/v2"
	"strconv"
)

const (
	accountNumberMin   = 10_000_000
	accountNumberRange = 90_000_000
)

// randomAccountNumber returns an 8-digit account number without a leading
// zero.
func randomAccountNumber() string {
	return strconv.Itoa(accountNumberMin + rand.IntN(accountNumberRange))
}
