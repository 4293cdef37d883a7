package payflow

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned for input that is not a positive whole number of rupees.
var ErrInvalidAmount = errors.New("please enter a valid amount greater than 0")

// ParseAmount parses user input as a positive whole rupee amount.
// Surrounding space and a leading ₹ are accepted; anything else is rejected.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "₹"))
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidAmount
	}
	return n, nil
}
