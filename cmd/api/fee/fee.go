package fee

import (
	"fmt"
	"strings"
)

// Method identifies how a transaction is paid. The set is closed:
// adding a method means touching the rate switch below.
type Method string

const (
	Debit  Method = "D"
	Credit Method = "C"
	Pix    Method = "P"
)

const (
	debitRate  = 0.03
	creditRate = 0.05
	pixRate    = 0.00
)

type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("invalid payment method %q, specify D (debit), C (credit) or P (pix)", e.Method)
}

// Calculator computes the fee charged on top of a transaction amount.
type Calculator interface {
	Fee(amount float64) (float64, error)
}

// Policy is a resolved fee rule: a method and its fixed rate.
type Policy struct {
	Method Method
	Rate   float64
}

func (p Policy) Fee(amount float64) (float64, error) {
	return amount * p.Rate, nil
}

// Resolve maps a payment method tag to its policy. Tags are matched
// case-insensitively; anything outside the closed set fails.
func Resolve(method string) (Policy, error) {
	switch Method(strings.ToUpper(method)) {
	case Debit:
		return Policy{Method: Debit, Rate: debitRate}, nil
	case Credit:
		return Policy{Method: Credit, Rate: creditRate}, nil
	case Pix:
		return Policy{Method: Pix, Rate: pixRate}, nil
	default:
		return Policy{}, &InvalidMethodError{Method: method}
	}
}
