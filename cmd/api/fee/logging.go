package fee

import (
	log "github.com/sirupsen/logrus"
)

type loggingCalculator struct {
	next Calculator
}

// WithLogging decorates a calculator with before/after log events.
// The computed fee and any error pass through unchanged.
func WithLogging(c Calculator) Calculator {
	return &loggingCalculator{next: c}
}

func (lc *loggingCalculator) Fee(amount float64) (float64, error) {
	log.WithFields(log.Fields{"amount": amount}).Info("computing fee")

	fee, err := lc.next.Fee(amount)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{"amount": amount, "fee": fee}).Info("fee computed")
	return fee, nil
}
