package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// WeightVariancePercent is (actual - expected) / expected * 100 rounded to two places.
// A non-positive expected weight yields zero.
func WeightVariancePercent(expected, actual decimal.Decimal) decimal.Decimal {
	if !expected.IsPositive() {
		return decimal.Zero
	}
	return actual.Sub(expected).Mul(hundred).DivRound(expected, VARIANCE_DECIMAL_PLACES)
}

// ReportPeriod is the window covered by warehouse report stats
type ReportPeriod string

const (
	ReportPeriod7Days      ReportPeriod = "7d"
	ReportPeriod30Days     ReportPeriod = "30d"
	ReportPeriod90Days     ReportPeriod = "90d"
	ReportPeriodYearToDate ReportPeriod = "ytd"
)

// Start returns the first instant covered by the period, in UTC. An empty period means 30d.
func (p ReportPeriod) Start(now time.Time) (time.Time, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch p {
	case ReportPeriod7Days:
		return today.AddDate(0, 0, -7), nil
	case ReportPeriod30Days, "":
		return today.AddDate(0, 0, -30), nil
	case ReportPeriod90Days:
		return today.AddDate(0, 0, -90), nil
	case ReportPeriodYearToDate:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, NewValidationError("period", "must be one of 7d 30d 90d ytd")
	}
}
