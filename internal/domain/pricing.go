package domain

import "github.com/shopspring/decimal"

// Pricer turns a booking window into a price. Rate and currency are injected
// configuration so quote-time and charge-time computations cannot drift.
type Pricer struct {
	HourlyRate decimal.Decimal
	Currency   string
}

func NewPricer(hourlyRate decimal.Decimal, currency string) Pricer {
	return Pricer{
		HourlyRate: hourlyRate,
		Currency:   currency,
	}
}

type Price struct {
	Amount   decimal.Decimal
	Currency string
	Hours    int
}

// Quote prices a window at DurationHours * HourlyRate. Partial hours are
// billed as full hours.
func (p Pricer) Quote(period TimeRange) Price {
	hours := period.DurationHours()

	return Price{
		Amount:   p.HourlyRate.Mul(decimal.NewFromInt(int64(hours))),
		Currency: p.Currency,
		Hours:    hours,
	}
}

// AmountMinorUnits returns the amount in the currency's minor unit
// (paise, cents), as required by the payment provider.
func (p Price) AmountMinorUnits() int64 {
	return p.Amount.Mul(decimal.NewFromInt(100)).IntPart()
}
