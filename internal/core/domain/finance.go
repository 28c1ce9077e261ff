package domain

import (
	"math"
	"strings"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is used when a record carries no currency code.
const DefaultCurrency = "NGN"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
	"02/01/2006",
}

// ParseDate parses the date formats the API and the signup form produce.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, zerr.With(zerr.New("unrecognised date"), "value", s)
}

// AgeOn returns the completed years between dob and now.
func AgeOn(dob, now time.Time) int {
	if now.Before(dob) {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// PercentChange returns the change from a to b in percent. It is zero when a is zero.
func PercentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

// CompoundInterest returns the future value of principal after years at annualRatePct,
// compounded periodsPerYear times a year. A non-positive period count compounds yearly.
func CompoundInterest(principal, annualRatePct, years float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		periodsPerYear = 1
	}
	n := float64(periodsPerYear)
	return principal * math.Pow(1+annualRatePct/100/n, n*years)
}

// SimpleReturn returns the interest earned on principal over days at annualRatePct,
// on a 365 day year.
func SimpleReturn(principal, annualRatePct float64, days int) float64 {
	return principal * annualRatePct / 100 * float64(days) / 365
}

// FormatMoney renders an amount with its currency symbol and grouping, e.g. "₦ 1,250.00".
// Unknown currency codes fall back to DefaultCurrency.
func FormatMoney(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO(DefaultCurrency)
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}
