package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/core/domain"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"1990-03-14", "14/03/1990", "1990-03-14T00:00:00Z", " 1990-03-14 "} {
		got, err := domain.ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := domain.ParseDate("March 14th")
	assert.Error(t, err)
}

func TestAgeOn(t *testing.T) {
	t.Parallel()

	dob := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 17, domain.AgeOn(dob, time.Date(2018, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18, domain.AgeOn(dob, time.Date(2018, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, domain.AgeOn(dob, time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestReturns(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 25.0, domain.PercentChange(1000, 1250), 1e-9)
	assert.Zero(t, domain.PercentChange(0, 1250))
	assert.InDelta(t, 1102.5, domain.CompoundInterest(1000, 10, 1, 2), 1e-9)
	assert.InDelta(t, 1100.0, domain.CompoundInterest(1000, 10, 1, 0), 1e-9)
	assert.InDelta(t, 20.0, domain.SimpleReturn(1000, 10, 73), 1e-9)
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	out := domain.FormatMoney(1250, "USD")
	assert.Contains(t, out, "$")
	assert.Contains(t, out, "1,250")

	fallback := domain.FormatMoney(10, "not-a-code")
	assert.True(t, strings.Contains(fallback, "NGN") || strings.Contains(fallback, "₦"), fallback)
}

func TestPortfolio_Returns(t *testing.T) {
	t.Parallel()

	p := domain.Portfolio{TotalInvested: 200000, CurrentValue: 230000}
	assert.InDelta(t, 30000.0, p.Returns(), 1e-9)
	assert.InDelta(t, 15.0, p.ReturnPercent(), 1e-9)
}
