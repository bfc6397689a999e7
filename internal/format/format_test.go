package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		cents    int64
		currency string
		want     string
	}{
		{0, "EUR", "€0.00"},
		{5, "EUR", "€0.05"},
		{123456, "EUR", "€1,234.56"},
		{100000000, "USD", "$1,000,000.00"},
		{-2550, "GBP", "-£25.50"},
		{999, "chf", "CHF 9.99"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.cents, tt.currency))
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "20", want: 2000},
		{input: "1,250.5", want: 125050},
		{input: " €12.34 ", want: 1234},
		{input: "0.99", want: 99},
		{input: "", wantErr: true},
		{input: "12.345", wantErr: true},
		{input: "12.", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(5, 0))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 100, Percent(12, 10))
}

func TestLabelAndBadge(t *testing.T) {
	assert.Equal(t, "Already checked in", Label("already_checked_in"))
	assert.Equal(t, "", Label(""))
	assert.Equal(t, "badge-green", Badge("paid"))
	assert.Equal(t, "badge-yellow", Badge("pending"))
	assert.Equal(t, "badge-red", Badge("refunded"))
	assert.Equal(t, "badge-gray", Badge("something-else"))
}

func TestMaskIBAN(t *testing.T) {
	tests := []struct {
		iban string
		want string
	}{
		{iban: "DE89 3704 0044 0532 0130 00", want: "•••• 3000"},
		{iban: "GB29NW", want: "•••• 29NW"},
		{iban: "NL123", want: "•••• L123"},
		{iban: "NL12", want: "NL12"},
	}
	for _, tt := range tests {
		got := MaskIBAN(tt.iban)
		assert.Equal(t, tt.want, got, tt.iban)
		if len(tt.iban) > 4 {
			assert.NotContains(t, got, tt.iban[:2], "country code is hidden")
		}
	}
}

func TestDates(t *testing.T) {
	ts := time.Date(2026, 11, 14, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, "Sat, 14 Nov 2026", Date(ts))
	assert.Equal(t, "14 Nov 2026, 19:30", DateTime(ts))
	assert.Equal(t, "—", Date(time.Time{}))
}

func TestFuncs_Deref(t *testing.T) {
	deref := Funcs("EUR")["deref"].(func(*time.Time) time.Time)
	ts := time.Date(2026, 11, 14, 19, 30, 0, 0, time.UTC)
	assert.True(t, deref(nil).IsZero())
	assert.Equal(t, ts, deref(&ts))

	money := Funcs("GBP")["money"].(func(int64) string)
	assert.Equal(t, "£12.50", money(1250))
}
