package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	cases := []struct {
		name  string
		paid  decimal.Decimal
		total decimal.Decimal
		want  string
	}{
		{"zero paid", d("0"), d("1000"), StatusUnpaid},
		{"negative paid", d("-50"), d("1000"), StatusUnpaid},
		{"partial", d("400"), d("1000"), StatusPartial},
		{"one unit short", d("999.99"), d("1000"), StatusPartial},
		{"exact", d("1000"), d("1000"), StatusPaid},
		{"overpaid", d("1200"), d("1000"), StatusPaid},
		{"zero total zero paid", d("0"), d("0"), StatusUnpaid},
		{"zero total positive paid", d("10"), d("0"), StatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DerivePaymentStatus(tc.paid, tc.total))
		})
	}
}
