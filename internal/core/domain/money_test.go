package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Money
		wantErr bool
	}{
		{name: "whole number", input: "500", want: 50000},
		{name: "two decimals", input: "500.00", want: 50000},
		{name: "one decimal", input: "0.5", want: 50},
		{name: "cents", input: "0.01", want: 1},
		{name: "negative", input: "-12.34", want: -1234},
		{name: "trailing zeros beyond scale", input: "1.2300", want: 123},
		{name: "three decimals rejected", input: "1.005", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "out of range", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseMoney(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_ExactArithmetic(t *testing.T) {
	// 0.1 + 0.2 is the classic float drift case.
	sum := domain.MustParseMoney("0.10").Add(domain.MustParseMoney("0.20"))
	assert.Equal(t, domain.MustParseMoney("0.30"), sum)

	balance := domain.MustParseMoney("1000.00")
	for i := 0; i < 1000; i++ {
		balance = balance.Sub(domain.MustParseMoney("0.01"))
	}
	assert.Equal(t, "990.00", balance.String())
}

func TestMoney_AddChecked(t *testing.T) {
	sum, err := domain.MustParseMoney("10.00").AddChecked(domain.MustParseMoney("-2.50"))
	require.NoError(t, err)
	assert.Equal(t, domain.MustParseMoney("7.50"), sum)

	sum, err = (domain.MaxMoney - 1).AddChecked(1)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxMoney, sum)

	tests := []struct {
		name string
		a, b domain.Money
	}{
		{name: "result above ceiling", a: domain.MaxMoney, b: 1},
		{name: "result below floor", a: -domain.MaxMoney, b: -1},
		{name: "operand out of range", a: 0, b: domain.MaxMoney + 1},
		{name: "min int64 operand", a: -1, b: domain.Money(math.MinInt64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.a.AddChecked(tt.b)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	// The ceiling round-trips through the NUMERIC representation.
	back, err := domain.MoneyFromDecimal(domain.MaxMoney.Decimal())
	require.NoError(t, err)
	assert.Equal(t, domain.MaxMoney, back)
}

func TestMoney_Formatting(t *testing.T) {
	assert.Equal(t, "750.00", domain.MustParseMoney("750").String())
	assert.Equal(t, "-0.05", domain.NewMoneyFromMinor(-5).String())
	assert.True(t, domain.MustParseMoney("12.34").Decimal().Equal(decimal.RequireFromString("12.34")))
	assert.Equal(t, domain.MustParseMoney("3.00"), domain.MustParseMoney("-3").Abs())
}

func TestMoney_JSON(t *testing.T) {
	var payload struct {
		FromString domain.Money `json:"fromString"`
		FromNumber domain.Money `json:"fromNumber"`
	}
	err := json.Unmarshal([]byte(`{"fromString":"100.25","fromNumber":750.5}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(10025), payload.FromString)
	assert.Equal(t, domain.Money(75050), payload.FromNumber)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fromString":"100.25","fromNumber":"750.50"}`, string(out))

	var bad domain.Money
	assert.Error(t, json.Unmarshal([]byte(`"1.001"`), &bad))
}
