package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalJSONIsBareNumber(t *testing.T) {
	out, err := json.Marshal(struct {
		Qty Quantity `json:"qty"`
	}{Qty: MustDecimal("12.50")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"qty":12.5}`, string(out))
}

func TestDecimalAcceptsNumberOrString(t *testing.T) {
	var in struct {
		A *decimal.Decimal `json:"a"`
		B *decimal.Decimal `json:"b"`
		C *decimal.Decimal `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":100,"b":"5.25"}`), &in))

	assert.True(t, in.A.Equal(decimal.NewFromInt(100)))
	assert.True(t, in.B.Equal(MustDecimal("5.25")))
	assert.Nil(t, in.C)
}

func TestIsBlank(t *testing.T) {
	zero := decimal.Zero
	one := decimal.NewFromInt(1)

	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(&zero))
	assert.False(t, IsBlank(&one))
}

func TestInRange(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"100", true},
		{"0.125", true},
		{"1e30", true},
		{"1e-30", true},
		{"123456789012345678901234567890", true},
		{"1e31", false},
		{"1e-31", false},
		{"1e2000000", false},
		{"1234567890123456789012345678901", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(MustDecimal(tt.in)))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-01-05")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("2024-01-05T10:30:00+02:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 5, 8, 30, 0, 0, time.UTC), d)

	_, ok = ParseDate("05/01/2024")
	assert.False(t, ok)

	assert.True(t, DateKey("garbage").Before(DateKey("1970-01-01")))
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-03-09", Today(now))
}
