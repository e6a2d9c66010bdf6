package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"simple", 1234.56, "R$ 1.234,56"},
		{"million", 1000000, "R$ 1.000.000,00"},
		{"zero", 0, "R$ 0,00"},
		{"small", 0.5, "R$ 0,50"},
		{"negative", -1234.5, "R$ -1.234,50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.value))
		})
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1.234,57", Number(1234.567, 2))
	assert.Equal(t, "1.000.000", Number(1000000, 0))
	assert.Equal(t, "12,3", Number(12.3, 1))
	assert.Equal(t, "123", Number(123, 0))
}

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain date", "2024-03-15", "15/03/2024", false},
		{"timestamp", "2024-03-15T10:30:00", "15/03/2024", false},
		{"zulu", "2024-12-01T00:00:00Z", "01/12/2024", false},
		{"offset", "2024-12-01T08:00:00+03:00", "01/12/2024", false},
		{"garbage", "not-a-date", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "-", DateOrPlaceholder("bogus"))
	assert.Equal(t, "15/03/2024", DateOrPlaceholder("2024-03-15"))
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"with symbol", "R$ 1.234,56", 1234.56, false},
		{"bare", "1.234,56", 1234.56, false},
		{"no thousands", "99,90", 99.90, false},
		{"integer", "1500", 1500, false},
		{"empty", "", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
