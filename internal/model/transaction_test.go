package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"income", KindIncome, false},
		{"expense", KindExpense, false},
		{"Income", "", true},
		{"transfer", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidKind, "ParseKind(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseKind(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestTransactionSigned(t *testing.T) {
	in := Transaction{Kind: KindIncome, Amount: decimal.NewFromInt(500)}
	out := Transaction{Kind: KindExpense, Amount: decimal.NewFromInt(200)}

	assert.True(t, in.Signed().Equal(decimal.NewFromInt(500)))
	assert.True(t, out.Signed().Equal(decimal.NewFromInt(-200)))
}

func TestTransactionInMonth(t *testing.T) {
	txn := Transaction{Date: Date(2025, 8, 31)}

	assert.True(t, txn.InMonth(2025, 8))
	assert.False(t, txn.InMonth(2025, 9))
	assert.False(t, txn.InMonth(2024, 8))
}
