package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExpensesEssentials(t *testing.T) {
	e := Expenses{
		Housing:       decimal.NewFromInt(1800),
		Transport:     decimal.NewFromInt(300),
		Utilities:     decimal.NewFromInt(200),
		Groceries:     decimal.NewFromInt(500),
		OtherFixed:    decimal.NewFromInt(200),
		Discretionary: decimal.NewFromInt(600),
	}
	assert.True(t, e.Essentials().Equal(decimal.NewFromInt(3000)),
		"discretionary is not an essential: got %s", e.Essentials())
}

func TestAccountsRegisteredBalance(t *testing.T) {
	a := Accounts{
		TFSA: Account{Balance: decimal.NewFromInt(5000)},
		RRSP: Account{Balance: decimal.NewFromInt(12000)},
		FHSA: Account{Balance: decimal.NewFromInt(3000)},
	}
	assert.True(t, a.RegisteredBalance().Equal(decimal.NewFromInt(20000)))
	assert.True(t, Accounts{}.RegisteredBalance().IsZero())
}

func TestProfileHasDebt(t *testing.T) {
	p := Profile{}
	assert.False(t, p.HasDebt())

	p.Debts = []Debt{{Name: "Paid", Balance: decimal.Zero}}
	assert.False(t, p.HasDebt(), "zero balances do not count")

	p.Debts = append(p.Debts, Debt{Name: "Card", Balance: decimal.NewFromInt(100)})
	assert.True(t, p.HasDebt())
}
