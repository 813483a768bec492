package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
profile:
  goal: "Buy a home in 3-5 years"
  age: 31
  province: Ontario
  first_time_buyer: true
monthly_income: 6200
income_stability: stable
expenses:
  housing: 1800
  transport: 300
  utilities: 200
  groceries: 500
  other_fixed: 200
  discretionary: 600
debts:
  - name: Credit card
    balance: 4800
    apr: 19.99
    min_payment: 140
accounts:
  tfsa:
    room: 12000
  rrsp:
    room_available: "30,000"
emergency_fund_amount: 6000
current_monthly_savings: 300
`

const sampleJSON = `{
  "profile": {"goal": "Retire early", "age": 40},
  "monthly_income": 9000,
  "debts": [{"name": "Car loan", "balance": 15000, "interest_rate": 6.5, "minimum_payment": 310}]
}`

func TestParseYAMLIntake(t *testing.T) {
	parser := NewIntakeParser()
	intake, err := parser.Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "Buy a home in 3-5 years", intake.Profile.Goal)
	assert.True(t, intake.Profile.FirstTimeBuyer)
	assert.Equal(t, 6200, intake.MonthlyIncome)
	require.Len(t, intake.Debts, 1)
	assert.Equal(t, "Credit card", intake.Debts[0].Name)
	assert.Equal(t, 4800, intake.Debts[0].Balance)
	assert.Equal(t, "30,000", intake.Accounts.RRSP.RoomAvailable)
}

func TestParseJSONIntake(t *testing.T) {
	parser := NewIntakeParser()
	intake, err := parser.Parse([]byte(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, "Retire early", intake.Profile.Goal)
	require.Len(t, intake.Debts, 1)
	assert.Equal(t, "Car loan", intake.Debts[0].Name)
	assert.NotNil(t, intake.Debts[0].InterestRate, "alias spelling must survive decoding")
	assert.NotNil(t, intake.Debts[0].MinimumPayment)
}

func TestParseEmptyIntake(t *testing.T) {
	parser := NewIntakeParser()
	intake, err := parser.Parse([]byte("{}"))
	require.NoError(t, err, "an empty document is valid; defaults fill the gaps")
	assert.Empty(t, intake.Profile.Goal)
	assert.Nil(t, intake.MonthlyIncome)
}

func TestParseMalformedIntake(t *testing.T) {
	parser := NewIntakeParser()
	_, err := parser.Parse([]byte("profile: [unclosed"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse intake")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intake.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	parser := NewIntakeParser()
	intake, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6200, intake.MonthlyIncome)
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewIntakeParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
