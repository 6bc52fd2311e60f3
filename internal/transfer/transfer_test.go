package transfer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banksh/banksh/internal/bank"
)

type stubAccount struct {
	name    string
	rewards string
}

func (a *stubAccount) Name() string { return a.name }
func (a *stubAccount) RewardsProgram() string { return a.rewards }
func (a *stubAccount) Kind() bank.Kind { return bank.KindDebit }
func (a *stubAccount) Balance() (decimal.Decimal, error) { return decimal.Zero, nil }

func (a *stubAccount) Transactions(since, through time.Time, maxPages int) ([]bank.Transaction, error) {
	return nil, nil
}

func fixtures() []bank.Account {
	return []bank.Account{
		&stubAccount{name: "Premier Checking"},
		&stubAccount{name: "Savings"},
		&stubAccount{name: "Visa", rewards: "Freedom Rewards"},
	}
}

func parse(t *testing.T, tokens []string, symbols map[string]bank.Symbol) (*Request, bool, string) {
	t.Helper()
	var out strings.Builder
	req, ok := Parse(&out, tokens, "from", "to", symbols, fixtures())
	return req, ok, out.String()
}

func TestParseValidTransfer(t *testing.T) {
	req, ok, out := parse(t, []string{"25.00", "from", "checking", "to", "savings"}, nil)
	require.True(t, ok, out)
	assert.Empty(t, out)
	assert.Equal(t, "Premier Checking", req.Source.Name())
	assert.Equal(t, "Savings", req.Destination.Name())
	assert.True(t, req.Options.Amount.Equal(decimal.RequireFromString("25.00")))
	assert.Empty(t, req.Options.Symbol)
}

func TestParseDollarSignStripped(t *testing.T) {
	req, ok, _ := parse(t, []string{"$10", "from", "checking", "to", "savings"}, nil)
	require.True(t, ok)
	assert.True(t, req.Options.Amount.Equal(decimal.RequireFromString("10")))
}

func TestParseInvalidAmountReportsEachTokenThenFails(t *testing.T) {
	_, ok, out := parse(t, []string{"abc", "from", "checking", "to", "savings"}, nil)
	assert.False(t, ok)
	assert.Contains(t, out, `Invalid amount "abc".`)
	assert.Contains(t, out, "Unable to parse currency amount.")
}

func TestParseSecondAmountBecomesSearchTerm(t *testing.T) {
	// Once an amount is accepted, later numeric tokens are no longer
	// treated as amounts.
	req, ok, _ := parse(t, []string{"5", "premier", "from", "checking", "to", "savings"}, nil)
	require.True(t, ok)
	assert.Equal(t, "Premier Checking", req.Source.Name())
	assert.True(t, req.Options.Amount.Equal(decimal.RequireFromString("5")))
}

func TestParseMissingDestination(t *testing.T) {
	_, ok, out := parse(t, []string{"25", "from", "checking"}, nil)
	assert.False(t, ok)
	assert.Contains(t, out, "Unable to parse destination account.")
}

func TestParseMissingSource(t *testing.T) {
	_, ok, out := parse(t, []string{"25", "to", "savings"}, nil)
	assert.False(t, ok)
	assert.Contains(t, out, "Unable to parse source account.")
}

func TestParseNoDestinationMatch(t *testing.T) {
	_, ok, out := parse(t, []string{"25", "from", "checking", "to", "xyzzy"}, nil)
	assert.False(t, ok)
	assert.Contains(t, out, `No accounts matched the destination "xyzzy".`)
}

func TestParseAmbiguousSourceListsCandidates(t *testing.T) {
	_, ok, out := parse(t, []string{"25", "from", "s", "to", "visa"}, nil)
	assert.False(t, ok)
	assert.Contains(t, out, "Too many accounts matched the source")
	assert.Contains(t, out, "Savings")
	assert.Contains(t, out, "Visa")
}

func TestParseSameAccountRejected(t *testing.T) {
	_, ok, out := parse(t, []string{"25", "from", "checking", "to", "premier"}, nil)
	assert.False(t, ok)
	assert.Contains(t, out, "Source and destination accounts must differ.")
}

func TestParseSymbolicAmount(t *testing.T) {
	symbols := map[string]bank.Symbol{
		"statement": bank.PayStatementBalance,
		"minimum":   bank.PayMinimum,
		"full":      bank.PayCurrentBalance,
	}

	req, ok, out := parse(t, []string{"statement", "from", "checking", "to", "visa"}, symbols)
	require.True(t, ok, out)
	assert.Equal(t, bank.PayStatementBalance, req.Options.Symbol)
	assert.Equal(t, "Visa", req.Destination.Name())

	// Symbolic tokens are rejected when no symbol table is supplied.
	_, ok, out = parse(t, []string{"statement", "from", "checking", "to", "visa"}, nil)
	assert.False(t, ok)
	assert.Contains(t, out, `Invalid amount "statement".`)
}
