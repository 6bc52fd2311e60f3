package match

import (
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

func TestSearchNoTermsReturnsAllInOrder(t *testing.T) {
	accts := fixtures()
	got := Search(nil, accts, false)
	require.Len(t, got, len(accts))
	for i := range accts {
		assert.Same(t, accts[i], got[i])
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	accts := fixtures()

	got := Search([]string{"CHECK"}, accts, false)
	require.Len(t, got, 1)
	assert.Equal(t, "Premier Checking", got[0].Name())
}

func TestSearchMatchesRewardsProgram(t *testing.T) {
	accts := fixtures()

	got := Search([]string{"freedom"}, accts, false)
	require.Len(t, got, 1)
	assert.Equal(t, "Visa", got[0].Name())
}

func TestSearchAndVersusOr(t *testing.T) {
	accts := fixtures()

	// Both terms must match by default.
	assert.Empty(t, Search([]string{"checking", "savings"}, accts, false))

	// Greedy matches either.
	got := Search([]string{"checking", "savings"}, accts, true)
	require.Len(t, got, 2)
	assert.Equal(t, "Premier Checking", got[0].Name())
	assert.Equal(t, "Savings", got[1].Name())
}

func TestSearchAndIsSubsetOfOr(t *testing.T) {
	accts := fixtures()
	termSets := [][]string{
		nil,
		{"a"},
		{"checking"},
		{"visa", "rewards"},
		{"checking", "xyzzy"},
	}

	for _, terms := range termSets {
		strict := Search(terms, accts, false)
		greedy := Search(terms, accts, true)
		for _, a := range strict {
			assert.Contains(t, greedy, a, "terms %v", terms)
		}
	}
}

func TestSearchNoMatch(t *testing.T) {
	assert.Empty(t, Search([]string{"xyzzy"}, fixtures(), true))
}
