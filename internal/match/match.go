// Package match filters accounts by free-form search terms.
package match

import (
	"strings"

	"github.com/banksh/banksh/internal/bank"
)

// Search returns the accounts whose subject (name plus rewards program)
// contains the given terms, compared case-insensitively. With greedy false
// every term must match; with greedy true any one term suffices. No terms
// matches everything. Order is preserved from the input and no ranking is
// applied.
func Search(terms []string, accounts []bank.Account, greedy bool) []bank.Account {
	if len(terms) == 0 {
		out := make([]bank.Account, len(accounts))
		copy(out, accounts)
		return out
	}

	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
	}

	var out []bank.Account
	for _, a := range accounts {
		if matches(bank.Subject(a), lowered, greedy) {
			out = append(out, a)
		}
	}
	return out
}

func matches(subject string, terms []string, greedy bool) bool {
	for _, t := range terms {
		hit := strings.Contains(subject, t)
		if greedy && hit {
			return true
		}
		if !greedy && !hit {
			return false
		}
	}
	return !greedy
}
