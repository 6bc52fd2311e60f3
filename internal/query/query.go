// Package query resolves the argument list of a transaction listing into a
// concrete filter and runs it against the matched accounts.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banksh/banksh/internal/bank"
	"github.com/banksh/banksh/internal/match"
)

// Resolver turns a date phrase into a calendar date.
type Resolver func(text string) (time.Time, error)

// Filter is the parsed form of a transactions command. Zero times leave
// that side of the date range unbounded; nil amounts leave that bound open.
type Filter struct {
	Terms    []string
	Since    time.Time
	Through  time.Time
	Min      *decimal.Decimal
	Max      *decimal.Decimal
	Contains string
}

// ParseArgs partitions an argument list into search terms and recognized
// prefixed filters. from:/since: set the range start, through:/to: the
// range end, min:/max: the amount bounds, contains: a substring filter.
// Everything else is a search term. Date phrases go through resolve.
func ParseArgs(args []string, resolve Resolver) (Filter, error) {
	var f Filter
	for _, arg := range args {
		prefix, value, ok := strings.Cut(arg, ":")
		if !ok {
			f.Terms = append(f.Terms, arg)
			continue
		}

		switch strings.ToLower(prefix) {
		case "from", "since":
			day, err := resolve(value)
			if err != nil {
				return Filter{}, err
			}
			f.Since = day
		case "through", "to":
			day, err := resolve(value)
			if err != nil {
				return Filter{}, err
			}
			f.Through = day
		case "min", "max":
			amount, err := decimal.NewFromString(strings.TrimPrefix(value, "$"))
			if err != nil {
				return Filter{}, fmt.Errorf("invalid amount %q", value)
			}
			if strings.EqualFold(prefix, "min") {
				f.Min = &amount
			} else {
				f.Max = &amount
			}
		case "contains":
			f.Contains = strings.ToLower(value)
		default:
			f.Terms = append(f.Terms, arg)
		}
	}
	return f, nil
}

func (f Filter) keep(t bank.Transaction) bool {
	if f.Min != nil && t.Amount.LessThan(*f.Min) {
		return false
	}
	if f.Max != nil && t.Amount.GreaterThan(*f.Max) {
		return false
	}
	if f.Contains != "" && !strings.Contains(strings.ToLower(t.Name), f.Contains) {
		return false
	}
	return true
}

// Run matches accounts by the filter's terms (any term suffices), requests
// each matched account's transactions bounded by the date range, applies
// the amount and substring filters, and merges the results sorted ascending
// by date. Transactions with no date order as "now", so pending activity
// lands at the end.
func Run(f Filter, accounts []bank.Account) ([]bank.Transaction, error) {
	matched := match.Search(f.Terms, accounts, true)

	var all []bank.Transaction
	for _, a := range matched {
		txns, err := a.Transactions(f.Since, f.Through, 0)
		if err != nil {
			return nil, fmt.Errorf("fetching transactions for %s: %w", a.Name(), err)
		}
		for _, t := range txns {
			if f.keep(t) {
				all = append(all, t)
			}
		}
	}

	now := time.Now()
	at := func(t bank.Transaction) time.Time {
		if t.Date.IsZero() {
			return now
		}
		return t.Date
	}
	sort.SliceStable(all, func(i, j int) bool {
		return at(all[i]).Before(at(all[j]))
	})
	return all, nil
}

// FormatLine renders one transaction as a fixed-width output line.
func FormatLine(t bank.Transaction) string {
	day := "Pending"
	if !t.Date.IsZero() {
		day = t.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%-40s  %-10s  %12s", t.Name, day, t.Amount.StringFixed(2))
}
