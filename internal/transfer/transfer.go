// Package transfer parses money-movement command arguments of the shape
// "<amount> <from-kw> <source terms...> <to-kw> <destination terms...>"
// into a validated request against the account collection.
package transfer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/banksh/banksh/internal/bank"
	"github.com/banksh/banksh/internal/match"
)

// Request is a fully resolved money movement: exactly one source account,
// exactly one destination account, and a fixed or symbolic amount.
type Request struct {
	Source      bank.Account
	Destination bank.Account
	Options     bank.MoveOptions
}

// Parse scans tokens for an amount followed by keyword-separated source and
// destination search terms, then resolves each side to exactly one account.
// symbols, when non-nil, maps extra amount tokens to symbolic amounts the
// provider resolves itself. Every diagnostic is written to out; on failure
// Parse returns false after reporting the first failing validation.
func Parse(out io.Writer, tokens []string, fromKw, toKw string, symbols map[string]bank.Symbol, accounts []bank.Account) (*Request, bool) {
	var (
		opts       bank.MoveOptions
		haveAmount bool
		srcTerms   []string
		dstTerms   []string
		seenFrom   bool
		seenTo     bool
	)

	for _, tok := range tokens {
		switch {
		case tok == fromKw:
			// Pure separator, never part of a search term.
			seenFrom = true
		case tok == toKw:
			seenTo = true
		case !haveAmount && !seenFrom && !seenTo:
			if sym, ok := symbols[strings.ToLower(tok)]; ok {
				opts.Symbol = sym
				haveAmount = true
				continue
			}
			amount, err := decimal.NewFromString(strings.TrimPrefix(tok, "$"))
			if err != nil {
				fmt.Fprintf(out, "Invalid amount %q.\n", tok)
				continue
			}
			opts.Amount = amount
			haveAmount = true
		case seenTo:
			dstTerms = append(dstTerms, tok)
		default:
			srcTerms = append(srcTerms, tok)
		}
	}

	if len(dstTerms) == 0 {
		fmt.Fprintln(out, "Unable to parse destination account.")
		return nil, false
	}
	if !haveAmount {
		fmt.Fprintln(out, "Unable to parse currency amount.")
		return nil, false
	}
	if len(srcTerms) == 0 {
		fmt.Fprintln(out, "Unable to parse source account.")
		return nil, false
	}

	destination, ok := resolveOne(out, "destination", dstTerms, accounts)
	if !ok {
		return nil, false
	}
	source, ok := resolveOne(out, "source", srcTerms, accounts)
	if !ok {
		return nil, false
	}

	if source == destination {
		fmt.Fprintln(out, "Source and destination accounts must differ.")
		return nil, false
	}

	return &Request{Source: source, Destination: destination, Options: opts}, true
}

func resolveOne(out io.Writer, role string, terms []string, accounts []bank.Account) (bank.Account, bool) {
	matched := match.Search(terms, accounts, false)
	switch len(matched) {
	case 1:
		return matched[0], true
	case 0:
		fmt.Fprintf(out, "No accounts matched the %s %q.\n", role, strings.Join(terms, " "))
		return nil, false
	default:
		fmt.Fprintf(out, "Too many accounts matched the %s %q:\n", role, strings.Join(terms, " "))
		for _, a := range matched {
			fmt.Fprintf(out, "  %s\n", a.Name())
		}
		return nil, false
	}
}
