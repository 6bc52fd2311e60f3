// Package bank defines the boundary with the account provider: the
// accounts and transactions the shell works over, and the money-movement
// operations it can submit. Implementations own authentication, retrieval,
// and persistence; the shell only holds transient references per command.
package bank

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates account behavior.
type Kind string

const (
	// KindDebit accounts carry an available balance and can originate
	// transfers and payments.
	KindDebit Kind = "debit"
	// KindCredit accounts carry a current statement balance and receive
	// payments.
	KindCredit Kind = "credit"
)

// TransactionType tags a transaction's posting state.
type TransactionType string

const (
	TransactionPosted  TransactionType = "Posted"
	TransactionPending TransactionType = "Pending"
)

// Transaction is one ledger line on an account. A zero Date means the
// transaction has not posted yet.
type Transaction struct {
	Name   string
	Amount decimal.Decimal
	Date   time.Time
	Type   TransactionType
}

// Pending reports whether the transaction has not posted.
func (t Transaction) Pending() bool {
	return t.Type == TransactionPending || t.Date.IsZero()
}

// Account is a single account exposed by the provider.
type Account interface {
	Name() string

	// RewardsProgram returns the rewards-program label, or "" when the
	// account has none.
	RewardsProgram() string

	Kind() Kind

	// Balance returns the account's signed contribution to the net
	// position: available balance for debit accounts, the negated
	// (pending-adjusted) current balance for credit accounts.
	Balance() (decimal.Decimal, error)

	// Transactions enumerates transactions, newest last. A zero since or
	// through leaves that side of the window unbounded. maxPages > 0
	// limits the request to the most recent maxPages pages.
	Transactions(since, through time.Time, maxPages int) ([]Transaction, error)
}

// DebitDetail exposes the debit-specific balance field.
type DebitDetail interface {
	AvailableBalance() (decimal.Decimal, error)
}

// CreditDetail exposes the credit-specific balance fields. The symbolic
// payment amounts resolve against these.
type CreditDetail interface {
	CurrentBalance() (decimal.Decimal, error)
	StatementBalance() (decimal.Decimal, error)
	MinimumDue() (decimal.Decimal, error)
}

// Subject is the string an account is searched by: the display name joined
// with the rewards-program label when present, lower-cased.
func Subject(a Account) string {
	s := a.Name()
	if rp := a.RewardsProgram(); rp != "" {
		s += " " + rp
	}
	return strings.ToLower(s)
}

// Symbol names a payment amount the provider resolves at submission time.
type Symbol string

const (
	PayStatementBalance Symbol = "statement balance"
	PayMinimum          Symbol = "minimum payment"
	PayCurrentBalance   Symbol = "current balance"
)

// MoveOptions carries the amount of a transfer or payment. When Symbol is
// set it takes precedence over Amount.
type MoveOptions struct {
	Amount decimal.Decimal
	Symbol Symbol
}

// Describe renders the amount for confirmation lines: either the fixed
// decimal or the symbolic amount's name.
func (o MoveOptions) Describe() string {
	if o.Symbol != "" {
		return string(o.Symbol)
	}
	return "$" + o.Amount.StringFixed(2)
}

// Provider is the account-access collaborator. Calls are blocking; the
// shell issues at most one at a time.
type Provider interface {
	// Accounts returns the full account collection in provider order.
	Accounts() ([]Account, error)

	// Transfer moves money between two debit accounts and returns the
	// amount actually submitted.
	Transfer(source, destination Account, opts MoveOptions) (decimal.Decimal, error)

	// Pay pays a credit account from a debit account. The amount may be
	// symbolic, in which case the provider resolves it. Returns the
	// amount actually submitted.
	Pay(source, destination Account, opts MoveOptions) (decimal.Decimal, error)
}

// OTPMethod selects how the provider delivers a one-time passcode.
type OTPMethod string

const (
	OTPEmail OTPMethod = "email"
	OTPCall  OTPMethod = "call"
	OTPText  OTPMethod = "text"
)

// ParseOTPMethod validates a configured delivery method. An empty value
// selects the provider default.
func ParseOTPMethod(s string) (OTPMethod, error) {
	switch m := OTPMethod(strings.ToLower(s)); m {
	case "", OTPEmail, OTPCall, OTPText:
		return m, nil
	default:
		return "", fmt.Errorf("unrecognized one-time-passcode delivery method %q (want email, call, or text)", s)
	}
}

// Credentials authenticate a provider session.
type Credentials struct {
	Username string
	Password string
	OTP      OTPMethod
}
