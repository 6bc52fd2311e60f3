// Package localbank implements the account-provider boundary over a YAML
// ledger file. It stands in for a networked banking session: it owns the
// account collection, balances, transaction histories, and money movement,
// persisting every mutation back to the ledger.
package localbank

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/banksh/banksh/internal/bank"
	"github.com/banksh/banksh/internal/dates"
)

// pageSize is the number of transactions per page for page-bounded
// requests.
const pageSize = 25

const dateFormat = "2006-01-02"

// ledgerZone is the zone ledger dates are interpreted in. It matches the
// reference zone date phrases resolve against.
var ledgerZone = loadLedgerZone()

func loadLedgerZone() *time.Location {
	loc, err := time.LoadLocation(dates.Zone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Provider is a bank.Provider backed by a ledger file.
type Provider struct {
	path     string
	accounts []*Account
}

// Account is one ledger account.
type Account struct {
	provider *Provider

	name    string
	rewards string
	kind    bank.Kind

	available decimal.Decimal // debit: available balance
	current   decimal.Decimal // credit: current statement balance (positive = owed)
	statement decimal.Decimal // credit: last statement balance
	minimum   decimal.Decimal // credit: minimum payment due

	txns []bank.Transaction // oldest first
}

type ledgerFile struct {
	Accounts []accountRecord `yaml:"accounts"`
}

type accountRecord struct {
	Name             string              `yaml:"name"`
	Kind             string              `yaml:"kind"`
	RewardsProgram   string              `yaml:"rewards_program,omitempty"`
	AvailableBalance string              `yaml:"available_balance,omitempty"`
	CurrentBalance   string              `yaml:"current_balance,omitempty"`
	StatementBalance string              `yaml:"statement_balance,omitempty"`
	MinimumDue       string              `yaml:"minimum_due,omitempty"`
	Transactions     []transactionRecord `yaml:"transactions,omitempty"`
}

type transactionRecord struct {
	Name    string `yaml:"name"`
	Amount  string `yaml:"amount"`
	Date    string `yaml:"date,omitempty"`
	Pending bool   `yaml:"pending,omitempty"`
}

// Open authenticates a session against the ledger at path. The credentials
// must carry a username and password; the one-time-passcode method has
// already been validated by the caller.
func Open(path string, creds bank.Credentials) (*Provider, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, errors.New("username and password are required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	var lf ledgerFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing ledger: %w", err)
	}

	p := &Provider{path: path}
	for _, rec := range lf.Accounts {
		a, err := p.buildAccount(rec)
		if err != nil {
			return nil, err
		}
		p.accounts = append(p.accounts, a)
	}
	return p, nil
}

func (p *Provider) buildAccount(rec accountRecord) (*Account, error) {
	kind := bank.Kind(rec.Kind)
	if kind != bank.KindDebit && kind != bank.KindCredit {
		return nil, fmt.Errorf("account %q: unknown kind %q", rec.Name, rec.Kind)
	}

	a := &Account{provider: p, name: rec.Name, rewards: rec.RewardsProgram, kind: kind}

	var err error
	if a.available, err = amount(rec.AvailableBalance, "available_balance", rec.Name); err != nil {
		return nil, err
	}
	if a.current, err = amount(rec.CurrentBalance, "current_balance", rec.Name); err != nil {
		return nil, err
	}
	if a.statement, err = amount(rec.StatementBalance, "statement_balance", rec.Name); err != nil {
		return nil, err
	}
	if a.minimum, err = amount(rec.MinimumDue, "minimum_due", rec.Name); err != nil {
		return nil, err
	}

	for _, tr := range rec.Transactions {
		t := bank.Transaction{Name: tr.Name, Type: bank.TransactionPosted}
		if t.Amount, err = amount(tr.Amount, "transaction amount", rec.Name); err != nil {
			return nil, err
		}
		if tr.Pending || tr.Date == "" {
			t.Type = bank.TransactionPending
		} else {
			if t.Date, err = time.ParseInLocation(dateFormat, tr.Date, ledgerZone); err != nil {
				return nil, fmt.Errorf("account %q: invalid transaction date %q", rec.Name, tr.Date)
			}
		}
		a.txns = append(a.txns, t)
	}
	return a, nil
}

func amount(s, field, account string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("account %q: invalid %s %q", account, field, s)
	}
	return d, nil
}

// Accounts returns the account collection in ledger order.
func (p *Provider) Accounts() ([]bank.Account, error) {
	out := make([]bank.Account, len(p.accounts))
	for i, a := range p.accounts {
		out[i] = a
	}
	return out, nil
}

func (a *Account) Name() string           { return a.name }
func (a *Account) RewardsProgram() string { return a.rewards }
func (a *Account) Kind() bank.Kind        { return a.kind }

// Balance returns the signed net-position contribution: the available
// balance for debit accounts, or the negated pending-adjusted current
// balance for credit accounts. The pending adjustment scans one page of
// recent activity; amounts are signed from the holder's view, so a pending
// charge (negative) increases what is owed.
func (a *Account) Balance() (decimal.Decimal, error) {
	if a.kind == bank.KindDebit {
		return a.available, nil
	}

	recent, err := a.Transactions(time.Time{}, time.Time{}, 1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	owed := a.current
	for _, t := range recent {
		if t.Pending() {
			owed = owed.Sub(t.Amount)
		}
	}
	return owed.Neg(), nil
}

func (a *Account) AvailableBalance() (decimal.Decimal, error) { return a.available, nil }
func (a *Account) CurrentBalance() (decimal.Decimal, error)   { return a.current, nil }
func (a *Account) StatementBalance() (decimal.Decimal, error) { return a.statement, nil }
func (a *Account) MinimumDue() (decimal.Decimal, error)       { return a.minimum, nil }

// Transactions returns transactions inside the date window, oldest first.
// Pending transactions only appear in windows that reach the present.
// maxPages > 0 restricts the scan to the most recent pages.
func (a *Account) Transactions(since, through time.Time, maxPages int) ([]bank.Transaction, error) {
	txns := a.txns
	if maxPages > 0 && len(txns) > maxPages*pageSize {
		txns = txns[len(txns)-maxPages*pageSize:]
	}

	var out []bank.Transaction
	for _, t := range txns {
		if t.Date.IsZero() {
			if through.IsZero() || !through.Before(startOfToday()) {
				out = append(out, t)
			}
			continue
		}
		if !since.IsZero() && t.Date.Before(since) {
			continue
		}
		if !through.IsZero() && t.Date.After(through) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func startOfToday() time.Time {
	y, m, d := time.Now().In(ledgerZone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ledgerZone)
}

// own resolves a boundary account back to this provider's account.
func (p *Provider) own(a bank.Account) (*Account, error) {
	la, ok := a.(*Account)
	if !ok || la.provider != p {
		return nil, errors.New("account does not belong to this session")
	}
	return la, nil
}

// Transfer moves money between two debit accounts and records a posted
// transaction on each side.
func (p *Provider) Transfer(source, destination bank.Account, opts bank.MoveOptions) (decimal.Decimal, error) {
	src, err := p.own(source)
	if err != nil {
		return decimal.Decimal{}, err
	}
	dst, err := p.own(destination)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if src.kind != bank.KindDebit || dst.kind != bank.KindDebit {
		return decimal.Decimal{}, errors.New("transfers move money between debit accounts")
	}
	if opts.Symbol != "" {
		return decimal.Decimal{}, errors.New("symbolic amounts are only valid for payments")
	}
	return p.move(src, dst, opts.Amount, "Transfer to "+dst.name, "Transfer from "+src.name)
}

// Pay pays a credit account from a debit account, resolving symbolic
// amounts against the destination's balances.
func (p *Provider) Pay(source, destination bank.Account, opts bank.MoveOptions) (decimal.Decimal, error) {
	src, err := p.own(source)
	if err != nil {
		return decimal.Decimal{}, err
	}
	dst, err := p.own(destination)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if src.kind != bank.KindDebit {
		return decimal.Decimal{}, errors.New("payments draw from a debit account")
	}
	if dst.kind != bank.KindCredit {
		return decimal.Decimal{}, errors.New("payments go to a credit account")
	}

	amount := opts.Amount
	switch opts.Symbol {
	case "":
	case bank.PayStatementBalance:
		amount = dst.statement
	case bank.PayMinimum:
		amount = dst.minimum
	case bank.PayCurrentBalance:
		amount = dst.current
	default:
		return decimal.Decimal{}, fmt.Errorf("unrecognized symbolic amount %q", opts.Symbol)
	}

	return p.move(src, dst, amount, "Payment to "+dst.name, "Payment from "+src.name)
}

func (p *Provider) move(src, dst *Account, amount decimal.Decimal, srcName, dstName string) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("amount must be positive, got %s", amount.StringFixed(2))
	}
	if src.available.LessThan(amount) {
		return decimal.Decimal{}, fmt.Errorf("insufficient funds in %s", src.name)
	}

	src.available = src.available.Sub(amount)
	if dst.kind == bank.KindDebit {
		dst.available = dst.available.Add(amount)
	} else {
		dst.current = dst.current.Sub(amount)
	}

	today := startOfToday()
	src.txns = append(src.txns, bank.Transaction{Name: srcName, Amount: amount.Neg(), Date: today, Type: bank.TransactionPosted})
	dst.txns = append(dst.txns, bank.Transaction{Name: dstName, Amount: amount, Date: today, Type: bank.TransactionPosted})

	if err := p.save(); err != nil {
		return decimal.Decimal{}, err
	}
	return amount, nil
}

func (p *Provider) save() error {
	var lf ledgerFile
	for _, a := range p.accounts {
		rec := accountRecord{
			Name:           a.name,
			Kind:           string(a.kind),
			RewardsProgram: a.rewards,
		}
		if a.kind == bank.KindDebit {
			rec.AvailableBalance = a.available.StringFixed(2)
		} else {
			rec.CurrentBalance = a.current.StringFixed(2)
			rec.StatementBalance = a.statement.StringFixed(2)
			rec.MinimumDue = a.minimum.StringFixed(2)
		}
		for _, t := range a.txns {
			tr := transactionRecord{Name: t.Name, Amount: t.Amount.StringFixed(2)}
			if t.Date.IsZero() {
				tr.Pending = true
			} else {
				tr.Date = t.Date.Format(dateFormat)
			}
			rec.Transactions = append(rec.Transactions, tr)
		}
		lf.Accounts = append(lf.Accounts, rec)
	}

	data, err := yaml.Marshal(&lf)
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}
