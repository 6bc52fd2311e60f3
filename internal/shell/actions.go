package shell

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/banksh/banksh/internal/bank"
	"github.com/banksh/banksh/internal/match"
	"github.com/banksh/banksh/internal/query"
	"github.com/banksh/banksh/internal/transfer"
)

func defaultActions() []*Action {
	return []*Action{
		accountsAction(),
		detailsAction(),
		transactionsAction(),
		transferAction(),
		payAction(),
	}
}

func accountsAction() *Action {
	return &Action{
		Name: "accounts",
		Help: `usage: {name} [term ...]

List accounts whose name or rewards program contains every term, one per
line with the account's balance, followed by a net-position footer.
With no terms, all accounts are listed.`,
		Run: func(sh *Shell, args []string) (Status, error) {
			accounts, err := sh.Provider.Accounts()
			if err != nil {
				return 0, err
			}

			matched := match.Search(args, accounts, false)
			if len(matched) == 0 {
				return StatusOK, nil
			}

			total := decimal.Zero
			for _, a := range matched {
				balance, err := a.Balance()
				if err != nil {
					return 0, err
				}
				fmt.Fprintf(sh.Out, "%-30s %-20s %12s\n", a.Name(), a.RewardsProgram(), balance.StringFixed(2))
				total = total.Add(balance)
			}
			fmt.Fprintf(sh.Out, "%-51s %12s\n", "Balance:", total.StringFixed(2))
			return StatusOK, nil
		},
	}
}

func detailsAction() *Action {
	return &Action{
		Name: "details",
		Help: `usage: {name} [term ...]

Show each matching account's kind, rewards program, and kind-specific
balance fields: available balance for debit accounts; current, statement,
and minimum-due balances for credit accounts.`,
		Run: func(sh *Shell, args []string) (Status, error) {
			accounts, err := sh.Provider.Accounts()
			if err != nil {
				return 0, err
			}

			for _, a := range match.Search(args, accounts, false) {
				fmt.Fprintln(sh.Out, a.Name())
				fmt.Fprintf(sh.Out, "  Kind: %s\n", a.Kind())
				if rp := a.RewardsProgram(); rp != "" {
					fmt.Fprintf(sh.Out, "  Rewards program: %s\n", rp)
				}
				if err := printDetailFields(sh, a); err != nil {
					return 0, err
				}
				balance, err := a.Balance()
				if err != nil {
					return 0, err
				}
				fmt.Fprintf(sh.Out, "  Balance: %s\n", balance.StringFixed(2))
			}
			return StatusOK, nil
		},
	}
}

// printDetailFields writes the kind-specific balance fields when the
// provider exposes them.
func printDetailFields(sh *Shell, a bank.Account) error {
	switch a.Kind() {
	case bank.KindDebit:
		d, ok := a.(bank.DebitDetail)
		if !ok {
			return nil
		}
		available, err := d.AvailableBalance()
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.Out, "  Available balance: %s\n", available.StringFixed(2))
	case bank.KindCredit:
		c, ok := a.(bank.CreditDetail)
		if !ok {
			return nil
		}
		current, err := c.CurrentBalance()
		if err != nil {
			return err
		}
		statement, err := c.StatementBalance()
		if err != nil {
			return err
		}
		minimum, err := c.MinimumDue()
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.Out, "  Current balance: %s\n", current.StringFixed(2))
		fmt.Fprintf(sh.Out, "  Statement balance: %s\n", statement.StringFixed(2))
		fmt.Fprintf(sh.Out, "  Minimum due: %s\n", minimum.StringFixed(2))
	}
	return nil
}

func transactionsAction() *Action {
	return &Action{
		Name: "transactions",
		Help: `usage: {name} [term ...] [from:DATE] [through:DATE] [min:AMOUNT] [max:AMOUNT] [contains:TEXT]

List transactions for accounts matching any term, newest last. from:/since:
and through:/to: bound the date range and accept loose phrases like
"3 days ago"; min:/max: bound the amount; contains: filters descriptions.`,
		Run: func(sh *Shell, args []string) (Status, error) {
			f, err := query.ParseArgs(args, sh.Resolve)
			if err != nil {
				sh.errorf("%v\n", err)
				return StatusInvalid, nil
			}

			accounts, err := sh.Provider.Accounts()
			if err != nil {
				return 0, err
			}
			txns, err := query.Run(f, accounts)
			if err != nil {
				return 0, err
			}

			for _, t := range txns {
				fmt.Fprintln(sh.Out, query.FormatLine(t))
			}
			return StatusOK, nil
		},
	}
}

func transferAction() *Action {
	return &Action{
		Name: "transfer",
		Help: `usage: {name} AMOUNT from TERM ... to TERM ...

Transfer money between two debit accounts. Each side's terms must match
exactly one account. Interactive sessions ask for confirmation before
anything is submitted.`,
		Run: func(sh *Shell, args []string) (Status, error) {
			accounts, err := sh.Provider.Accounts()
			if err != nil {
				return 0, err
			}

			req, ok := transfer.Parse(sh.Err, args, "from", "to", nil, accounts)
			if !ok {
				return StatusInvalid, nil
			}

			fmt.Fprintf(sh.Out, "Transfer %s from %q to %q.\n",
				req.Options.Describe(), req.Source.Name(), req.Destination.Name())
			if !sh.Confirm("Proceed? [y/N] ") {
				fmt.Fprintln(sh.Err, "Transfer cancelled.")
				return StatusInvalid, nil
			}

			amount, err := sh.Provider.Transfer(req.Source, req.Destination, req.Options)
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(sh.Out, "Transferred $%s.\n", amount.StringFixed(2))
			sh.recordMove("transfer", req, amount)
			return StatusOK, nil
		},
	}
}

// paymentSymbols are the amount tokens the provider resolves at submission
// time instead of a fixed decimal.
var paymentSymbols = map[string]bank.Symbol{
	"statement": bank.PayStatementBalance,
	"minimum":   bank.PayMinimum,
	"full":      bank.PayCurrentBalance,
}

func payAction() *Action {
	return &Action{
		Name: "pay",
		Help: `usage: {name} AMOUNT from TERM ... to TERM ...

Pay a credit account from a debit account. AMOUNT is a decimal or one of
"statement", "minimum", or "full", resolved by the account provider when
the payment is submitted. Interactive sessions ask for confirmation before
anything is submitted.`,
		Run: func(sh *Shell, args []string) (Status, error) {
			accounts, err := sh.Provider.Accounts()
			if err != nil {
				return 0, err
			}

			req, ok := transfer.Parse(sh.Err, args, "from", "to", paymentSymbols, accounts)
			if !ok {
				return StatusInvalid, nil
			}

			fmt.Fprintf(sh.Out, "Pay %s from %q to %q.\n",
				req.Options.Describe(), req.Source.Name(), req.Destination.Name())
			if !sh.Confirm("Proceed? [y/N] ") {
				fmt.Fprintln(sh.Err, "Payment cancelled.")
				return StatusInvalid, nil
			}

			amount, err := sh.Provider.Pay(req.Source, req.Destination, req.Options)
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(sh.Out, "Paid $%s.\n", amount.StringFixed(2))
			sh.recordMove("pay", req, amount)
			return StatusOK, nil
		},
	}
}
