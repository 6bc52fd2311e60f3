// Package commands wires the process entry point: flag parsing, config
// loading, provider construction, and input-mode selection.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/banksh/banksh/internal/auditlog"
	"github.com/banksh/banksh/internal/bank"
	"github.com/banksh/banksh/internal/buildinfo"
	"github.com/banksh/banksh/internal/config"
	"github.com/banksh/banksh/internal/localbank"
	"github.com/banksh/banksh/internal/shell"
)

const prompt = "bank> "

// NewRootCommand creates the root CLI command. The returned status pointer
// holds the exit status of the last shell command once Execute returns
// without error.
func NewRootCommand() (*cobra.Command, *int) {
	var (
		configPath string
		username   string
		password   string
		otp        string
		ledgerPath string
		auditPath  string
		script     string
	)
	status := new(int)

	cmd := &cobra.Command{
		Use:     "banksh",
		Short:   "Interactive shell for bank accounts",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if username != "" {
				cfg.Username = username
			}
			if password != "" {
				cfg.Password = password
			}
			if otp != "" {
				cfg.OTPMethod = otp
			}
			if ledgerPath != "" {
				cfg.Ledger = ledgerPath
			}
			if auditPath != "" {
				cfg.AuditLog = auditPath
			}

			method, err := bank.ParseOTPMethod(cfg.OTPMethod)
			if err != nil {
				return err
			}
			if cfg.Ledger == "" {
				return errors.New("no ledger configured (set --ledger or the config ledger key)")
			}

			provider, err := localbank.Open(cfg.Ledger, bank.Credentials{
				Username: cfg.Username,
				Password: cfg.Password,
				OTP:      method,
			})
			if err != nil {
				return err
			}

			source, closeSource, err := selectSource(script)
			if err != nil {
				return err
			}
			if closeSource != nil {
				defer closeSource()
			}

			sh := shell.New(provider, source, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if cfg.AuditLog != "" {
				sh.Audit = auditlog.New(cfg.AuditLog)
			}
			*status = int(sh.Run())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "C", "", "config file (default banksh.yaml, then ~/.config/banksh/banksh.yaml)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "provider username")
	cmd.Flags().StringVar(&password, "password", "", "provider password")
	cmd.Flags().StringVar(&otp, "otp", "", "one-time-passcode delivery method (email, call, or text)")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "ledger file backing the account provider")
	cmd.Flags().StringVar(&auditPath, "audit-log", "", "CSV file recording submitted transfers and payments")
	cmd.Flags().StringVarP(&script, "command", "c", "", "run semicolon-separated commands and exit")

	return cmd, status
}

// loadConfig reads the named config file, or the first default location
// that exists. No config file at all is fine; flags may supply everything.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	candidates := []string{"banksh.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "banksh", "banksh.yaml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return config.Load(c)
		}
	}
	return &config.Config{}, nil
}

// selectSource picks the input mode for the process lifetime: a scripted
// queue when -c was given, piped lines when stdin is not a terminal, and
// an interactive prompt otherwise.
func selectSource(script string) (shell.Source, func() error, error) {
	if script != "" {
		commands, err := shell.SplitScript(script)
		if err != nil {
			return nil, nil, err
		}
		return shell.NewQueueSource(commands), nil, nil
	}

	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return shell.NewPipeSource(os.Stdin), nil, nil
	}

	src, err := shell.NewInteractiveSource(prompt)
	if err != nil {
		return nil, nil, err
	}
	return src, src.Close, nil
}
