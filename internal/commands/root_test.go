package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLedger = `accounts:
  - name: Checking
    kind: debit
    available_balance: "100.00"
  - name: Visa
    kind: credit
    current_balance: "50.00"
`

func writeLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testLedger), 0o600))
	return path
}

func run(t *testing.T, args ...string) (status int, out, errOut string, err error) {
	t.Helper()
	cmd, st := NewRootCommand()
	var o, e strings.Builder
	cmd.SetOut(&o)
	cmd.SetErr(&e)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return *st, o.String(), e.String(), err
}

func baseArgs(t *testing.T, extra ...string) []string {
	args := []string{
		"--ledger", writeLedger(t),
		"--username", "jdoe",
		"--password", "hunter2",
	}
	return append(args, extra...)
}

func TestScriptedAccounts(t *testing.T) {
	status, out, _, err := run(t, baseArgs(t, "-c", "accounts")...)
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Contains(t, out, "Checking")
	assert.Contains(t, out, "Visa")
	assert.Contains(t, out, "Balance:")
	assert.Contains(t, out, "50.00")
}

func TestScriptedLastStatusWins(t *testing.T) {
	status, _, errOut, err := run(t, baseArgs(t, "-c", "frobnicate ; accounts")...)
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Contains(t, errOut, "frobnicate")

	status, _, _, err = run(t, baseArgs(t, "-c", "accounts ; frobnicate")...)
	require.NoError(t, err)
	assert.Equal(t, 1, status)
}

func TestBadOTPMethodIsFatal(t *testing.T) {
	_, _, _, err := run(t, baseArgs(t, "--otp", "carrier-pigeon", "-c", "accounts")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one-time-passcode delivery method")
}

func TestMissingCredentialsIsFatal(t *testing.T) {
	_, _, _, err := run(t, "--ledger", writeLedger(t), "-c", "accounts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username and password are required")
}

func TestMissingLedgerIsFatal(t *testing.T) {
	_, _, _, err := run(t, "--username", "jdoe", "--password", "hunter2", "--config", filepath.Join(t.TempDir(), "none.yaml"), "-c", "accounts")
	require.Error(t, err)
}

func TestConfigFileSuppliesSession(t *testing.T) {
	dir := t.TempDir()
	ledger := writeLedger(t)
	cfgPath := filepath.Join(dir, "banksh.yaml")
	cfg := "username: jdoe\npassword: hunter2\notp_method: text\nledger: " + ledger + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	status, out, _, err := run(t, "--config", cfgPath, "-c", "accounts checking")
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Contains(t, out, "Checking")
}
