package auditlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:   testTime,
		Action:      "transfer",
		Source:      "Premier Checking",
		Destination: "Savings",
		Amount:      decimal.RequireFromString("25.00"),
	}
}

func TestRecord_NewFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "logs", "audit.csv"))

	require.NoError(t, l.Record(testEntry()))

	entries, err := l.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "transfer", entries[0].Action)
	assert.Equal(t, "Savings", entries[0].Destination)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("25.00")))
}

func TestRecord_Appends(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "audit.csv"))

	require.NoError(t, l.Record(testEntry()))
	second := testEntry()
	second.Action = "pay"
	require.NoError(t, l.Record(second))

	entries, err := l.Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "pay", entries[1].Action)
}

func TestRead_MissingFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "audit.csv"))

	entries, err := l.Read()
	require.NoError(t, err)
	assert.Nil(t, entries)
}
