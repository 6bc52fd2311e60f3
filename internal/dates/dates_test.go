package dates

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrub(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso date untouched", "2013-04-25", "2013-04-25"},
		{"spelled number", "one week ago", "1 week ago"},
		{"short words dropped", "as of 3 days ago", "3 days ago"},
		{"ago survives", "twenty days ago", "20 days ago"},
		{"relative offset", "+3 days", "+3 days"},
		{"punctuation splits runs", "april, 2013", "april 2013"},
		{"empty stays empty", "", ""},
		{"only short words", "at on", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scrub(tt.in))
		})
	}
}

func requireDate(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("date"); err != nil {
		t.Skip("date utility not available")
	}
}

func TestResolveAbsolute(t *testing.T) {
	requireDate(t)

	day, err := Resolve("2013-04-25")
	require.NoError(t, err)
	assert.Equal(t, 2013, day.Year())
	assert.Equal(t, 4, int(day.Month()))
	assert.Equal(t, 25, day.Day())
}

func TestResolveSpelledRelative(t *testing.T) {
	requireDate(t)

	spelled, err := Resolve("two days ago")
	require.NoError(t, err)
	digits, err := Resolve("2 days ago")
	require.NoError(t, err)
	assert.True(t, spelled.Equal(digits))
}

func TestResolveGarbageFails(t *testing.T) {
	requireDate(t)

	_, err := Resolve("flurble grommit")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "flurble grommit", perr.Phrase)
}

func TestResolveUnix(t *testing.T) {
	requireDate(t)

	at, err := ResolveUnix("2013-04-25 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, 2013, at.Year())
}
