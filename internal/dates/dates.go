// Package dates turns loosely formatted date phrases ("3 days ago",
// "2013-04-25", "one week ago") into calendar dates. Calendar arithmetic is
// delegated to the external date(1) utility, invoked synchronously and
// pinned to a fixed reference time zone.
package dates

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Zone is the reference time zone all phrases are resolved in.
const Zone = "America/New_York"

// ParseError reports a phrase the external resolver could not handle.
type ParseError struct {
	Phrase string
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("unable to parse date %q", e.Phrase)
}

var spelledNumbers = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
	"eleven": "11", "twelve": "12", "thirteen": "13", "fourteen": "14",
	"fifteen": "15", "sixteen": "16", "seventeen": "17", "eighteen": "18",
	"nineteen": "19", "twenty": "20",
}

// Tokens are maximal runs of digits-with-separators or of letters; anything
// else is a boundary.
var tokenPattern = regexp.MustCompile(`[0-9][0-9:./+-]*|[+-][0-9][0-9:./+-]*|[A-Za-z]+`)

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// scrub rewrites a phrase for the external resolver: spelled-out numbers
// become digits and stray short words are dropped.
func scrub(text string) string {
	var kept []string
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		word := strings.ToLower(tok)
		if n, ok := spelledNumbers[word]; ok {
			kept = append(kept, n)
			continue
		}
		if !hasDigit(tok) && len(tok) <= 2 {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func run(text string, format string) (string, error) {
	phrase := scrub(text)

	cmd := exec.Command("date", "--date="+phrase, format)
	cmd.Env = append(os.Environ(), "TZ="+Zone)

	var out, errOut strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	err := cmd.Run()
	result := strings.TrimSpace(out.String())
	if err != nil || result == "" {
		return "", &ParseError{Phrase: text, Detail: strings.TrimSpace(errOut.String())}
	}
	return result, nil
}

// Resolve parses a phrase into a calendar date at midnight in the
// reference zone.
func Resolve(text string) (time.Time, error) {
	out, err := run(text, "+%Y-%m-%d")
	if err != nil {
		return time.Time{}, err
	}

	loc, err := time.LoadLocation(Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("loading zone %s: %w", Zone, err)
	}

	day, err := time.ParseInLocation("2006-01-02", out, loc)
	if err != nil {
		return time.Time{}, &ParseError{Phrase: text, Detail: fmt.Sprintf("unexpected resolver output %q", out)}
	}
	return day, nil
}

// ResolveUnix parses a phrase into an exact timestamp in the reference
// zone.
func ResolveUnix(text string) (time.Time, error) {
	out, err := run(text, "+%s")
	if err != nil {
		return time.Time{}, err
	}

	sec, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		return time.Time{}, &ParseError{Phrase: text, Detail: fmt.Sprintf("unexpected resolver output %q", out)}
	}

	loc, err := time.LoadLocation(Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("loading zone %s: %w", Zone, err)
	}
	return time.Unix(sec, 0).In(loc), nil
}
