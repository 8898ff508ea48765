// Package daily gathers daily notes, named YYYY-MM-DD, across a date range.
package daily

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layout is the date format daily notes are named with.
const Layout = "2006-01-02"

var (
	rangePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}:\d{4}-\d{2}-\d{2}$`)
	headerPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// InvalidDateRangeError is returned for an expression that is not
// "YYYY-MM-DD:YYYY-MM-DD" or that names a date that does not exist.
type InvalidDateRangeError struct {
	Expr   string
	Reason string
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("invalid date range %q: %s", e.Expr, e.Reason)
}

// NoNotesFoundError is returned when a non-empty range holds no daily notes.
type NoNotesFoundError struct {
	Start string
	End   string
}

func (e *NoNotesFoundError) Error() string {
	return fmt.Sprintf("no daily notes found between %s and %s", e.Start, e.End)
}

// DocumentSource looks up raw note content by exact title.
type DocumentSource interface {
	DocumentByTitle(title string) (string, bool)
}

// Entry is one daily note found in a range.
type Entry struct {
	Date    string `json:"date"`
	Header  string `json:"header"`
	Content string `json:"content"`
}

// ParseRange splits and validates a "start:end" expression.
func ParseRange(expr string) (start, end time.Time, err error) {
	if !rangePattern.MatchString(expr) {
		return time.Time{}, time.Time{}, &InvalidDateRangeError{Expr: expr, Reason: "expected YYYY-MM-DD:YYYY-MM-DD"}
	}
	first, second, _ := strings.Cut(expr, ":")

	start, err = time.Parse(Layout, first)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidDateRangeError{Expr: expr, Reason: first + " is not a calendar date"}
	}
	end, err = time.Parse(Layout, second)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidDateRangeError{Expr: expr, Reason: second + " is not a calendar date"}
	}
	return start, end, nil
}

// Expand lists every date from start to end inclusive. It is empty when end
// is before start.
func Expand(start, end time.Time) []string {
	dates := []string{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(Layout))
	}
	return dates
}

// Header returns the section header for a daily note: its first line when
// that line starts with a date, and "Note" otherwise.
func Header(content string) string {
	first, _, _ := strings.Cut(content, "\n")
	first = strings.TrimSuffix(first, "\r")
	if headerPattern.MatchString(first) {
		return first
	}
	return "Note"
}

// Resolver finds daily notes in a DocumentSource.
type Resolver struct {
	docs DocumentSource
}

// New returns a resolver backed by docs.
func New(docs DocumentSource) *Resolver {
	return &Resolver{docs: docs}
}

// Notes returns the daily notes between start and end inclusive, in date
// order. Dates with no note are skipped.
func (r *Resolver) Notes(start, end time.Time) []Entry {
	var entries []Entry
	for _, date := range Expand(start, end) {
		content, ok := r.docs.DocumentByTitle(date)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Date: date, Header: Header(content), Content: content})
	}
	return entries
}

// Resolve concatenates the daily notes from start to end, both YYYY-MM-DD.
// Each note is preceded by a horizontal rule and a level-one header. A
// reversed range yields an empty string.
func (r *Resolver) Resolve(start, end string) (string, error) {
	return r.ResolveExpr(start + ":" + end)
}

// ResolveExpr is Resolve for a combined "start:end" expression.
func (r *Resolver) ResolveExpr(expr string) (string, error) {
	start, end, err := ParseRange(expr)
	if err != nil {
		return "", err
	}
	if end.Before(start) {
		return "", nil
	}

	entries := r.Notes(start, end)
	if len(entries) == 0 {
		return "", &NoNotesFoundError{Start: start.Format(Layout), End: end.Format(Layout)}
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString("\n\n---\n\n# ")
		b.WriteString(e.Header)
		b.WriteString("\n\n")
		b.WriteString(e.Content)
	}
	return b.String(), nil
}
