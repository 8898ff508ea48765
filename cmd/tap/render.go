package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/taigrr/tap/internal/types"
)

var (
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	extStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type renderOptions struct {
	plain bool
	copy  bool
	style string
}

// printMatches lists results as "N - Title.md".
func printMatches(w io.Writer, set types.MatchSet, opts renderOptions) {
	if len(set.Results) == 0 {
		fmt.Fprintf(w, "No matches for %q.\n", set.Query)
		return
	}
	for _, m := range set.Results {
		if opts.plain {
			fmt.Fprintf(w, "%d - %s.md\n", m.Rank, m.Title)
			continue
		}
		fmt.Fprintf(w, "%s - %s%s\n",
			indexStyle.Render(fmt.Sprint(m.Rank)),
			titleStyle.Render(m.Title),
			extStyle.Render(".md"))
	}
}

// printDocument writes markdown to w, rendered unless plain is set, and
// optionally copies the raw text to the clipboard.
func printDocument(w io.Writer, content string, opts renderOptions) error {
	if opts.copy {
		if err := clipboard.WriteAll(content); err != nil {
			slog.Warn("could not copy to clipboard", slog.String("error", err.Error()))
		} else {
			fmt.Fprintln(w, faintStyle.Render("Copied to clipboard."))
		}
	}

	if opts.plain {
		_, err := io.WriteString(w, content)
		return err
	}

	out, err := renderMarkdown(content, opts.style)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func renderMarkdown(content, style string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
