package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/taigrr/tap/internal/config"
	"github.com/taigrr/tap/internal/types"
)

var errNoQuery = errors.New("nothing to do: give a query or one of --last, --get, --date-range")

type rootOptions struct {
	limit     int
	last      bool
	get       int
	dateRange string
	fuzzy     bool
	exact     bool
	content   bool
	render    renderOptions
}

func newRootCmd() *cobra.Command {
	a := newApp()
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tap [query]",
		Short: "Fuzzy-find and read notes in an Obsidian vault",
		Long: heredoc.Doc(`
			tap ranks the note titles in your vault against a query and remembers
			the results, so a later call can open one by its number.

			The vault is read from --vault, TAP_VAULT or OBSIDIAN_PATH. Settings can
			also live in $XDG_CONFIG_HOME/tap/config.yaml.
		`),
		Example: heredoc.Doc(`
			tap "project plan"
			tap -g 2
			tap --last
			tap -d 2025-01-01:2025-01-07
			tap --content "quarterly review" -L 10
		`),
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.load()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.limit = a.cfg.Limit
			opts.render.style = a.cfg.Style
			return runRoot(cmd, a, opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("vault", "", "path to the Obsidian vault")
	pf.StringVar(&a.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/tap/config.yaml)")
	pf.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	pf.String("style", config.DefaultStyle, "glamour style used to render notes")
	_ = a.v.BindPFlag(config.KeyVault, pf.Lookup("vault"))
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyStyle, pf.Lookup("style"))

	f := cmd.Flags()
	f.IntP("limit", "L", config.DefaultLimit, "number of results")
	f.BoolVarP(&opts.last, "last", "l", false, "show the results of the previous search")
	f.IntVarP(&opts.get, "get", "g", 0, "open the note at this index of the previous search")
	f.StringVarP(&opts.dateRange, "date-range", "d", "", "concatenate daily notes in YYYY-MM-DD:YYYY-MM-DD")
	f.BoolVar(&opts.fuzzy, "fuzzy", false, "force fuzzy title search")
	f.BoolVar(&opts.exact, "exact", false, "match titles exactly, ignoring case")
	f.BoolVar(&opts.content, "content", false, "search note bodies instead of titles")
	f.BoolVar(&opts.render.plain, "plain", false, "print raw text without colors or rendering")
	f.BoolVar(&opts.render.copy, "copy", false, "also copy the opened document to the clipboard")
	_ = a.v.BindPFlag(config.KeyLimit, f.Lookup("limit"))
	cmd.MarkFlagsMutuallyExclusive("fuzzy", "exact", "content")

	cmd.AddCommand(
		newPickCmd(a),
		newServeCmd(a),
		newStowCmd(a),
		newPoolCmd(),
		newAliasCmd(a),
	)
	return cmd
}

// runRoot dispatches on flags in order: last, get, date range, query.
func runRoot(cmd *cobra.Command, a *app, opts *rootOptions, args []string) error {
	out := cmd.OutOrStdout()
	q := strings.TrimSpace(strings.Join(args, " "))

	if !opts.last && !cmd.Flags().Changed("get") && opts.dateRange == "" && q == "" {
		_ = cmd.Help()
		return errNoQuery
	}

	svc, err := a.service()
	if err != nil {
		return err
	}

	switch {
	case opts.last:
		set, ok, err := svc.Last()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "No previous results.")
			return nil
		}
		printMatches(out, set, opts.render)
		return nil

	case cmd.Flags().Changed("get"):
		_, content, err := svc.Get(opts.get)
		if err != nil {
			return err
		}
		return printDocument(out, content, opts.render)

	case opts.dateRange != "":
		combined, err := svc.DateRange(opts.dateRange)
		if err != nil {
			return err
		}
		if combined == "" {
			fmt.Fprintln(out, "Date range is empty.")
			return nil
		}
		return printDocument(out, combined, opts.render)
	}

	var set types.MatchSet
	switch {
	case opts.exact:
		set, err = svc.Exact(q)
	case opts.content:
		set, err = svc.SearchContent(q, opts.limit)
	default:
		set, err = svc.Search(q, opts.limit)
	}
	if err != nil {
		return err
	}
	printMatches(out, set, opts.render)
	return nil
}
