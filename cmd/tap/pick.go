package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

func newPickCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "pick [query]",
		Short: "Choose a note interactively with a live preview",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.style = a.cfg.Style
			svc, err := a.service()
			if err != nil {
				return err
			}

			titles := svc.Titles()
			if len(titles) == 0 {
				return errors.New("pick: the vault has no notes")
			}

			finderOpts := []fuzzyfinder.Option{
				fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
					if i == -1 {
						return ""
					}
					content, ok := svc.Document(titles[i])
					if !ok {
						return "Error reading note"
					}
					rendered, err := renderMarkdown(content, opts.style)
					if err != nil {
						return content
					}
					return rendered
				}),
			}
			if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
				finderOpts = append(finderOpts, fuzzyfinder.WithQuery(q))
			}

			idx, err := fuzzyfinder.Find(titles, func(i int) string {
				return titles[i]
			}, finderOpts...)
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				fmt.Fprintln(cmd.ErrOrStderr(), "No note selected.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("pick: %w", err)
			}

			// The pick becomes the session so "tap -g 1" reopens it.
			if _, err := svc.Select(titles[idx]); err != nil {
				return err
			}

			content, ok := svc.Document(titles[idx])
			if !ok {
				return fmt.Errorf("pick: %q could not be read", titles[idx])
			}
			return printDocument(cmd.OutOrStdout(), content, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print raw text without rendering")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "also copy the chosen note to the clipboard")
	return cmd
}
