package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// ErrNotImplemented is returned by commands that are recognised but have no
// backing store yet.
var ErrNotImplemented = errors.New("not implemented")

func notImplemented(name string) error {
	return fmt.Errorf("%s: %w", name, ErrNotImplemented)
}

// checkIndex validates a 1-based index against the saved session.
func checkIndex(a *app, raw string) error {
	i, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", raw, err)
	}
	svc, err := a.service()
	if err != nil {
		return err
	}
	_, err = svc.Check(i)
	return err
}

func newStowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stow <index>",
		Short: "Add a result from the previous search to the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := checkIndex(a, args[0]); err != nil {
				return err
			}
			return notImplemented("stow")
		},
	}
}

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Manage the pool of stowed notes",
		Long: heredoc.Doc(`
			The pool collects notes stowed from earlier searches so they can be
			poured out together. Without a subcommand, pool shows its contents.
		`),
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return notImplemented("pool show")
		},
	}

	for _, action := range []struct {
		use, short string
		args       cobra.PositionalArgs
	}{
		{"show", "List the pooled notes", cobra.NoArgs},
		{"pour", "Print every pooled note", cobra.NoArgs},
		{"drain", "Print every pooled note and empty the pool", cobra.NoArgs},
		{"remove <index>", "Remove one note from the pool", cobra.ExactArgs(1)},
		{"clear", "Empty the pool", cobra.NoArgs},
	} {
		verb, _, _ := strings.Cut(action.use, " ")
		name := "pool " + verb
		cmd.AddCommand(&cobra.Command{
			Use:   action.use,
			Short: action.short,
			Args:  action.args,
			RunE: func(*cobra.Command, []string) error {
				return notImplemented(name)
			},
		})
	}
	return cmd
}

func newAliasCmd(a *app) *cobra.Command {
	var get int

	cmd := &cobra.Command{
		Use:   "alias [name] [target]",
		Short: "List or create title aliases",
		Example: heredoc.Doc(`
			tap alias
			tap alias plan "Project Plan 2025"
			tap alias plan -g 1
			tap alias rm plan
		`),
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return notImplemented("alias list")
			case cmd.Flags().Changed("get"):
				if err := checkIndex(a, strconv.Itoa(get)); err != nil {
					return err
				}
				return notImplemented("alias create")
			case len(args) == 2:
				return notImplemented("alias create")
			default:
				return errors.New("alias: give a target title or use -g with an index")
			}
		},
	}
	cmd.Flags().IntVarP(&get, "get", "g", 0, "alias the note at this index of the previous search")

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Remove an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(*cobra.Command, []string) error {
			return notImplemented("alias rm")
		},
	})
	return cmd
}
