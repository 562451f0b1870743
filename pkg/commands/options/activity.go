// Package options defines shared flag helpers for CLI commands.
package options

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// Action is what a root invocation does.
type Action int

const (
	ActionHelp Action = iota
	ActionTimer
	ActionAdd
	ActionList
	ActionDelete
)

// ActivityOptions captures the root command flags. Only one action runs per
// invocation; when several are given the first of timer, add, list, delete
// wins.
type ActivityOptions struct {
	Timer  string
	Add    string
	List   bool
	Delete bool
	Watch  bool
}

// AddActivityArgs wires the action flags on the provided command.
func AddActivityArgs(cmd *cobra.Command, o *ActivityOptions) {
	cmd.Flags().StringVarP(&o.Timer, "timer", "t", "",
		"Start a timer for an activity, stop it with Ctrl+C.")
	cmd.Flags().StringVarP(&o.Add, "add", "a", "",
		"Add time manually to an activity, followed by the minutes.")
	cmd.Flags().BoolVarP(&o.List, "list", "l", false,
		"List all activities and categories.")
	cmd.Flags().BoolVar(&o.Delete, "delete", false,
		"Delete an activity, prompting for it unless given.")
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"With --list, print again whenever the log changes.")
}

// Action resolves which action the flags select.
func (o *ActivityOptions) Action(cmd *cobra.Command) Action {
	flags := cmd.Flags()
	switch {
	case flags.Changed("timer"):
		return ActionTimer
	case flags.Changed("add"):
		return ActionAdd
	case o.List:
		return ActionList
	case o.Delete:
		return ActionDelete
	default:
		return ActionHelp
	}
}

// ValidateArgs checks the positional arguments against the selected action.
// The MINUTES of an --add that lost to --timer is accepted and ignored.
func (o *ActivityOptions) ValidateArgs(cmd *cobra.Command, args []string) error {
	action := o.Action(cmd)
	if action != ActionAdd && cmd.Flags().Changed("add") && len(args) == 1 {
		return nil
	}
	switch action {
	case ActionAdd:
		if len(args) != 1 {
			return errors.New("--add requires NAME MINUTES")
		}
	case ActionDelete:
		if len(args) > 1 {
			return fmt.Errorf("--delete accepts at most one path, got %d", len(args))
		}
	default:
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments %q", args)
		}
	}
	return nil
}

var negativeMinutes = regexp.MustCompile(`^-\d+$`)

// PositionalMinutes moves a negative MINUTES given right after --add NAME
// behind "--", so it is read as the minutes argument and not as a shorthand
// flag. Args already holding "--" are returned as is.
func PositionalMinutes(args []string) []string {
	if slices.Contains(args, "--") {
		return args
	}
	for i, a := range args {
		var at int
		switch {
		case a == "-a" || a == "--add":
			at = i + 2
		case strings.HasPrefix(a, "--add="), strings.HasPrefix(a, "-a") && len(a) > 2:
			at = i + 1
		default:
			continue
		}
		if at >= len(args) || !negativeMinutes.MatchString(args[at]) {
			return args
		}
		out := slices.Concat(args[:at], args[at+1:])
		return append(out, "--", args[at])
	}
	return args
}
