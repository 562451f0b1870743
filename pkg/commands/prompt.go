package commands

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/tracker/pkg/runner/remove"
)

func promptPath(cmd *cobra.Command) remove.PromptFunc {
	return func() (string, error) {
		prompt := promptui.Prompt{
			Label: "Enter the activity path to delete",
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return errors.New("empty")
				}
				return nil
			},
			Stdin:  io.NopCloser(cmd.InOrStdin()),
			Stdout: nopWriteCloser{cmd.OutOrStdout()},
		}
		return prompt.Run()
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
