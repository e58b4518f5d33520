package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "isbn",
		Short:        "Recognize, normalize and convert ISBNs",
		SilenceUsage: true,
	}

	root.AddCommand(recognizeCmd(), convertCmd(), extractCmd())
	return root
}

// inputText joins args, or reads all of stdin when there are none.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
