package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iziplay/isbn-api/pkg/isbn"
)

func recognizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recognize [text...]",
		Short: "Print the first ISBN found in the text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			v, err := isbn.Build(text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", v.DisplayValue(), v.Format())
			return nil
		},
	}
}
