package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iziplay/isbn-api/pkg/isbn"
)

func convertCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert --to <isbn10|isbn13> [text...]",
		Short: "Print the first ISBN found in the text, converted",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := isbn.ParseFormat(to)
			if err != nil {
				return err
			}
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			v, err := isbn.Build(text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.ConvertedTo(format))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target format: isbn10 or isbn13")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
