package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iziplay/isbn-api/pkg/isbn"
)

// extract [file]: one ISBN per line at most, tab separated with its line number and format.
func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the first ISBN of every line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			found := 0
			reader := bufio.NewReader(in)
			for line := 1; ; line++ {
				text, err := reader.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read error at line %d: %w", line, err)
				}
				if v, buildErr := isbn.Build(strings.TrimRight(text, "\r\n")); buildErr == nil {
					found++
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", line, v.Value(), v.Format())
				}
				if err != nil {
					break
				}
			}
			if found == 0 {
				return isbn.ErrNotFound
			}
			return nil
		},
	}
}
