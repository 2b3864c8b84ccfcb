package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zary0/domainscout/internal/domain"
)

// extractCmd lists the domain names mentioned in free text
var extractCmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "print the domains mentioned in text given as arguments or on stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		if len(args) == 0 {
			if stdinIsTerminal() {
				return ErrNoInput
			}

			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}

			text = string(data)
		}

		for _, name := range domain.Extract(text) {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}

		return nil
	},
}

// init registers the extract command on the root command
func init() {
	rootCmd.AddCommand(extractCmd)
}

// stdinIsTerminal reports whether standard input is attached to a terminal
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return true
	}

	return info.Mode()&os.ModeCharDevice != 0
}
