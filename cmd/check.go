package cmd

import (
	"fmt"
	"os"

	"github.com/ih4temyself/firewall-parser/rules"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a rules file",
	Long: `Parse a firewall rules file and report whether it is valid.
The first syntax or semantic error is printed with its position and the
command exits non-zero. Use "-" to read from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args[0])
		if err != nil {
			return err
		}

		parsed, err := rules.ParseRules(input)
		if err != nil {
			errPrint(os.Stderr, "%s: %v\n", args[0], err)
			return fmt.Errorf("%s is not a valid rules file", args[0])
		}

		success("%s: %d rules OK\n", args[0], len(parsed))
		return nil
	},
}
