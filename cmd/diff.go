package cmd

import (
	"fmt"

	"github.com/ih4temyself/firewall-parser/rules"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old> <new>",
	Short: "Compare two rules files",
	Long: `Parse two rules files and print a unified diff of their canonical
forms. Differences in whitespace, comments, or clause formatting disappear;
only genuine rule changes are reported. Exits non-zero when the rule
sequences differ.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldInput, err := readInput(args[0])
		if err != nil {
			return err
		}
		newInput, err := readInput(args[1])
		if err != nil {
			return err
		}

		oldRules, err := rules.ParseRules(oldInput)
		if err != nil {
			return fmt.Errorf("parsing %s: %v", args[0], err)
		}
		newRules, err := rules.ParseRules(newInput)
		if err != nil {
			return fmt.Errorf("parsing %s: %v", args[1], err)
		}

		diffText, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(rules.FormatAll(oldRules)),
			B:        difflib.SplitLines(rules.FormatAll(newRules)),
			FromFile: args[0],
			ToFile:   args[1],
			Context:  3,
		})
		if err != nil {
			return fmt.Errorf("computing diff: %v", err)
		}

		if diffText == "" {
			success("No rule differences between %s and %s\n", args[0], args[1])
			return nil
		}
		fmt.Print(diffText)
		return fmt.Errorf("found rule differences between %s and %s", args[0], args[1])
	},
}
