package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ih4temyself/firewall-parser/rules"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a rules file and print the result",
	Long: `Parse a firewall rules file into its structured form and print it
as canonical text, JSON, or YAML. Comment-only and blank lines produce
no rules; output keeps the source line order. Use "-" to read from
standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		input, err := readInput(args[0])
		if err != nil {
			return err
		}

		parsed, err := rules.ParseRules(input)
		if err != nil {
			return err
		}

		var rendered []byte
		switch format {
		case "text":
			if output == "" {
				rules.PrintRules(parsed)
				return nil
			}
			rendered = []byte(rules.FormatAll(parsed))
		case "json":
			rendered, err = json.MarshalIndent(parsed, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding JSON: %v", err)
			}
			rendered = append(rendered, '\n')
		case "yaml":
			rendered, err = yaml.Marshal(parsed)
			if err != nil {
				return fmt.Errorf("encoding YAML: %v", err)
			}
		default:
			return fmt.Errorf("unknown format %q, want text, json or yaml", format)
		}

		if output == "" {
			_, err := os.Stdout.Write(rendered)
			return err
		}
		if err := os.WriteFile(output, rendered, 0644); err != nil {
			return fmt.Errorf("writing %s: %v", output, err)
		}
		success("Wrote %d rules to %s\n", len(parsed), output)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
	parseCmd.Flags().StringP("output", "o", "", "Write output to file instead of stdout")
}

// readInput reads the whole rules document from a file, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %v", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %v", path, err)
	}
	return string(data), nil
}
