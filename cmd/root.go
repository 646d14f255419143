package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Initialize colored output
var (
	success  = color.New(color.FgGreen).PrintfFunc()
	errPrint = color.New(color.FgRed).FprintfFunc()
)

var rootCmd = &cobra.Command{
	Use:   "fwparse",
	Short: "Firewall rule language parser",
	Long: `A parser for a line-oriented firewall rule language supporting
service rules ("allow ssh") and address rules
("deny out to 8.8.8.8 port 53 proto udp").

This tool parses rule files into a structured form and can print the
result as canonical text, JSON, or YAML, validate files, and compare
two rule files while ignoring formatting-only differences.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add commands to root
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
}
