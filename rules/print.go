package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Initialize colored output
var (
	info = color.New(color.FgBlue).PrintfFunc()
)

// Format renders a rule back to one canonical line of rule syntax.
func Format(rule Rule) string {
	switch r := rule.(type) {
	case ServiceRule:
		return r.Action.String() + " " + r.Service
	case AddressRule:
		parts := []string{r.Action.String()}
		if r.Direction != nil {
			parts = append(parts, r.Direction.String())
		}
		if r.Interface != nil {
			parts = append(parts, "on", *r.Interface)
		}
		if r.From != nil {
			parts = append(parts, "from", r.From.String())
		}
		if r.To != nil {
			parts = append(parts, "to", r.To.String())
		}
		if r.Port != nil {
			parts = append(parts, "port", strconv.Itoa(int(*r.Port)))
		}
		if r.Proto != nil {
			parts = append(parts, "proto", r.Proto.String())
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// FormatAll renders a ruleset as canonical text, one rule per line.
func FormatAll(rs Ruleset) string {
	var b strings.Builder
	for _, rule := range rs {
		b.WriteString(Format(rule))
		b.WriteByte('\n')
	}
	return b.String()
}

// PrintRules prints a parsed ruleset to stdout, numbered in source order.
func PrintRules(rs Ruleset) {
	info("Parsed %d rules:\n", len(rs))
	for i, rule := range rs {
		kind := "service"
		if _, ok := rule.(AddressRule); ok {
			kind = "address"
		}
		fmt.Printf("  %3d  [%s] %s\n", i+1, kind, Format(rule))
	}
}
