package rules

import (
	"fmt"
	"strconv"

	"github.com/ih4temyself/firewall-parser/grammar"

	"github.com/alecthomas/participle/v2/lexer"
)

// SemanticError reports a well-formed parse tree whose values fail a
// lowering-time check: a keyword outside its closed set, a port outside the
// 16-bit range, or a tree shape the lowering does not recognize.
type SemanticError struct {
	Line    int
	Column  int
	Message string
}

func (e *SemanticError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("semantic error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("semantic error: %s", e.Message)
}

// ParseRules parses a whole rule document into its typed form. The first
// syntax or semantic error aborts the document; there is no partial result.
func ParseRules(input string) (Ruleset, error) {
	file, err := grammar.Parse("rules", input)
	if err != nil {
		return nil, err
	}
	return Lower(file)
}

// Lower converts a parse tree into rules, one per rule line, in source
// order. Comment-only and blank lines have no parse tree node and so
// contribute nothing.
func Lower(file *grammar.File) (Ruleset, error) {
	rules := make(Ruleset, 0, len(file.Lines))
	for _, line := range file.Lines {
		switch {
		case line.Service != nil:
			rule, err := lowerService(line.Service)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		case line.Address != nil:
			rule, err := lowerAddress(line.Address)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		default:
			// Grammar and lowering are out of sync, not a user input problem.
			return nil, &SemanticError{Message: "line node with no rule variant"}
		}
	}
	return rules, nil
}

func lowerService(node *grammar.ServiceRule) (ServiceRule, error) {
	action, err := ParseAction(node.Action.Text)
	if err != nil {
		return ServiceRule{}, err
	}
	return ServiceRule{Action: action, Service: node.Service}, nil
}

func lowerAddress(node *grammar.AddrRule) (AddressRule, error) {
	action, err := ParseAction(node.Action.Text)
	if err != nil {
		return AddressRule{}, err
	}
	rule := AddressRule{Action: action}
	if node.Direction != nil {
		dir, err := ParseDirection(node.Direction.Text)
		if err != nil {
			return AddressRule{}, err
		}
		rule.Direction = &dir
	}
	if node.Interface != nil {
		name := node.Interface.Name
		rule.Interface = &name
	}
	// Clauses assign in matched order; a repeated clause kind overwrites the
	// earlier value, so the last occurrence wins.
	for _, clause := range node.Clauses {
		switch {
		case clause.From != nil:
			rule.From = ParseAddr(clause.From.Text)
		case clause.To != nil:
			rule.To = ParseAddr(clause.To.Text)
		case clause.Port != nil:
			port, err := parsePort(*clause.Port, clause.Pos)
			if err != nil {
				return AddressRule{}, err
			}
			rule.Port = &port
		case clause.Proto != nil:
			proto, err := ParseProtocol(*clause.Proto)
			if err != nil {
				return AddressRule{}, err
			}
			rule.Proto = &proto
		default:
			return AddressRule{}, &SemanticError{
				Line:    clause.Pos.Line,
				Column:  clause.Pos.Column,
				Message: "unrecognized clause in address rule",
			}
		}
	}
	return rule, nil
}

// parsePort range-checks the digit text the grammar accepted.
func parsePort(text string, pos lexer.Position) (uint16, error) {
	n, err := strconv.ParseUint(text, 10, 16)
	if err != nil {
		return 0, &SemanticError{
			Line:    pos.Line,
			Column:  pos.Column,
			Message: fmt.Sprintf("port %s out of range (0-65535)", text),
		}
	}
	return uint16(n), nil
}
