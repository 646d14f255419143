// Package grammar defines the rule language grammar and turns raw rule
// documents into a typed parse tree.
package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ruleLexer splits a document into the lexical classes of the rule language.
// Order matters: IP requires at least one '.' or '/' so bare digit runs fall
// through to Int, and Ident requires at least one non-digit character.
var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "IP", Pattern: `[0-9./]*[./][0-9./]*`},
	{Name: "Ident", Pattern: `[0-9]*[A-Za-z_-][0-9A-Za-z_-]*`},
	{Name: "Int", Pattern: `[0-9]+`},
})

// Whitespace and comments are skipped between tokens; newlines are real
// tokens because they terminate rules.
var opts = []participle.Option{
	participle.Lexer(ruleLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(1024),
}

var fileParser = participle.MustBuild[File](opts...)

// File is the root production: zero or more newline-terminated lines. A
// final content line without a trailing newline does not parse; a final
// empty line does.
type File struct {
	Lines []*Line `parser:"( @@? Newline )*"`
}

// Line is one rule line. Comment-only and blank lines produce no Line node
// since comments are elided by the lexer configuration.
type Line struct {
	Address *AddrRule    `parser:"@@"`
	Service *ServiceRule `parser:"| @@"`
}

// AddrRule is `action direction? interface_clause? clause+`. At least one
// clause is required, so a bare action/direction/interface line is rejected
// by the grammar rather than lowered with every field empty.
type AddrRule struct {
	Pos       lexer.Position
	Action    *Action      `parser:"@@"`
	Direction *Direction   `parser:"@@?"`
	Interface *IfaceClause `parser:"@@?"`
	Clauses   []*Clause    `parser:"@@+"`
}

// ServiceRule is `action ident`, e.g. "allow ssh".
type ServiceRule struct {
	Pos     lexer.Position
	Action  *Action `parser:"@@"`
	Service string  `parser:"@( Ident | Int )"`
}

// Action matches one of the four action keywords.
type Action struct {
	Pos  lexer.Position
	Text string `parser:"@( 'allow' | 'deny' | 'reject' | 'limit' )"`
}

// Direction matches a traffic direction keyword.
type Direction struct {
	Text string `parser:"@( 'in' | 'out' )"`
}

// IfaceClause binds a rule to a named interface.
type IfaceClause struct {
	Name string `parser:"'on' @( Ident | Int )"`
}

// Clause is the ordered-choice body of an address rule. Exactly one branch
// is set per node. Port digits are kept as text; the range check happens in
// lowering.
type Clause struct {
	Pos   lexer.Position
	From  *AddrText `parser:"'from' @@"`
	To    *AddrText `parser:"| 'to' @@"`
	Port  *string   `parser:"| 'port' @Int"`
	Proto *string   `parser:"| 'proto' @( 'tcp' | 'udp' | 'any' )"`
}

// AddrText matches an address endpoint. The keyword alternatives come
// before the generic ip class so keywords always win when text could
// lexically overlap.
type AddrText struct {
	Pos  lexer.Position
	Text string `parser:"@( 'any' | 'internal' | 'external' ) | @( IP | Int )"`
}

// Parse parses a whole rule document into its parse tree or fails with a
// SyntaxError at the first position the grammar cannot match.
func Parse(filename, input string) (*File, error) {
	file, err := fileParser.ParseString(filename, input)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return file, nil
}
