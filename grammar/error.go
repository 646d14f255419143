package grammar

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
)

// SyntaxError reports input that does not conform to the grammar. It carries
// the failing position and the parser's description of what was expected
// there.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// wrapParseError converts a participle error into a SyntaxError so callers
// never depend on the parser library's error types.
func wrapParseError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &SyntaxError{Line: pos.Line, Column: pos.Column, Message: perr.Message()}
	}
	return err
}
