package directives

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"

	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
)

// Syntax error messages. The wording is part of the user contract.
const (
	EnvcSyntaxMessage       = "Invalid syntax. Valid forms are `envc(\"VAR_NAME\")` and `envc(\"VAR_NAME\", \"custom error message\")`."
	OptionEnvcSyntaxMessage = "Invalid syntax. Expected input of the form `option_envc(\"VAR_NAME\")`"
)

// Macro names the two call forms.
type Macro int

const (
	// Envc embeds a required variable.
	Envc Macro = iota
	// OptionEnvc embeds a variable that may be absent.
	OptionEnvc
)

func (m Macro) String() string {
	if m == OptionEnvc {
		return "option_envc"
	}
	return "envc"
}

func (m Macro) syntaxMessage() string {
	if m == OptionEnvc {
		return OptionEnvcSyntaxMessage
	}
	return EnvcSyntaxMessage
}

// Call is a parsed envc or option_envc invocation.
type Call struct {
	Macro Macro
	Var   string

	// Message replaces the default missing-variable diagnostic.
	// Only envc accepts one.
	Message    string
	HasMessage bool
}

// Required reports whether a missing variable fails the build.
func (c Call) Required() bool {
	return c.Macro == Envc
}

func (c Call) String() string {
	if c.HasMessage {
		return fmt.Sprintf("%s(%q, %q)", c.Macro, c.Var, c.Message)
	}
	return fmt.Sprintf("%s(%q)", c.Macro, c.Var)
}

// SyntaxError reports a malformed call. Without a Site its message is
// exactly Msg.
type SyntaxError struct {
	Site Site
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Site.IsZero() {
		return e.Msg
	}
	return e.Site.String() + ": " + e.Msg
}

func (e *SyntaxError) Unwrap() error {
	return kerrors.ErrInvalidSyntax
}

type lexeme struct {
	tok token.Token
	lit string
}

func lex(src string) ([]lexeme, bool) {
	var s scanner.Scanner
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	failed := false
	s.Init(file, []byte(src), func(token.Position, string) { failed = true }, 0)

	var out []lexeme
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		// The scanner inserts a semicolon after a closing paren at end of input.
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		out = append(out, lexeme{tok, lit})
	}
	return out, !failed
}

// ParseCall parses the text of a single call such as
// envc("API_KEY", "set API_KEY first").
func ParseCall(src string) (Call, error) {
	toks, ok := lex(src)
	if len(toks) == 0 || toks[0].tok != token.IDENT {
		return Call{}, &SyntaxError{Msg: fmt.Sprintf("expected envc(...) or option_envc(...), got %q", src)}
	}

	var macro Macro
	switch toks[0].lit {
	case "envc":
		macro = Envc
	case "option_envc":
		macro = OptionEnvc
	default:
		return Call{}, &SyntaxError{Msg: fmt.Sprintf("unknown envcrypt macro %q", toks[0].lit)}
	}

	fail := &SyntaxError{Msg: macro.syntaxMessage()}
	if !ok {
		return Call{}, fail
	}

	args, ok := callArgs(toks[1:])
	if !ok {
		return Call{}, fail
	}

	call := Call{Macro: macro}
	switch {
	case len(args) == 1:
		call.Var = args[0]
	case len(args) == 2 && macro == Envc:
		call.Var = args[0]
		call.Message = args[1]
		call.HasMessage = true
	default:
		return Call{}, fail
	}

	if call.Var == "" {
		return Call{}, fail
	}
	return call, nil
}

// callArgs accepts ( STRING {, STRING} ) and returns the unquoted strings.
func callArgs(toks []lexeme) ([]string, bool) {
	if len(toks) < 3 || toks[0].tok != token.LPAREN || toks[len(toks)-1].tok != token.RPAREN {
		return nil, false
	}

	inner := toks[1 : len(toks)-1]
	var args []string
	for i, t := range inner {
		if i%2 == 1 {
			if t.tok != token.COMMA {
				return nil, false
			}
			continue
		}
		if t.tok != token.STRING {
			return nil, false
		}
		s, err := strconv.Unquote(t.lit)
		if err != nil {
			return nil, false
		}
		args = append(args, s)
	}

	// A trailing comma leaves an even number of tokens.
	if len(inner)%2 == 0 {
		return nil, false
	}
	return args, true
}
