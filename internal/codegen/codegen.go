package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/secrets"
	"github.com/PolarWolf314/envcrypt/internal/utils"
)

// Header is the first line of every generated file.
const Header = "// Code generated by envcrypt generate. DO NOT EDIT."

// SealedImport is the runtime package the generated functions call.
const SealedImport = "github.com/PolarWolf314/envcrypt/sealed"

// bytesPerLine bounds the width of a representation literal line.
const bytesPerLine = 32

// Func is one generated accessor.
type Func struct {
	Name string
	Var  string
	Expr *secrets.Expression
}

// File is a generated source file.
type File struct {
	Package string
	Funcs   []Func
}

var fileTemplate = template.Must(template.New("envcrypt").Funcs(template.FuncMap{
	"signature": signature,
	"body":      body,
}).Parse(`{{.Header}}

package {{.Package}}
{{if .Funcs}}
import "{{.Import}}"
{{end}}
{{- range .Funcs}}
// {{.Name}} returns ${{.Var}} as it was when the package was generated.
func {{.Name}}() {{signature .}} {
	return {{body .}}
}
{{end}}`))

// Render produces gofmt-formatted Go source for f. Representation bytes are
// written as \x escapes only.
func Render(f File) ([]byte, error) {
	if !utils.IsIdentifier(f.Package) {
		return nil, fmt.Errorf("%q: %w", f.Package, kerrors.ErrInvalidPackageName)
	}
	for _, fn := range f.Funcs {
		if !utils.IsIdentifier(fn.Name) {
			return nil, fmt.Errorf("invalid function name %q", fn.Name)
		}
		if fn.Expr == nil {
			return nil, fmt.Errorf("function %s has no expression", fn.Name)
		}
		if fn.Expr.Kind != secrets.Absent && len(fn.Expr.Representation) == 0 {
			return nil, fmt.Errorf("function %s has an empty representation", fn.Name)
		}
	}

	var buf bytes.Buffer
	err := fileTemplate.Execute(&buf, struct {
		File
		Header string
		Import string
	}{f, Header, SealedImport})
	if err != nil {
		return nil, fmt.Errorf("failed to render generated file: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated file: %w", err)
	}
	return src, nil
}

func signature(fn Func) string {
	if fn.Expr.Kind == secrets.Required {
		return "string"
	}
	return "(string, bool)"
}

func body(fn Func) string {
	switch fn.Expr.Kind {
	case secrets.Required:
		return "sealed.Reveal(" + Literal(fn.Expr.Representation) + ")"
	case secrets.Optional:
		return "sealed.Present(" + Literal(fn.Expr.Representation) + ")"
	default:
		return "sealed.Absent()"
	}
}

// Literal renders b as a Go string literal of \x escapes, split across
// concatenated lines.
func Literal(b []byte) string {
	if len(b) == 0 {
		return `""`
	}

	var sb strings.Builder
	for i := 0; i < len(b); i += bytesPerLine {
		if i > 0 {
			sb.WriteString(" +\n\t\t")
		}
		sb.WriteByte('"')
		for _, c := range b[i:min(i+bytesPerLine, len(b))] {
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
		sb.WriteByte('"')
	}
	return sb.String()
}
