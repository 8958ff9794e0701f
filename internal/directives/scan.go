package directives

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"unicode"

	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/utils"
)

// Prefix starts every directive comment.
const Prefix = "//envcrypt:"

// Site locates an annotation for diagnostics.
type Site struct {
	File string
	Line int
}

func (s Site) IsZero() bool {
	return s.File == "" && s.Line == 0
}

func (s Site) String() string {
	if s.Line == 0 {
		return s.File
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Annotation binds a generated function to a call.
type Annotation struct {
	Func string
	Call Call
	Site Site
}

// Result is what ScanFiles found.
type Result struct {
	// Package is the package clause shared by the scanned files.
	Package     string
	Annotations []Annotation
}

// ParseDirective parses the text of one directive comment, including Prefix.
func ParseDirective(text string, site Site) (Annotation, error) {
	body := strings.TrimSpace(strings.TrimPrefix(text, Prefix))

	funcName, call := body, ""
	if i := strings.IndexFunc(body, unicode.IsSpace); i >= 0 {
		funcName, call = body[:i], strings.TrimSpace(body[i:])
	}
	if call == "" {
		return Annotation{}, &SyntaxError{Site: site, Msg: "envcrypt directive needs a function name and a call, e.g. //envcrypt:APIKey envc(\"API_KEY\")"}
	}
	if !utils.IsIdentifier(funcName) {
		return Annotation{}, &SyntaxError{Site: site, Msg: fmt.Sprintf("invalid function name %q in envcrypt directive", funcName)}
	}

	parsed, err := ParseCall(call)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.Site = site
		}
		return Annotation{}, err
	}

	return Annotation{Func: funcName, Call: parsed, Site: site}, nil
}

// ScanFiles parses Go files and collects their envcrypt directives. All
// syntax errors are reported together.
func ScanFiles(paths []string) (*Result, error) {
	fset := token.NewFileSet()
	result := &Result{}
	var errs []error

	for _, path := range paths {
		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		pkg := file.Name.Name
		if result.Package == "" {
			result.Package = pkg
		} else if result.Package != pkg {
			return nil, fmt.Errorf("%s: package %s conflicts with package %s: %w", path, pkg, result.Package, kerrors.ErrInvalidPackageName)
		}

		annotations, fileErrs := scanComments(fset, file)
		result.Annotations = append(result.Annotations, annotations...)
		errs = append(errs, fileErrs...)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return result, nil
}

func scanComments(fset *token.FileSet, file *ast.File) ([]Annotation, []error) {
	var annotations []Annotation
	var errs []error

	for _, group := range file.Comments {
		for _, c := range group.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}
			pos := fset.Position(c.Slash)
			a, err := ParseDirective(c.Text, Site{File: pos.Filename, Line: pos.Line})
			if err != nil {
				errs = append(errs, err)
				continue
			}
			annotations = append(annotations, a)
		}
	}
	return annotations, errs
}

// ScanFile is ScanFiles for a single file.
func ScanFile(path string) (*Result, error) {
	return ScanFiles([]string{path})
}
