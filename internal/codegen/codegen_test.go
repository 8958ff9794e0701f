package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/secrets"
	"github.com/PolarWolf314/envcrypt/sealed"
)

const plaintext = "s3cr3t-value-that-must-not-leak"

func encode(t *testing.T, env secrets.MapEnvironment, name string, required bool) *secrets.Expression {
	t.Helper()
	expr, err := secrets.NewEncoder(env).Encode(name, required, "")
	require.NoError(t, err)
	return expr
}

// literalBytes concatenates the string literals inside fn's body.
func literalBytes(t *testing.T, file *ast.File, fn string) []byte {
	t.Helper()
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Name.Name != fn {
			continue
		}
		var out []byte
		ast.Inspect(fd.Body, func(n ast.Node) bool {
			lit, ok := n.(*ast.BasicLit)
			if ok && lit.Kind == token.STRING {
				s, err := strconv.Unquote(lit.Value)
				require.NoError(t, err)
				out = append(out, s...)
			}
			return true
		})
		return out
	}
	t.Fatalf("function %s not found", fn)
	return nil
}

func TestRender(t *testing.T) {
	env := secrets.MapEnvironment{"API_KEY": plaintext, "DSN": "https://example.invalid/1"}

	f := File{
		Package: "config",
		Funcs: []Func{
			{Name: "APIKey", Var: "API_KEY", Expr: encode(t, env, "API_KEY", true)},
			{Name: "DSN", Var: "DSN", Expr: encode(t, env, "DSN", false)},
			{Name: "Missing", Var: "MISSING", Expr: encode(t, env, "MISSING", false)},
		},
	}

	src, err := Render(f)
	require.NoError(t, err)
	out := string(src)

	assert.True(t, strings.HasPrefix(out, Header+"\n"))
	assert.Contains(t, out, "package config")
	assert.Contains(t, out, `import "`+SealedImport+`"`)
	assert.Contains(t, out, "func APIKey() string {")
	assert.Contains(t, out, "func DSN() (string, bool) {")
	assert.Contains(t, out, "return sealed.Absent()")
	assert.Contains(t, out, "// APIKey returns $API_KEY")

	assert.NotContains(t, out, plaintext)
	assert.NotContains(t, out, "example.invalid")

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "envcrypt_gen.go", src, parser.ParseComments)
	require.NoError(t, err)

	got, err := sealed.Open(literalBytes(t, file, "APIKey"))
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	got, err = sealed.Open(literalBytes(t, file, "DSN"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.invalid/1", got)
}

func TestRenderWithoutFuncsOmitsImport(t *testing.T) {
	src, err := Render(File{Package: "config"})
	require.NoError(t, err)
	assert.NotContains(t, string(src), "import")

	_, err = parser.ParseFile(token.NewFileSet(), "", src, 0)
	assert.NoError(t, err)
}

func TestRenderRejectsInvalidInput(t *testing.T) {
	required := &secrets.Expression{Kind: secrets.Required, Representation: []byte{2}}

	_, err := Render(File{Package: "my-config"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidPackageName)

	_, err = Render(File{Package: "config", Funcs: []Func{{Name: "1st", Expr: required}}})
	assert.ErrorContains(t, err, `invalid function name "1st"`)

	_, err = Render(File{Package: "config", Funcs: []Func{{Name: "A"}}})
	assert.ErrorContains(t, err, "has no expression")

	_, err = Render(File{Package: "config", Funcs: []Func{{Name: "A", Expr: &secrets.Expression{Kind: secrets.Required}}}})
	assert.ErrorContains(t, err, "empty representation")
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, `""`, Literal(nil))
	assert.Equal(t, `"\x00\x41\xff"`, Literal([]byte{0x00, 'A', 0xff}))

	long := make([]byte, 70)
	for i := range long {
		long[i] = byte(i)
	}
	lit := Literal(long)
	assert.Equal(t, 2, strings.Count(lit, " +\n"), "70 bytes span three lines")

	var joined []byte
	for _, part := range strings.Split(lit, " +\n\t\t") {
		s, err := strconv.Unquote(part)
		require.NoError(t, err)
		joined = append(joined, s...)
	}
	assert.Equal(t, long, joined)
}
