// FILE: lixenwraith/dotenv/stringify_test.go
package dotenv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringify(t *testing.T) {
	t.Run("Canonical", func(t *testing.T) {
		doc := New().
			Comment(" app").
			Blank().
			Item("NAME", "demo").
			Item("EMPTY", "")

		assert.Equal(t, "# app\n\nNAME='demo'\nEMPTY=''", Stringify(doc, NewlineLF))
		assert.Equal(t, "# app\r\n\r\nNAME='demo'\r\nEMPTY=''", Stringify(doc, NewlineCRLF))
	})

	t.Run("Quoting", func(t *testing.T) {
		tests := []struct {
			value string
			want  string
		}{
			{"plain", "A='plain'"},
			{"with space", "A='with space'"},
			{`C:\dir`, `A='C:\dir'`},
			{"it's", `A="it's"`},
			{"two\nlines", "A=\"two\nlines\""},
			{`it's "quoted"`, `A="it's \"quoted\""`},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, Stringify(New().Item("A", tt.value), NewlineLF))
		}
	})

	t.Run("DefaultNewline", func(t *testing.T) {
		doc := New().Item("A", "1").Item("B", "2")
		assert.Equal(t, "A='1'"+PlatformNewline()+"B='2'", Stringify(doc, ""))
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		assert.Equal(t, "", Stringify(New(), NewlineLF))
	})

	t.Run("WriteToAndString", func(t *testing.T) {
		doc := New().Comment("x").Item("A", "1")

		var buf bytes.Buffer
		n, err := doc.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), n)
		assert.Equal(t, "#x\nA='1'", buf.String())
		assert.Equal(t, buf.String(), doc.String())
	})
}

func TestRoundTrip(t *testing.T) {
	t.Run("MapSurvives", func(t *testing.T) {
		doc := New().
			Comment(" settings").
			Item("HOST", "example.com").
			Blank().
			Item("PATH_LIST", "/usr/bin:/bin").
			Item("SPACED", "a b  c").
			Item("EMPTY", "").
			Item("HOST", "override").
			Item("UNICODE", "日本語")

		for _, nl := range []string{NewlineLF, NewlineCRLF} {
			parsed, err := Parse(Stringify(doc, nl))
			require.NoError(t, err)
			assert.Equal(t, doc.ToMap(), parsed.ToMap())
		}
	})

	t.Run("TokensSurvive", func(t *testing.T) {
		input := "# header\n\nA='1'\n# mid\nB='two words'"
		doc, err := Parse(input)
		require.NoError(t, err)
		assert.Equal(t, input, Stringify(doc, NewlineLF))
	})

	t.Run("DoubleQuotedValues", func(t *testing.T) {
		doc := New().Item("A", "it's").Item("B", "line1\nline2").Item("C", `say "x"`+"\n")
		parsed, err := Parse(Stringify(doc, NewlineLF))
		require.NoError(t, err)
		assert.Equal(t, doc.ToMap(), parsed.ToMap())
	})
}
