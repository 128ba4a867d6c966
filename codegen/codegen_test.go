package codegen

import (
	"bytes"
	"go/parser"
	"go/token"
	"testing"

	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoNotes() *melody.Melody {
	return melody.New(note.New(880, 300, 100), note.New(440, 0, 200))
}

func TestCpp(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, Options{Lang: Cpp, Name: "MY_MELODY", Source: "/tmp/scores/beep.yaml"}, twoNotes())
	require.NoError(t, err)

	assert.Equal(t, `// Generated from "beep.yaml", 2 notes, 400 ms.
const Melody<2> MY_MELODY = {{
  {440, 0, 200},
  {880, 300, 100}
}};
`, buf.String())
}

func TestCppEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, Options{Lang: Cpp, Name: "NOTHING", Source: "x"}, melody.New()))
	assert.Contains(t, buf.String(), "const Melody<0> NOTHING = {{\n}};\n")
}

func TestGoIsValidSource(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, Options{Lang: Go, Name: "Beep", Package: "tunes", Source: "beep.mid"}, twoNotes())
	require.NoError(t, err)

	out := buf.String()
	assert := assert.New(t)
	assert.Contains(out, "package tunes\n")
	assert.Contains(out, "var Beep = melody.New(\n\tnote.New(440, 0, 200),\n\tnote.New(880, 300, 100),\n)\n")

	_, err = parser.ParseFile(token.NewFileSet(), "beep.go", out, parser.AllErrors)
	assert.NoError(err)
}

func TestGoDefaultPackage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, Options{Lang: Go, Name: "Beep"}, twoNotes()))
	assert.Contains(t, buf.String(), "package melodies\n")
}

func TestRejectsBadInput(t *testing.T) {
	cases := map[string]Options{
		"lang":          {Lang: "rust", Name: "x"},
		"name":          {Lang: Cpp, Name: "my melody"},
		"leading digit": {Lang: Cpp, Name: "1abc"},
		"keyword":       {Lang: Go, Name: "func"},
		"package":       {Lang: Go, Name: "ok", Package: "a-b"},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Error(t, Generate(&buf, opts, twoNotes()))
			assert.Empty(t, buf.String())
		})
	}
}
