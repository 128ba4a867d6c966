// Package codegen prints a melody as a literal table that can be compiled
// into firmware, either Arduino C++ or Go.
package codegen

import (
	"fmt"
	"go/token"
	"io"
	"regexp"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/score"
)

type Lang string

const (
	Go  Lang = "go"
	Cpp Lang = "cpp"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const cppTemplate = `// Generated from {{ .Source | base | quote }}, {{ len .Notes }} notes, {{ .Length }} ms.
const Melody<{{ len .Notes }}> {{ .Name }} = {{ "{{" }}
{{- range $i, $n := .Notes }}
  { {{- $n.Frequency }}, {{ $n.Offset }}, {{ $n.Duration -}} }{{ if lt $i (sub (len $.Notes) 1) }},{{ end }}
{{- end }}
{{ "}};" }}
`

const goTemplate = `// Code generated from {{ .Source | base | quote }} by buzzer convert. DO NOT EDIT.

package {{ .Package | default "melodies" }}

import (
	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/note"
)

// {{ .Name }} has {{ len .Notes }} notes and lasts {{ .Length }} ms.
var {{ .Name }} = melody.New(
{{- range .Notes }}
	note.New({{ .Frequency }}, {{ .Offset }}, {{ .Duration }}),
{{- end }}
)
`

var templates = map[Lang]*template.Template{
	Cpp: template.Must(template.New("cpp").Funcs(sprig.TxtFuncMap()).Parse(cppTemplate)),
	Go:  template.Must(template.New("go").Funcs(sprig.TxtFuncMap()).Parse(goTemplate)),
}

type Options struct {
	Lang    Lang
	Name    string
	Package string
	// Source is the file the table was read from, echoed in a comment.
	Source string
}

type data struct {
	Options
	Notes  []score.Entry
	Length uint32
}

func ValidName(lang Lang, name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("%q is not a valid variable name", name)
	}
	if lang == Go && token.IsKeyword(name) {
		return fmt.Errorf("%q is a Go keyword", name)
	}
	return nil
}

func Generate(w io.Writer, opts Options, m *melody.Melody) error {
	tmpl, ok := templates[opts.Lang]
	if !ok {
		return fmt.Errorf("unsupported language %q", opts.Lang)
	}
	if err := ValidName(opts.Lang, opts.Name); err != nil {
		return err
	}
	if opts.Package != "" && !identifier.MatchString(opts.Package) {
		return fmt.Errorf("%q is not a valid package name", opts.Package)
	}
	d := data{
		Options: opts,
		Notes:   score.FromMelody(opts.Name, m).Notes,
		Length:  m.Duration(),
	}
	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("could not generate %v table: %w", opts.Lang, err)
	}
	return nil
}
