package main

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// Sample is the data a --format template is executed with for each
// generated sequence.
type Sample struct {
	Index  int      // Zero-based position in the batch
	Text   string   // The sequence rendered by the tokenizer
	Tokens []string // The raw generated tokens
	Length int      // len(Tokens)
}

func formatFuncMap() template.FuncMap {
	return template.FuncMap{
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"inc":   func(i int) int { return i + 1 },
		"join":  func(sep string, s []string) string { return strings.Join(s, sep) },
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": func(s string) string {
			r, size := utf8.DecodeRuneInString(s)
			if r == utf8.RuneError {
				return s
			}
			return string(unicode.ToUpper(r)) + s[size:]
		},
	}
}

// formatter renders samples, one per line.
type formatter struct {
	tmpl *template.Template
}

// newFormatter parses text as a sample template. An empty text prints each
// sample's rendered text.
func newFormatter(text string) (*formatter, error) {
	if text == "" {
		return &formatter{}, nil
	}
	tmpl, err := template.New("format").Funcs(formatFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid --format template: %w", err)
	}
	return &formatter{tmpl: tmpl}, nil
}

func (f *formatter) write(w io.Writer, s Sample) error {
	if f.tmpl == nil {
		_, err := fmt.Fprintln(w, s.Text)
		return err
	}
	if err := f.tmpl.Execute(w, s); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
