package corpus

import (
	"bufio"
	"io"
	"regexp"
)

// DefaultTokenizer splits text into words and punctuation with regular
// expressions. Sentence-ending punctuation ends a sequence.
type DefaultTokenizer struct {
	separator  string
	eoc        string
	wordRegex  *regexp.Regexp
	eocRegex   *regexp.Regexp
	noSepRegex *regexp.Regexp
	noEOCRegex *regexp.Regexp
}

// Option configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithSeparator sets the string placed between rendered tokens.
// Default: " "
func WithSeparator(sep string) Option {
	return func(t *DefaultTokenizer) { t.separator = sep }
}

// WithEOC sets the string appended to a rendered sequence.
// Default: "."
func WithEOC(eoc string) Option {
	return func(t *DefaultTokenizer) { t.eoc = eoc }
}

// WithWordRegex sets the pattern that extracts tokens from input text.
// Default: `[\w']+|[.,!?;]`
func WithWordRegex(expr string) Option {
	return func(t *DefaultTokenizer) { t.wordRegex = regexp.MustCompile(expr) }
}

// WithEOCRegex sets the pattern of tokens that end a sequence.
// Default: `^[.!?]$`
func WithEOCRegex(expr string) Option {
	return func(t *DefaultTokenizer) { t.eocRegex = regexp.MustCompile(expr) }
}

// NewDefaultTokenizer creates a tokenizer with default settings, which opts
// may override.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		separator:  " ",
		eoc:        ".",
		wordRegex:  regexp.MustCompile(`[\w']+|[.,!?;]`),
		eocRegex:   regexp.MustCompile(`^[.!?]$`),
		noSepRegex: regexp.MustCompile(`^[.,!?;]`),
		noEOCRegex: regexp.MustCompile(`^[.,!?;]`),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Separator returns the configured separator, or nothing before punctuation.
func (t *DefaultTokenizer) Separator(_, next string) string {
	if t.noSepRegex.MatchString(next) {
		return ""
	}
	return t.separator
}

// EOC returns the configured end string, or nothing after punctuation.
func (t *DefaultTokenizer) EOC(last string) string {
	if t.noEOCRegex.MatchString(last) {
		return ""
	}
	return t.eoc
}

// NewStream returns a stream over r.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	return &regexStream{
		scanner:   bufio.NewScanner(r),
		wordRegex: t.wordRegex,
		eocRegex:  t.eocRegex,
	}
}

type regexStream struct {
	scanner   *bufio.Scanner
	buffer    []string
	wordRegex *regexp.Regexp
	eocRegex  *regexp.Regexp
}

func (s *regexStream) Next() (*Token, error) {
	for len(s.buffer) == 0 {
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		s.buffer = s.wordRegex.FindAllString(s.scanner.Text(), -1)
	}

	word := s.buffer[0]
	s.buffer = s.buffer[1:]
	return &Token{Text: word, EOC: s.eocRegex.MatchString(word)}, nil
}

// RuneTokenizer treats each input line as one sequence of characters. It
// suits name and word generation, where the chain runs over letters.
type RuneTokenizer struct{}

// NewRuneTokenizer returns a RuneTokenizer.
func NewRuneTokenizer() RuneTokenizer {
	return RuneTokenizer{}
}

// Separator returns nothing; characters are rendered adjacent.
func (RuneTokenizer) Separator(_, _ string) string { return "" }

// EOC returns nothing.
func (RuneTokenizer) EOC(string) string { return "" }

// NewStream returns a stream over r that yields one token per character and
// an EOC token at the end of every line.
func (RuneTokenizer) NewStream(r io.Reader) StreamTokenizer {
	return &runeStream{scanner: bufio.NewScanner(r)}
}

type runeStream struct {
	scanner *bufio.Scanner
	line    []rune
	pending bool
}

func (s *runeStream) Next() (*Token, error) {
	for !s.pending {
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		s.line = []rune(s.scanner.Text())
		s.pending = true
	}

	if len(s.line) == 0 {
		s.pending = false
		return &Token{EOC: true}, nil
	}
	r := s.line[0]
	s.line = s.line[1:]
	return &Token{Text: string(r)}, nil
}
