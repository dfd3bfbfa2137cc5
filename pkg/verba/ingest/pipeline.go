package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// Extraction is the result of one pass over a markup document.
type Extraction struct {
	Title      string
	TitleFound bool
	Tokens     []string
	Chunks     int
}

// Pipeline turns raw markup into a title and a stream of word tokens.
type Pipeline struct {
	titler TitleStrategy
}

// NewPipeline creates a pipeline with the given title strategy.
// A nil strategy falls back to MatchLabel.
func NewPipeline(titler TitleStrategy) *Pipeline {
	if titler == nil {
		titler = MatchLabel
	}
	return &Pipeline{titler: titler}
}

// Process walks the document's text chunks in order, skipping markup. Every
// chunk is tokenized; the first chunk the title strategy accepts supplies
// the title, and later matches are ignored. Plain text without any markup
// arrives as a single chunk.
func (p *Pipeline) Process(markup string) Extraction {
	var ex Extraction

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF on an in-memory reader: end of input.
			break
		}
		if tt != html.TextToken {
			continue
		}

		chunk := string(z.Text())
		ex.Chunks++

		if !ex.TitleFound {
			if title, ok := p.titler(chunk); ok {
				ex.Title = title
				ex.TitleFound = true
			}
		}

		ex.Tokens = append(ex.Tokens, Tokenize(chunk)...)
	}

	return ex
}
