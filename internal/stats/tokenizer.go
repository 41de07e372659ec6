package stats

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tiktoken encoding used by `stats --tokens`.
const DefaultEncoding = "cl100k_base"

// TokenCounter estimates how many LLM tokens a text takes.
type TokenCounter interface {
	Count(text string) int
}

// Tokenizer is a TokenCounter backed by a tiktoken encoding.
type Tokenizer struct {
	name string
	enc  *tiktoken.Tiktoken
}

// NewTokenizer loads the named encoding. tiktoken downloads the BPE ranks
// on first use, so this fails when offline with a cold cache.
func NewTokenizer(encoding string) (*Tokenizer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", encoding, err)
	}
	return &Tokenizer{name: encoding, enc: enc}, nil
}

// Encoding names the loaded encoding.
func (t *Tokenizer) Encoding() string {
	return t.name
}

func (t *Tokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}
