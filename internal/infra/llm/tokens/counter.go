package tokens

import (
	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates how many tokens a prompt will consume so the reranker
// can trim its candidate list to a budget before calling out.
type Counter struct {
	encoding *tiktoken.Tiktoken
}

// NewCounter loads the tokenizer for the given model. When the encoding
// cannot be loaded (offline environments), counting falls back to a
// characters/4 estimate instead of failing.
func NewCounter(model string) *Counter {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc = nil
	}
	return &Counter{encoding: enc}
}

// Count returns the token count for the given text.
func (c *Counter) Count(text string) int {
	if c == nil || c.encoding == nil {
		return (len(text) + 3) / 4
	}
	return len(c.encoding.Encode(text, nil, nil))
}
