package fsmindex

import (
	"fmt"
	"slices"

	"github.com/coregx/coregex"
)

// Vocabulary maps token text to the token ids that decode to it. Tokenizers
// routinely assign several ids to one surface text, so the value is a slice;
// every id bound to a consumable text appears in scan results and in the
// index.
//
// Token texts must be non-empty. Texts bound to an empty id slice are
// ignored.
type Vocabulary map[string][]int32

// Exclude returns a copy of the vocabulary without the tokens whose text
// matches pattern. Tokenizer vocabularies carry control tokens such as
// "<|endoftext|>" that must never be offered during constrained generation;
// excluding them before Compile keeps them out of every scan.
//
// The pattern uses ordinary Go regular expression syntax and matches
// anywhere in the text; anchor it to match whole texts.
//
// Example:
//
//	vocab, err := vocab.Exclude(`^<\|.*\|>$`)
func (v Vocabulary) Exclude(pattern string) (Vocabulary, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}
	out := make(Vocabulary, len(v))
	for text, ids := range v {
		if re.MatchString(text) {
			continue
		}
		out[text] = slices.Clone(ids)
	}
	return out, nil
}
