package engine

import "slices"

// Entry is one vocabulary item after flattening: the token text decoded to
// characters plus every token id bound to that text.
type Entry struct {
	Text  string
	Runes []rune
	IDs   []int32
}

// Vocab is a vocabulary flattened into a stable order, ascending by token
// text. Scan shards are contiguous ranges of this order, which keeps results
// identical for any worker count.
type Vocab struct {
	entries []Entry
}

// NewVocab flattens tokens into a Vocab. Texts bound to no token ids are
// dropped: they can never contribute a pair. Id slices are copied.
func NewVocab(tokens map[string][]int32) *Vocab {
	texts := make([]string, 0, len(tokens))
	for text, ids := range tokens {
		if len(ids) == 0 {
			continue
		}
		texts = append(texts, text)
	}
	slices.Sort(texts)

	entries := make([]Entry, len(texts))
	for i, text := range texts {
		entries[i] = Entry{
			Text:  text,
			Runes: []rune(text),
			IDs:   slices.Clone(tokens[text]),
		}
	}
	return &Vocab{entries: entries}
}

// Len returns the number of distinct token texts.
func (v *Vocab) Len() int {
	return len(v.entries)
}
