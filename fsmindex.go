package fsmindex

import (
	"fmt"

	"github.com/kolkov/fsmindex/internal/engine"
	"github.com/kolkov/fsmindex/internal/fsm"
)

// Version is the fsmindex version string.
const Version = "0.1.0"

// BuildIndex compiles the inputs and builds the complete index in one call.
// This is a convenience function for one-off builds. For repeated builds or
// scans over the same inputs, use Compile followed by Indexer.Build.
//
// Parameters:
//   - automaton: the constraint automaton, compiled elsewhere
//   - alphabet: character to symbol id mapping with a catch-all symbol
//   - vocab: token text to token ids mapping
//   - config: tuning options (can be nil for defaults)
//
// Returns the finished index, or an error if the inputs are malformed or a
// scan fails.
//
// Example:
//
//	idx, err := fsmindex.BuildIndex(automaton, alphabet, vocab, nil)
func BuildIndex(automaton *Automaton, alphabet *Alphabet, vocab Vocabulary, config *Config) (*Index, error) {
	ix, err := Compile(automaton, alphabet, vocab)
	if err != nil {
		return nil, err
	}
	return ix.Build(config)
}

// Scan compiles the inputs and scans the whole vocabulary from a single
// automaton state. This is a convenience function for one-off scans; it
// returns one transition per (consumable token text, token id) pair.
//
// Example:
//
//	transitions, err := fsmindex.Scan(automaton, alphabet, vocab, 0, nil)
func Scan(automaton *Automaton, alphabet *Alphabet, vocab Vocabulary, start int32, config *Config) ([]TokenTransition, error) {
	ix, err := Compile(automaton, alphabet, vocab)
	if err != nil {
		return nil, err
	}
	return ix.Scan(start, config)
}

// Compile validates the automaton, alphabet, and vocabulary and snapshots
// them into an Indexer. The returned Indexer is independent of the inputs:
// they can be mutated or discarded afterwards.
//
// Example:
//
//	ix, err := fsmindex.Compile(automaton, alphabet, vocab)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fromZero, _ := ix.Scan(0, nil)
//	idx, _ := ix.Build(nil)
func Compile(automaton *Automaton, alphabet *Alphabet, vocab Vocabulary) (*Indexer, error) {
	if err := validateAutomaton(automaton); err != nil {
		return nil, err
	}
	if err := validateAlphabet(alphabet); err != nil {
		return nil, err
	}
	if err := validateVocabulary(vocab); err != nil {
		return nil, err
	}

	transitions := make([]fsm.Transition, 0, len(automaton.Transitions))
	for key, to := range automaton.Transitions {
		transitions = append(transitions, fsm.Transition{From: key.State, Symbol: key.Symbol, To: to})
	}
	return &Indexer{
		machine:  fsm.NewMachine(automaton.Initial, automaton.Finals, transitions),
		alphabet: fsm.NewAlphabet(alphabet.Symbols, alphabet.Anything),
		vocab:    engine.NewVocab(vocab),
	}, nil
}

// MustCompile is like Compile but panics if the inputs are malformed.
// It simplifies initialization of global indexer variables.
func MustCompile(automaton *Automaton, alphabet *Alphabet, vocab Vocabulary) *Indexer {
	ix, err := Compile(automaton, alphabet, vocab)
	if err != nil {
		panic(err)
	}
	return ix
}

func validateAutomaton(a *Automaton) error {
	if a == nil {
		return &InputError{Input: "automaton", Message: "automaton is nil"}
	}
	if a.Initial < 0 {
		return &InputError{Input: "automaton", Message: fmt.Sprintf("initial state %d is negative", a.Initial)}
	}
	for _, f := range a.Finals {
		if f < 0 {
			return &InputError{Input: "automaton", Message: fmt.Sprintf("final state %d is negative", f)}
		}
	}
	for key, to := range a.Transitions {
		if key.State < 0 || key.Symbol < 0 || to < 0 {
			return &InputError{Input: "automaton", Message: fmt.Sprintf("transition (%d, %d) -> %d has a negative id", key.State, key.Symbol, to)}
		}
	}
	return nil
}

func validateAlphabet(a *Alphabet) error {
	if a == nil {
		return &InputError{Input: "alphabet", Message: "alphabet is nil"}
	}
	if a.Anything < 0 {
		return &InputError{Input: "alphabet", Message: fmt.Sprintf("catch-all symbol %d is negative", a.Anything)}
	}
	for r, sym := range a.Symbols {
		if sym < 0 {
			return &InputError{Input: "alphabet", Message: fmt.Sprintf("symbol id %d for %q is negative", sym, r)}
		}
	}
	return nil
}

func validateVocabulary(v Vocabulary) error {
	for text := range v {
		if text == "" {
			return &InputError{Input: "vocabulary", Message: "token text is empty"}
		}
	}
	return nil
}
