package fsmindex

import (
	"errors"

	"github.com/kolkov/fsmindex/internal/engine"
	"github.com/kolkov/fsmindex/internal/fsm"
)

// Indexer is a compiled (automaton, alphabet, vocabulary) triple ready for
// scanning and index building. It is safe for concurrent use; each call to
// Scan or Build runs an independent set of workers.
type Indexer struct {
	machine  *fsm.Machine
	alphabet *fsm.Alphabet
	vocab    *engine.Vocab
}

// Scan walks every vocabulary token from start and returns a transition for
// each token the automaton consumes in full, in a stable order. Tokens the
// automaton rejects or consumes only partially are absent.
//
// start may be any state id, resolved or not; scanning a state with no
// outgoing transitions returns an empty slice.
//
// If config is nil, default configuration is used.
func (ix *Indexer) Scan(start int32, config *Config) ([]TokenTransition, error) {
	pairs, err := ix.scanner(config).Scan(start)
	if err != nil {
		return nil, scanError(err)
	}
	out := make([]TokenTransition, len(pairs))
	for i, p := range pairs {
		out[i] = TokenTransition{TokenID: p.Token, EndState: p.End}
	}
	return out, nil
}

// Build resolves every automaton state reachable from the initial state
// through whole vocabulary tokens and returns the finished Index. Each
// discovered state is scanned exactly once; scans run one after another,
// each fanning out internally.
//
// If config is nil, default configuration is used.
func (ix *Indexer) Build(config *Config) (*Index, error) {
	states, err := ix.scanner(config).BuildIndex()
	if err != nil {
		return nil, scanError(err)
	}
	return newIndex(ix.machine.Initial(), ix.machine.Finals(), states), nil
}

// Initial returns the automaton state builds start from.
func (ix *Indexer) Initial() int32 {
	return ix.machine.Initial()
}

// VocabLen returns the number of distinct token texts retained at compile
// time. Texts bound to no ids are dropped by Compile and not counted.
func (ix *Indexer) VocabLen() int {
	return ix.vocab.Len()
}

// scanner assembles an engine scanner for one operation.
func (ix *Indexer) scanner(config *Config) *engine.Scanner {
	if config == nil {
		config = &Config{}
	}
	config.applyDefaults()
	return engine.NewScanner(ix.machine, ix.alphabet, ix.vocab, config.Workers, config.SerialThreshold)
}

// scanError converts an engine failure to the public error type.
func scanError(err error) error {
	var we *engine.WorkerError
	if errors.As(err, &we) {
		return &ScanError{State: we.State, Err: we.Cause}
	}
	return err
}
