// Package fsmindex precomputes token transition indexes for constrained
// text generation.
//
// Given a deterministic finite automaton (compiled elsewhere from a regular
// expression or grammar), an alphabet mapping characters to symbol ids, and
// a tokenizer vocabulary, fsmindex computes, for every automaton state
// reachable from the initial state, which vocabulary tokens the automaton
// can consume in full from that state and the state each token lands in. A
// decoding loop uses the result to mask disallowed tokens at every step
// without touching the automaton again.
//
// # Quick Start
//
// For a one-off build:
//
//	idx, err := fsmindex.BuildIndex(automaton, alphabet, vocab, nil)
//
// With configuration:
//
//	idx, err := fsmindex.BuildIndex(automaton, alphabet, vocab, &fsmindex.Config{
//	    Workers: 8,
//	})
//
// # Compiled Indexers
//
// For repeated scans or builds over the same inputs:
//
//	ix, err := fsmindex.Compile(automaton, alphabet, vocab)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fromZero, err := ix.Scan(0, nil)
//	idx, err := ix.Build(nil)
//
// # Configuration
//
// The [Config] type tunes scheduling only:
//   - Worker count for the parallel vocabulary scan
//   - Vocabulary size threshold below which scans stay single-threaded
//
// Results are identical for every setting.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [InputError]: malformed automaton, alphabet, or vocabulary data
//   - [ScanError]: a scan worker failed; no partial results are returned
//
// A missing automaton transition is never an error: it is the ordinary
// rejection outcome of walking a token.
//
// # Thread Safety
//
// Compiled [Indexer] objects and finished [Index] snapshots are safe for
// concurrent use. Each call to [Indexer.Scan] or [Indexer.Build] spawns its
// own workers and joins them before returning.
package fsmindex
