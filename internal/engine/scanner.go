// Package engine runs vocabulary scans against machine states and the
// reachable-state closure that assembles the full index.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kolkov/fsmindex/internal/fsm"
)

// Pair records that consuming one vocabulary token moves the machine to End.
type Pair struct {
	Token int32
	End   int32
}

// WorkerError reports a scan worker that failed. One failed worker voids the
// whole scan; callers never see partial results.
type WorkerError struct {
	State  int32 // machine state being scanned
	Worker int   // index of the failing shard
	Cause  error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d scanning state %d: %v", e.Worker, e.State, e.Cause)
}

func (e *WorkerError) Unwrap() error { return e.Cause }

// Scanner scans a flattened vocabulary against the states of one machine.
//
// A Scanner is immutable after construction and safe for concurrent use;
// every Scan call runs its own workers.
type Scanner struct {
	machine  *fsm.Machine
	alphabet *fsm.Alphabet
	vocab    *Vocab
	workers  int
	serial   int // vocabulary size at or below which a scan stays on one goroutine
}

// NewScanner builds a Scanner. Worker counts below one clamp to one and
// negative serial thresholds clamp to zero.
func NewScanner(machine *fsm.Machine, alphabet *fsm.Alphabet, vocab *Vocab, workers, serialThreshold int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	if serialThreshold < 0 {
		serialThreshold = 0
	}
	return &Scanner{
		machine:  machine,
		alphabet: alphabet,
		vocab:    vocab,
		workers:  workers,
		serial:   serialThreshold,
	}
}

// Scan walks every vocabulary token from state and returns a pair for each
// token the machine consumes whole, in vocabulary order. Tokens the machine
// rejects or consumes only partially contribute nothing.
//
// Small vocabularies are scanned on the calling goroutine; larger ones fan
// out across contiguous shards, one goroutine per shard. Shard results are
// concatenated in shard order, so the outcome does not depend on worker
// count.
func (s *Scanner) Scan(state int32) ([]Pair, error) {
	began := time.Now()
	n := s.vocab.Len()

	if n <= s.serial || s.workers == 1 {
		pairs, err := s.scanShard(state, 0, n)
		if err != nil {
			return nil, &WorkerError{State: state, Worker: 0, Cause: err}
		}
		slog.Debug("state scanned", "state", state, "tokens", n, "pairs", len(pairs), "workers", 1, "duration", time.Since(began))
		return pairs, nil
	}

	shards := shardBounds(n, s.workers)
	results := make([][]Pair, len(shards))
	var g errgroup.Group
	for i, sh := range shards {
		g.Go(func() error {
			pairs, err := s.scanShard(state, sh.lo, sh.hi)
			if err != nil {
				return &WorkerError{State: state, Worker: i, Cause: err}
			}
			results[i] = pairs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	pairs := make([]Pair, 0, total)
	for _, r := range results {
		pairs = append(pairs, r...)
	}
	slog.Debug("state scanned", "state", state, "tokens", n, "pairs", len(pairs), "workers", len(shards), "duration", time.Since(began))
	return pairs, nil
}

// scanShard walks entries[lo:hi] from state on the calling goroutine. A
// panic inside the loop is recovered and returned as an error, so one
// malformed entry aborts the scan instead of the process.
func (s *Scanner) scanShard(state int32, lo, hi int) (pairs []Pair, err error) {
	defer func() {
		if r := recover(); r != nil {
			pairs, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	var buf []int32
	for i := lo; i < hi; i++ {
		e := &s.vocab.entries[i]
		seq, ok := s.machine.Walk(s.alphabet, e.Runes, state, false, buf)
		if !ok {
			continue
		}
		buf = seq
		if len(seq) != len(e.Runes) {
			// The walk stalled on an accepting state partway through the
			// token. Feeding such a token would strand characters, so it is
			// not consumable from here.
			continue
		}
		end := seq[len(seq)-1]
		for _, id := range e.IDs {
			pairs = append(pairs, Pair{Token: id, End: end})
		}
	}
	return pairs, nil
}

type shardRange struct {
	lo, hi int
}

// shardBounds splits n entries into contiguous ranges of near-equal size, at
// most one per worker. Sizes round up, so the last shard may be short and
// trailing workers may receive none.
func shardBounds(n, workers int) []shardRange {
	per := (n + workers - 1) / workers
	shards := make([]shardRange, 0, workers)
	for lo := 0; lo < n; lo += per {
		shards = append(shards, shardRange{lo: lo, hi: min(lo+per, n)})
	}
	return shards
}
