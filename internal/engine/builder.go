package engine

import (
	"cmp"
	"log/slog"
	"time"

	"github.com/emirpasic/gods/v2/trees/binaryheap"
)

// BuildIndex scans every machine state reachable from the initial state
// through whole vocabulary tokens and returns the complete map: state to
// token id to end state. A state whose scan retains no tokens still gets an
// entry, so lookups can tell "nothing consumable here" from "state never
// resolved".
//
// The frontier is a min-heap keyed on state id, so pending states resolve in
// ascending order no matter how they were discovered. A state may sit on the
// frontier more than once before it resolves; popping an already resolved
// state is a no-op.
//
// Any scan failure voids the whole build.
func (s *Scanner) BuildIndex() (map[int32]map[int32]int32, error) {
	began := time.Now()
	index := make(map[int32]map[int32]int32)

	frontier := binaryheap.NewWith(func(a, b int32) int { return cmp.Compare(a, b) })
	frontier.Push(s.machine.Initial())

	for !frontier.Empty() {
		state, _ := frontier.Pop()
		if _, done := index[state]; done {
			continue
		}
		pairs, err := s.Scan(state)
		if err != nil {
			return nil, err
		}
		tokens := make(map[int32]int32, len(pairs))
		for _, p := range pairs {
			tokens[p.Token] = p.End
			if _, done := index[p.End]; !done {
				frontier.Push(p.End)
			}
		}
		index[state] = tokens
	}

	slog.Debug("index built", "states", len(index), "duration", time.Since(began))
	return index, nil
}
