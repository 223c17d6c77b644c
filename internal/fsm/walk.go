package fsm

// Walk consumes token character by character from start, classifying each
// character through ab and following the machine's transitions. It returns
// the sequence of states entered and true when the walk succeeds, or nil and
// false when the machine rejects the token.
//
// With requireFull set, the walk succeeds only if every character is
// consumed and an accepting state was entered along the way. Without it, a
// walk that stalls on a missing transition still succeeds if an accepting
// state was entered before the stall; the sequence accumulated so far is
// returned and is shorter than the token.
//
// The start state's own finality is ignored: only states entered during the
// walk count.
//
// buf, when non-nil, backs the returned sequence so callers walking many
// tokens can reuse one allocation. The returned slice aliases it.
func (m *Machine) Walk(ab *Alphabet, token []rune, start int32, requireFull bool, buf []int32) ([]int32, bool) {
	visited := buf[:0]
	state := start
	sawFinal := false
	for _, r := range token {
		next, ok := m.Step(state, ab.Symbol(r))
		if !ok {
			if !requireFull && sawFinal {
				return visited, true
			}
			return nil, false
		}
		state = next
		if m.IsFinal(state) {
			sawFinal = true
		}
		visited = append(visited, state)
	}
	if requireFull && !sawFinal {
		return nil, false
	}
	return visited, true
}
