package fsmindex

import (
	"maps"
	"slices"
)

// TokenTransition pairs a token id with the state the automaton lands in
// after consuming that token's text in full.
type TokenTransition struct {
	TokenID  int32
	EndState int32
}

// Index is the precomputed result of a build: for every automaton state
// reachable from the initial state, the set of vocabulary tokens consumable
// in full from it and the state each token leads to.
//
// An Index is immutable and safe for concurrent use. During generation it
// answers, per step, which token ids are allowed from the current state and
// where each one leads, with no automaton walking at all.
type Index struct {
	initial int32
	finals  map[int32]struct{}
	states  map[int32]map[int32]int32
}

// newIndex wraps a resolved state map. The map is owned by the Index from
// here on.
func newIndex(initial int32, finals []int32, states map[int32]map[int32]int32) *Index {
	fs := make(map[int32]struct{}, len(finals))
	for _, f := range finals {
		fs[f] = struct{}{}
	}
	return &Index{initial: initial, finals: fs, states: states}
}

// Initial returns the automaton state generation starts from.
func (ix *Index) Initial() int32 {
	return ix.initial
}

// Len returns the number of resolved states.
func (ix *Index) Len() int {
	return len(ix.states)
}

// States returns the resolved states in ascending order. The initial state
// is always present; a state with no consumable tokens is still listed.
func (ix *Index) States() []int32 {
	return slices.Sorted(maps.Keys(ix.states))
}

// Contains reports whether state was resolved by the build.
func (ix *Index) Contains(state int32) bool {
	_, ok := ix.states[state]
	return ok
}

// Final reports whether state is an accepting state of the automaton.
// Generation may stop cleanly only on accepting states.
func (ix *Index) Final(state int32) bool {
	_, ok := ix.finals[state]
	return ok
}

// Next returns the state reached by consuming token from state. It returns
// false when state was never resolved or the token is not consumable there.
func (ix *Index) Next(state, token int32) (int32, bool) {
	next, ok := ix.states[state][token]
	return next, ok
}

// Allowed returns the ids of every token consumable in full from state, in
// ascending order. The result is nil when state was never resolved and empty
// when nothing is consumable from it.
func (ix *Index) Allowed(state int32) []int32 {
	tokens, ok := ix.states[state]
	if !ok {
		return nil
	}
	out := make([]int32, 0, len(tokens))
	for id := range tokens {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Transitions returns every (token id, end state) pair for state, ascending
// by token id. The result is nil when state was never resolved.
func (ix *Index) Transitions(state int32) []TokenTransition {
	tokens, ok := ix.states[state]
	if !ok {
		return nil
	}
	out := make([]TokenTransition, 0, len(tokens))
	for _, id := range slices.Sorted(maps.Keys(tokens)) {
		out = append(out, TokenTransition{TokenID: id, EndState: tokens[id]})
	}
	return out
}

// StateMap returns a deep copy of the index as plain maps: state to token id
// to end state. The copy is independent of the Index; mutating it has no
// effect on future lookups.
func (ix *Index) StateMap() map[int32]map[int32]int32 {
	out := make(map[int32]map[int32]int32, len(ix.states))
	for state, tokens := range ix.states {
		out[state] = maps.Clone(tokens)
	}
	return out
}
