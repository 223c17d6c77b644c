// Package fsm implements the deterministic automaton core: the compiled
// machine, the alphabet mapping characters to transition symbols, and the
// walk loop that consumes a token's characters against the machine.
package fsm

import "slices"

// Transition is one entry of the machine's transition function: reading
// Symbol in state From moves the machine to To.
type Transition struct {
	From   int32
	Symbol int32
	To     int32
}

// Machine is a deterministic finite automaton over integer states and
// symbols. Its transition function is partial: a (state, symbol) pair with
// no entry means the machine cannot continue from there. The structure need
// not be minimal or complete.
//
// A Machine is immutable after construction and safe for concurrent readers.
type Machine struct {
	transitions map[uint64]int32
	initial     int32
	finals      map[int32]struct{}
}

// NewMachine builds a Machine from its initial state, accepting states, and
// transition entries. All inputs are copied; later transitions for the same
// (state, symbol) pair overwrite earlier ones.
func NewMachine(initial int32, finals []int32, transitions []Transition) *Machine {
	m := &Machine{
		transitions: make(map[uint64]int32, len(transitions)),
		initial:     initial,
		finals:      make(map[int32]struct{}, len(finals)),
	}
	for _, f := range finals {
		m.finals[f] = struct{}{}
	}
	for _, t := range transitions {
		m.transitions[transKey(t.From, t.Symbol)] = t.To
	}
	return m
}

// transKey packs a (state, symbol) pair into one map key. States and symbols
// are non-negative int32s, so the packed form is collision-free.
func transKey(state, symbol int32) uint64 {
	return uint64(uint32(state))<<32 | uint64(uint32(symbol))
}

// Step returns the state reached by reading symbol in state, or false when
// the transition function has no entry for the pair.
func (m *Machine) Step(state, symbol int32) (int32, bool) {
	next, ok := m.transitions[transKey(state, symbol)]
	return next, ok
}

// Initial returns the machine's start state.
func (m *Machine) Initial() int32 {
	return m.initial
}

// IsFinal reports whether state is an accepting state.
func (m *Machine) IsFinal(state int32) bool {
	_, ok := m.finals[state]
	return ok
}

// Finals returns the accepting states in ascending order.
func (m *Machine) Finals() []int32 {
	out := make([]int32, 0, len(m.finals))
	for f := range m.finals {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// NumTransitions returns the number of transition entries.
func (m *Machine) NumTransitions() int {
	return len(m.transitions)
}
