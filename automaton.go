package fsmindex

// StateSymbol keys one transition: the state the automaton is in and the
// symbol it reads there.
type StateSymbol struct {
	State  int32 // source state
	Symbol int32 // symbol id read in that state
}

// Automaton describes a deterministic finite automaton over integer states
// and symbols. The transition map is partial: a (state, symbol) pair with no
// entry means the automaton cannot continue from there. The automaton need
// not be minimal or complete, and unreachable states are allowed; they are
// simply never resolved by a build.
//
// States and symbols are caller-chosen non-negative integers. Compile copies
// the structure, so an Automaton can be reused or modified afterwards.
type Automaton struct {
	// Transitions maps (state, symbol) to the state the automaton moves to.
	Transitions map[StateSymbol]int32

	// Initial is the state every index build starts from.
	Initial int32

	// Finals lists the accepting states.
	Finals []int32
}

// Alphabet maps single characters to the symbol ids the automaton's
// transitions are keyed on.
type Alphabet struct {
	// Symbols maps a character to its symbol id.
	Symbols map[rune]int32

	// Anything is the symbol id assigned to every character absent from
	// Symbols. It makes the classification total: tokens containing
	// characters the automaton was not built for still classify, and walk
	// on, or stall, like any others.
	Anything int32
}
