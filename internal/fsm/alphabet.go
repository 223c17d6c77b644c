package fsm

// Alphabet maps characters to the symbol ids the machine's transitions are
// keyed on. Characters without an explicit mapping resolve to the catch-all
// symbol, so every character classifies to some symbol.
//
// An Alphabet is immutable after construction and safe for concurrent
// readers.
type Alphabet struct {
	symbols  map[rune]int32
	anything int32
}

// NewAlphabet builds an Alphabet from an explicit character mapping and the
// catch-all symbol id. The mapping is copied.
func NewAlphabet(symbols map[rune]int32, anything int32) *Alphabet {
	a := &Alphabet{
		symbols:  make(map[rune]int32, len(symbols)),
		anything: anything,
	}
	for r, sym := range symbols {
		a.symbols[r] = sym
	}
	return a
}

// Symbol returns the symbol id for r, falling back to the catch-all symbol
// when r has no explicit mapping.
func (a *Alphabet) Symbol(r rune) int32 {
	if sym, ok := a.symbols[r]; ok {
		return sym
	}
	return a.anything
}

// Anything returns the catch-all symbol id.
func (a *Alphabet) Anything() int32 {
	return a.anything
}

// Len returns the number of explicitly mapped characters.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}
