package engine

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/kolkov/fsmindex/internal/fsm"
)

// abFixture builds the machine accepting a+b over {a: 0, b: 1, anything: 2}
// together with the four-token vocabulary used across these tests.
func abFixture(t *testing.T) (*fsm.Machine, *fsm.Alphabet, *Vocab) {
	t.Helper()
	m := fsm.NewMachine(0, []int32{2}, []fsm.Transition{
		{From: 0, Symbol: 0, To: 1},
		{From: 1, Symbol: 0, To: 1},
		{From: 1, Symbol: 1, To: 2},
	})
	ab := fsm.NewAlphabet(map[rune]int32{'a': 0, 'b': 1}, 2)
	v := NewVocab(map[string][]int32{
		"a":   {10},
		"ab":  {20},
		"b":   {30},
		"aab": {40},
	})
	return m, ab, v
}

func TestScan(t *testing.T) {
	m, ab, v := abFixture(t)
	s := NewScanner(m, ab, v, 1, 0)

	tests := []struct {
		state int32
		want  []Pair
	}{
		// Vocabulary order is ascending by text: a, aab, ab, b.
		{state: 0, want: []Pair{{10, 1}, {40, 2}, {20, 2}}},
		{state: 1, want: []Pair{{10, 1}, {40, 2}, {20, 2}, {30, 2}}},
		{state: 2, want: []Pair{}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("state %d", tt.state), func(t *testing.T) {
			got, err := s.Scan(tt.state)
			if err != nil {
				t.Fatalf("Scan(%d) failed: %v", tt.state, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Scan(%d) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestScanDeterministicAcrossWorkers(t *testing.T) {
	m, ab, v := abFixture(t)
	want, err := NewScanner(m, ab, v, 1, 0).Scan(0)
	if err != nil {
		t.Fatalf("serial scan failed: %v", err)
	}

	for _, workers := range []int{2, 3, 4, 16} {
		s := NewScanner(m, ab, v, workers, 0)
		got, err := s.Scan(0)
		if err != nil {
			t.Fatalf("scan with %d workers failed: %v", workers, err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("scan with %d workers = %v, want %v", workers, got, want)
		}
	}
}

func TestScanSerialThreshold(t *testing.T) {
	m, ab, v := abFixture(t)

	// Above and below the threshold must agree; the threshold only picks the
	// execution path.
	want, err := NewScanner(m, ab, v, 8, 0).Scan(1)
	if err != nil {
		t.Fatalf("parallel scan failed: %v", err)
	}
	got, err := NewScanner(m, ab, v, 8, 1000).Scan(1)
	if err != nil {
		t.Fatalf("serial scan failed: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("serial scan = %v, parallel scan = %v", got, want)
	}
}

func TestScanSharedText(t *testing.T) {
	m, ab, _ := abFixture(t)
	v := NewVocab(map[string][]int32{
		"ab": {7, 8, 9},
	})
	s := NewScanner(m, ab, v, 1, 0)

	got, err := s.Scan(0)
	if err != nil {
		t.Fatalf("Scan(0) failed: %v", err)
	}
	want := []Pair{{7, 2}, {8, 2}, {9, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("Scan(0) = %v, want %v", got, want)
	}
}

func TestScanDiscardsPartialConsumption(t *testing.T) {
	m, ab, _ := abFixture(t)
	// The walk for abb reaches the accepting state after ab and stalls on
	// the trailing b. It must not be reported as consumable.
	v := NewVocab(map[string][]int32{
		"abb": {50},
		"ab":  {20},
	})
	s := NewScanner(m, ab, v, 1, 0)

	got, err := s.Scan(0)
	if err != nil {
		t.Fatalf("Scan(0) failed: %v", err)
	}
	want := []Pair{{20, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("Scan(0) = %v, want %v", got, want)
	}
}

func TestScanWorkerFailure(t *testing.T) {
	m, ab, _ := abFixture(t)
	// Empty token text slips past the walk length filter and trips the end
	// state lookup. The scan must surface that as an error, not a crash or
	// a partial result.
	v := NewVocab(map[string][]int32{
		"":   {1},
		"ab": {20},
	})

	for _, workers := range []int{1, 4} {
		s := NewScanner(m, ab, v, workers, 0)
		pairs, err := s.Scan(0)
		if err == nil {
			t.Fatalf("Scan(0) with %d workers returned %v, want error", workers, pairs)
		}
		if pairs != nil {
			t.Errorf("Scan(0) with %d workers returned partial pairs %v alongside error", workers, pairs)
		}
		var we *WorkerError
		if !errors.As(err, &we) {
			t.Fatalf("Scan(0) error = %T, want *WorkerError", err)
		}
		if we.State != 0 {
			t.Errorf("WorkerError.State = %d, want 0", we.State)
		}
		if we.Cause == nil {
			t.Error("WorkerError.Cause is nil")
		}
	}
}

func TestScanEmptyVocabulary(t *testing.T) {
	m, ab, _ := abFixture(t)
	v := NewVocab(nil)
	s := NewScanner(m, ab, v, 4, 0)

	got, err := s.Scan(0)
	if err != nil {
		t.Fatalf("Scan(0) failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Scan(0) over empty vocabulary = %v, want none", got)
	}
}

func TestNewVocabDropsEmptyIDSets(t *testing.T) {
	v := NewVocab(map[string][]int32{
		"a": {},
		"b": {30},
		"c": nil,
	})
	if got := v.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestShardBounds(t *testing.T) {
	tests := []struct {
		n, workers int
		want       []shardRange
	}{
		{n: 10, workers: 2, want: []shardRange{{0, 5}, {5, 10}}},
		{n: 10, workers: 3, want: []shardRange{{0, 4}, {4, 8}, {8, 10}}},
		{n: 3, workers: 8, want: []shardRange{{0, 1}, {1, 2}, {2, 3}}},
		{n: 1, workers: 4, want: []shardRange{{0, 1}}},
		{n: 7, workers: 7, want: []shardRange{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7}}},
	}
	for _, tt := range tests {
		got := shardBounds(tt.n, tt.workers)
		if !slices.Equal(got, tt.want) {
			t.Errorf("shardBounds(%d, %d) = %v, want %v", tt.n, tt.workers, got, tt.want)
		}
	}
}

// syntheticVocab generates every string over {a, b} up to maxLen characters,
// each bound to one id.
func syntheticVocab(maxLen int) map[string][]int32 {
	tokens := make(map[string][]int32)
	id := int32(0)
	texts := []string{""}
	for l := 0; l < maxLen; l++ {
		next := make([]string, 0, 2*len(texts))
		for _, t := range texts {
			for _, c := range []string{"a", "b"} {
				s := t + c
				tokens[s] = []int32{id}
				id++
				next = append(next, s)
			}
		}
		texts = next
	}
	return tokens
}

func BenchmarkScan(b *testing.B) {
	m := fsm.NewMachine(0, []int32{2}, []fsm.Transition{
		{From: 0, Symbol: 0, To: 1},
		{From: 1, Symbol: 0, To: 1},
		{From: 1, Symbol: 1, To: 2},
	})
	ab := fsm.NewAlphabet(map[rune]int32{'a': 0, 'b': 1}, 2)
	v := NewVocab(syntheticVocab(10))

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			s := NewScanner(m, ab, v, workers, 0)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.Scan(0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
