package engine

import (
	"reflect"
	"testing"

	"github.com/kolkov/fsmindex/internal/fsm"
)

func TestBuildIndex(t *testing.T) {
	m, ab, v := abFixture(t)
	s := NewScanner(m, ab, v, 1, 0)

	got, err := s.BuildIndex()
	if err != nil {
		t.Fatalf("BuildIndex() failed: %v", err)
	}

	want := map[int32]map[int32]int32{
		0: {10: 1, 20: 2, 40: 2},
		1: {10: 1, 20: 2, 30: 2, 40: 2},
		2: {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildIndex() = %v, want %v", got, want)
	}
}

func TestBuildIndexSkipsUnreachableStates(t *testing.T) {
	// State 9 has transitions but no token walk ever lands there.
	m := fsm.NewMachine(0, []int32{2}, []fsm.Transition{
		{From: 0, Symbol: 0, To: 1},
		{From: 1, Symbol: 0, To: 1},
		{From: 1, Symbol: 1, To: 2},
		{From: 9, Symbol: 0, To: 2},
	})
	ab := fsm.NewAlphabet(map[rune]int32{'a': 0, 'b': 1}, 2)
	v := NewVocab(map[string][]int32{
		"a":  {10},
		"ab": {20},
	})
	s := NewScanner(m, ab, v, 1, 0)

	got, err := s.BuildIndex()
	if err != nil {
		t.Fatalf("BuildIndex() failed: %v", err)
	}
	if _, ok := got[9]; ok {
		t.Error("BuildIndex() resolved state 9, which no token reaches")
	}
	want := map[int32]map[int32]int32{
		0: {10: 1, 20: 2},
		1: {10: 1, 20: 2},
		2: {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildIndex() = %v, want %v", got, want)
	}
}

func TestBuildIndexEmptyVocabulary(t *testing.T) {
	m, ab, _ := abFixture(t)
	s := NewScanner(m, ab, NewVocab(nil), 1, 0)

	got, err := s.BuildIndex()
	if err != nil {
		t.Fatalf("BuildIndex() failed: %v", err)
	}
	want := map[int32]map[int32]int32{0: {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildIndex() = %v, want the initial state alone: %v", got, want)
	}
}

func TestBuildIndexDeterministicAcrossWorkers(t *testing.T) {
	m, ab, v := abFixture(t)
	want, err := NewScanner(m, ab, v, 1, 0).BuildIndex()
	if err != nil {
		t.Fatalf("serial build failed: %v", err)
	}

	for _, workers := range []int{2, 4, 16} {
		got, err := NewScanner(m, ab, v, workers, 0).BuildIndex()
		if err != nil {
			t.Fatalf("build with %d workers failed: %v", workers, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("build with %d workers = %v, want %v", workers, got, want)
		}
	}
}

func TestBuildIndexPropagatesScanFailure(t *testing.T) {
	m, ab, _ := abFixture(t)
	v := NewVocab(map[string][]int32{
		"":  {1},
		"a": {10},
	})
	s := NewScanner(m, ab, v, 1, 0)

	index, err := s.BuildIndex()
	if err == nil {
		t.Fatalf("BuildIndex() = %v, want error", index)
	}
	if index != nil {
		t.Errorf("BuildIndex() returned partial index %v alongside error", index)
	}
}

func BenchmarkBuildIndex(b *testing.B) {
	m := fsm.NewMachine(0, []int32{2}, []fsm.Transition{
		{From: 0, Symbol: 0, To: 1},
		{From: 1, Symbol: 0, To: 1},
		{From: 1, Symbol: 1, To: 2},
	})
	ab := fsm.NewAlphabet(map[rune]int32{'a': 0, 'b': 1}, 2)
	v := NewVocab(syntheticVocab(10))
	s := NewScanner(m, ab, v, 4, 0)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := s.BuildIndex(); err != nil {
			b.Fatal(err)
		}
	}
}
