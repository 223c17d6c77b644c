// Package bundle decodes and encodes the self-describing documents that
// carry an automaton, alphabet, and vocabulary between a host pipeline and
// the indexer. It is the marshaling boundary: document shape is validated
// here, value-level validation belongs to Compile.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"

	"github.com/kolkov/fsmindex"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// DetectFormat picks the encoding for a file name: a .cbor extension means
// CBOR, everything else JSON.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		return FormatCBOR
	}
	return FormatJSON
}

// Document is the on-disk bundle of indexer inputs, shared by the JSON and
// CBOR forms.
type Document struct {
	Automaton  Automaton          `json:"automaton" cbor:"automaton"`
	Alphabet   Alphabet           `json:"alphabet" cbor:"alphabet"`
	Vocabulary map[string][]int32 `json:"vocabulary" cbor:"vocabulary"`
}

// Automaton is the document form of the machine. Transitions are flat
// [from, symbol, to] triples: neither JSON nor CBOR maps can key on pairs.
type Automaton struct {
	Initial     int32     `json:"initial" cbor:"initial"`
	Finals      []int32   `json:"finals" cbor:"finals"`
	Transitions [][]int32 `json:"transitions" cbor:"transitions"`
}

// Alphabet is the document form of the character mapping. Keys must be
// single characters.
type Alphabet struct {
	Symbols  map[string]int32 `json:"symbols" cbor:"symbols"`
	Anything int32            `json:"anything" cbor:"anything"`
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatCBOR:
		if err := cbor.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode cbor: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return &doc, nil
}

// Load reads path and decodes it as format. Callers without an explicit
// format pick one with DetectFormat.
func Load(path string, format Format) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, format)
}

// ToInputs converts the document into the typed inputs Compile consumes.
// It rejects transition entries that are not [from, symbol, to] triples and
// alphabet keys that are not single characters.
func (d *Document) ToInputs() (*fsmindex.Automaton, *fsmindex.Alphabet, fsmindex.Vocabulary, error) {
	transitions := make(map[fsmindex.StateSymbol]int32, len(d.Automaton.Transitions))
	for i, tr := range d.Automaton.Transitions {
		if len(tr) != 3 {
			return nil, nil, nil, fmt.Errorf("transition %d has %d elements, want [from, symbol, to]", i, len(tr))
		}
		transitions[fsmindex.StateSymbol{State: tr[0], Symbol: tr[1]}] = tr[2]
	}
	automaton := &fsmindex.Automaton{
		Transitions: transitions,
		Initial:     d.Automaton.Initial,
		Finals:      slices.Clone(d.Automaton.Finals),
	}

	symbols := make(map[rune]int32, len(d.Alphabet.Symbols))
	for key, sym := range d.Alphabet.Symbols {
		if utf8.RuneCountInString(key) != 1 {
			return nil, nil, nil, fmt.Errorf("alphabet key %q is not a single character", key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		symbols[r] = sym
	}
	alphabet := &fsmindex.Alphabet{Symbols: symbols, Anything: d.Alphabet.Anything}

	vocab := make(fsmindex.Vocabulary, len(d.Vocabulary))
	for text, ids := range d.Vocabulary {
		vocab[text] = slices.Clone(ids)
	}
	return automaton, alphabet, vocab, nil
}

// IndexDocument is the document form of a finished index, written for the
// host pipeline that applies the index during decoding.
type IndexDocument struct {
	Initial int32                     `json:"initial" cbor:"initial"`
	Finals  []int32                   `json:"finals" cbor:"finals"`
	States  map[int32]map[int32]int32 `json:"states" cbor:"states"`
}

// NewIndexDocument snapshots idx into its document form. Finals lists the
// accepting states among the resolved ones.
func NewIndexDocument(idx *fsmindex.Index) *IndexDocument {
	finals := make([]int32, 0)
	for _, s := range idx.States() {
		if idx.Final(s) {
			finals = append(finals, s)
		}
	}
	return &IndexDocument{
		Initial: idx.Initial(),
		Finals:  finals,
		States:  idx.StateMap(),
	}
}

// Encode renders the document in the given format. JSON is indented for
// human eyes; CBOR is compact for pipelines.
func (d *IndexDocument) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatCBOR:
		return cbor.Marshal(d)
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
