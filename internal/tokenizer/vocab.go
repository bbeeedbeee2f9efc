package tokenizer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Vocab is the fitted word→index mapping exported by the training process
// (the tokenizer's word_index serialized as JSON). Index 0 is reserved for
// padding and out-of-vocabulary words, so every stored index must be >= 1.
// The mapping is read-only after load.
type Vocab struct {
	index map[string]int64
}

func LoadVocab(path string) (*Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[Tokenizer] failed to read vocabulary %s: %w", path, err)
	}

	var index map[string]int64
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("[Tokenizer] failed to parse vocabulary %s: %w", path, err)
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("[Tokenizer] vocabulary %s is empty", path)
	}

	for word, id := range index {
		if id < 1 {
			return nil, fmt.Errorf("[Tokenizer] vocabulary entry %q has reserved index %d", word, id)
		}
	}

	return &Vocab{index: index}, nil
}

// Lookup returns the index for a word, or OOVIndex when the word was not in
// the training vocabulary.
func (v *Vocab) Lookup(word string) int64 {
	if id, ok := v.index[word]; ok {
		return id
	}
	return OOVIndex
}

func (v *Vocab) Size() int {
	return len(v.index)
}
