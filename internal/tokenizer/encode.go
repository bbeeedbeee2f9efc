package tokenizer

import "strings"

const (
	// MaxLen is the fixed sequence length every encoded input is truncated
	// or padded to. It must match the length the model was trained with.
	MaxLen = 30

	// OOVIndex doubles as the padding value, matching the convention the
	// vocabulary artifact was produced with.
	OOVIndex int64 = 0
)

// Encode maps a normalized token sequence to exactly MaxLen vocabulary
// indices: tokens past MaxLen are dropped from the end, short sequences are
// right-padded with OOVIndex. The token join/split round trip mirrors how
// sequences were built at training time, so multi-word tokens encode the
// same way they did then.
func (v *Vocab) Encode(tokens []string) []int64 {
	words := strings.Fields(strings.Join(tokens, " "))

	encoded := make([]int64, MaxLen)
	for i, word := range words {
		if i >= MaxLen {
			break
		}
		encoded[i] = v.Lookup(word)
	}
	return encoded
}
