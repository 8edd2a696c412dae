package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/PauloHFS/bizbloom/internal/vector"
)

// Hash embeds text by signed feature hashing of word tokens and adjacent
// bigrams. Texts sharing vocabulary land close in cosine space.
type Hash struct {
	dim int
}

func NewHash(dim int) *Hash {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &Hash{dim: dim}
}

func (h *Hash) Dimension() int {
	return h.dim
}

func (h *Hash) ModelID() string {
	return fmt.Sprintf("hash-fnv1a/%d", h.dim)
}

func (h *Hash) Embed(ctx context.Context, text string) (vector.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := make(vector.Vector, h.dim)
	tokens := tokenize(text)
	for i, tok := range tokens {
		h.add(v, "u:"+tok, 1)
		if i > 0 {
			h.add(v, "b:"+tokens[i-1]+" "+tok, 0.5)
		}
	}

	return vector.Normalize(v), nil
}

func (h *Hash) add(v vector.Vector, feature string, weight float32) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	bucket := int(sum % uint64(h.dim))
	if sum>>63 == 1 {
		weight = -weight
	}
	v[bucket] += weight
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
