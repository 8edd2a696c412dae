package vector

import (
	"fmt"
	"sort"
)

type entry struct {
	id  int
	vec Vector
}

// Index is an exact brute-force cosine index. It is immutable after Build and
// safe for concurrent queries.
type Index struct {
	dimension int
	entries   []entry
}

// Build creates an index whose dimension is taken from the first vector.
func Build(ids []int, vectors []Vector) (*Index, error) {
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	return BuildWithDimension(dim, ids, vectors)
}

// BuildWithDimension creates an index that rejects vectors of any other length.
func BuildWithDimension(dimension int, ids []int, vectors []Vector) (*Index, error) {
	if len(ids) != len(vectors) {
		return nil, ErrLengthMismatch
	}

	idx := &Index{
		dimension: dimension,
		entries:   make([]entry, len(vectors)),
	}
	for i, v := range vectors {
		if len(v) != dimension {
			return nil, fmt.Errorf("%w: id %d has %d, want %d", ErrDimensionMismatch, ids[i], len(v), dimension)
		}
		idx.entries[i] = entry{id: ids[i], vec: v.Clone()}
	}

	return idx, nil
}

// Empty returns an index that answers every query with no hits.
func Empty(dimension int) *Index {
	return &Index{dimension: dimension}
}

func (idx *Index) Dimension() int {
	return idx.dimension
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Query returns at most k hits ordered by increasing cosine distance, ties
// broken by ascending id.
func (idx *Index) Query(v Vector, k int) ([]Hit, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if idx.Len() == 0 {
		return []Hit{}, nil
	}
	if len(v) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d, want %d", ErrDimensionMismatch, len(v), idx.dimension)
	}

	hits := make([]Hit, len(idx.entries))
	for i, e := range idx.entries {
		hits[i] = Hit{ID: e.id, Distance: 1 - CosineSimilarity(v, e.vec)}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance == hits[j].Distance {
			return hits[i].ID < hits[j].ID
		}
		return hits[i].Distance < hits[j].Distance
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Similarities scores v against every stored vector, in build order.
func (idx *Index) Similarities(v Vector) ([]float64, error) {
	if idx.Len() == 0 {
		return []float64{}, nil
	}
	if len(v) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d, want %d", ErrDimensionMismatch, len(v), idx.dimension)
	}

	scores := make([]float64, len(idx.entries))
	for i, e := range idx.entries {
		scores[i] = CosineSimilarity(v, e.vec)
	}
	return scores, nil
}
