package vector

import (
	"errors"
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{"identical", Vector{1, 2, 3}, Vector{1, 2, 3}, 1},
		{"orthogonal", Vector{1, 0}, Vector{0, 1}, 0},
		{"opposite", Vector{1, 1}, Vector{-1, -1}, -1},
		{"zero norm", Vector{0, 0}, Vector{1, 1}, 0},
		{"length mismatch", Vector{1, 2}, Vector{1, 2, 3}, 0},
		{"empty", Vector{}, Vector{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	v := Vector{3, 4}
	n := Normalize(v)
	if math.Abs(float64(n[0])-0.6) > 1e-6 || math.Abs(float64(n[1])-0.8) > 1e-6 {
		t.Errorf("unexpected normalized vector %v", n)
	}
	if v[0] != 3 {
		t.Error("Normalize must not modify its input")
	}

	zero := Normalize(Vector{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("expected zero vector, got %v", zero)
	}
}

func TestRound3(t *testing.T) {
	if got := Round3(0.123456); got != 0.123 {
		t.Errorf("Round3() = %v", got)
	}
	if got := Round3(0.9996); got != 1 {
		t.Errorf("Round3() = %v", got)
	}
}

func TestIndexQuery(t *testing.T) {
	idx, err := Build([]int{0, 1, 2}, []Vector{
		{1, 0},
		{0, 1},
		{1, 1},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Run("OrderedByDistance", func(t *testing.T) {
		hits, err := idx.Query(Vector{1, 0.1}, 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []int{0, 2, 1}
		for i, h := range hits {
			if h.ID != want[i] {
				t.Errorf("hit %d: expected id %d, got %d", i, want[i], h.ID)
			}
		}
		for i := 1; i < len(hits); i++ {
			if hits[i].Distance < hits[i-1].Distance {
				t.Errorf("hits not sorted by distance: %v", hits)
			}
		}
	})

	t.Run("TruncatesToK", func(t *testing.T) {
		hits, err := idx.Query(Vector{1, 0}, 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(hits) != 2 {
			t.Errorf("expected 2 hits, got %d", len(hits))
		}
	})

	t.Run("KLargerThanIndex", func(t *testing.T) {
		hits, err := idx.Query(Vector{1, 0}, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(hits) != 3 {
			t.Errorf("expected 3 hits, got %d", len(hits))
		}
	})

	t.Run("InvalidK", func(t *testing.T) {
		if _, err := idx.Query(Vector{1, 0}, 0); !errors.Is(err, ErrInvalidK) {
			t.Errorf("expected ErrInvalidK, got %v", err)
		}
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		if _, err := idx.Query(Vector{1, 0, 0}, 1); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected ErrDimensionMismatch, got %v", err)
		}
	})

	t.Run("TiesByAscendingID", func(t *testing.T) {
		tied, err := Build([]int{7, 3, 5}, []Vector{{1, 0}, {1, 0}, {1, 0}})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		hits, err := tied.Query(Vector{1, 0}, 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []int{3, 5, 7}
		for i, h := range hits {
			if h.ID != want[i] {
				t.Errorf("hit %d: expected id %d, got %d", i, want[i], h.ID)
			}
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, _ := idx.Query(Vector{0.3, 0.7}, 3)
		second, _ := idx.Query(Vector{0.3, 0.7}, 3)
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("query results differ at %d: %v vs %v", i, first[i], second[i])
			}
		}
	})
}

func TestIndexEmpty(t *testing.T) {
	hits, err := Empty(384).Query(make(Vector, 384), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hits == nil || len(hits) != 0 {
		t.Errorf("expected empty non-nil hits, got %v", hits)
	}

	var nilIdx *Index
	if nilIdx.Len() != 0 {
		t.Error("nil index must report zero length")
	}
}

func TestBuildValidation(t *testing.T) {
	t.Run("LengthMismatch", func(t *testing.T) {
		if _, err := Build([]int{0}, []Vector{{1}, {2}}); !errors.Is(err, ErrLengthMismatch) {
			t.Errorf("expected ErrLengthMismatch, got %v", err)
		}
	})

	t.Run("MixedDimensions", func(t *testing.T) {
		if _, err := Build([]int{0, 1}, []Vector{{1, 0}, {1}}); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected ErrDimensionMismatch, got %v", err)
		}
	})

	t.Run("CopiesInput", func(t *testing.T) {
		v := Vector{1, 0}
		idx, err := Build([]int{0}, []Vector{v})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		v[0] = -1
		hits, _ := idx.Query(Vector{1, 0}, 1)
		if hits[0].Distance > 1e-6 {
			t.Errorf("index was affected by caller mutation: %v", hits)
		}
	})
}

func TestSimilarities(t *testing.T) {
	idx, _ := Build([]int{0, 1}, []Vector{{1, 0}, {0, 1}})
	scores, err := idx.Similarities(Vector{1, 0})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if math.Abs(scores[0]-1) > 1e-6 || math.Abs(scores[1]) > 1e-6 {
		t.Errorf("unexpected scores %v", scores)
	}
}
