package vector

import "errors"

// Vector is a dense embedding produced by an embedding model.
type Vector []float32

type Config struct {
	// Dimension is the expected length of every stored vector.
	Dimension int
	ModelID   string
}

type Hit struct {
	ID       int
	Distance float64
}

// Similarity converts the cosine distance back to cosine similarity.
func (h Hit) Similarity() float64 {
	return 1 - h.Distance
}

var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrLengthMismatch    = errors.New("ids and vectors length mismatch")
	ErrInvalidK          = errors.New("k must be at least 1")
	ErrCorruptVector     = errors.New("corrupt stored vector")
)

func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}
