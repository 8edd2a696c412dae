package vector

import "math"

// CosineSimilarity returns a value in [-1, 1]. Zero-norm or differently sized
// vectors score 0.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		normA += fa * fa
		normB += fb * fb
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize returns a unit-length copy of v. The zero vector is returned unchanged.
func Normalize(v Vector) Vector {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)

	out := v.Clone()
	if norm == 0 {
		return out
	}
	for i, x := range out {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// Round3 rounds a score to three decimals for presentation.
func Round3(score float64) float64 {
	return math.Round(score*1000) / 1000
}
