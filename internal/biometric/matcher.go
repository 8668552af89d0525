// Package biometric compares face feature vectors produced by an external
// extractor. It never derives a vector from an image itself.
package biometric

import (
	"errors"
	"math"
)

const (
	// VectorLength is the size of every face descriptor.
	VectorLength = 128

	// Threshold is the minimum cosine similarity accepted as a match. It was
	// 0.85 once and admitted false positives; keep it at 0.95.
	Threshold = 0.95

	// SignalEpsilon is the smallest sum of absolute components that still
	// counts as a face being present.
	SignalEpsilon = 1e-6
)

var (
	ErrNoSignalDetected = errors.New("no biometric signal detected")
	ErrInvalidVector    = errors.New("invalid biometric vector")
	ErrLengthMismatch   = errors.New("biometric vectors differ in length")
)

// Result is the outcome of a completed comparison. A low similarity is a
// normal result with IsMatch false, not an error.
type Result struct {
	Similarity float64 `json:"similarity"`
	Distance   float64 `json:"distance"`
	IsMatch    bool    `json:"is_match"`
}

// Compare returns the cosine similarity of a and b and whether it reaches
// Threshold. Degenerate input is rejected before any similarity is computed:
// an empty signal yields ErrNoSignalDetected, a non-finite similarity yields
// ErrInvalidVector.
func Compare(a, b []float64) (Result, error) {
	if len(a) != len(b) {
		return Result{}, ErrLengthMismatch
	}

	if !hasSignal(a) || !hasSignal(b) {
		return Result{}, ErrNoSignalDetected
	}

	similarity := cosineSimilarity(a, b)
	if math.IsNaN(similarity) || math.IsInf(similarity, 0) {
		return Result{}, ErrInvalidVector
	}

	return Result{
		Similarity: similarity,
		Distance:   1 - similarity,
		IsMatch:    Matches(similarity),
	}, nil
}

// Matches applies the match threshold to a similarity score.
func Matches(similarity float64) bool {
	return similarity >= Threshold
}

func hasSignal(v []float64) bool {
	var sum float64
	for _, x := range v {
		sum += math.Abs(x)
	}
	// NaN sums fall through to the similarity check.
	return !(sum < SignalEpsilon)
}

func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
