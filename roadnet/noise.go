package roadnet

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Field is a coherent noise field: deterministic, continuous, and normalized
// to [0, 1].
type Field interface {
	Sample(x, y float64) float64
}

// FieldFunc adapts a plain function to Field.
type FieldFunc func(x, y float64) float64

func (f FieldFunc) Sample(x, y float64) float64 { return f(x, y) }

// NoiseKind selects a Field implementation.
type NoiseKind int

const (
	Perlin NoiseKind = iota
	Simplex
)

func (k NoiseKind) String() string {
	switch k {
	case Perlin:
		return "perlin"
	case Simplex:
		return "simplex"
	}
	return "unknown"
}

// ParseNoiseKind accepts "perlin" or "simplex".
func ParseNoiseKind(s string) (NoiseKind, error) {
	switch s {
	case "perlin":
		return Perlin, nil
	case "simplex":
		return Simplex, nil
	}
	return 0, fmt.Errorf("unknown noise kind %q", s)
}

// NewField builds the field of the given kind for seed.
func NewField(kind NoiseKind, seed int64) Field {
	if kind == Simplex {
		return NewSimplex(seed)
	}
	return NewPerlin(seed)
}

type perlinField struct {
	noise *perlin.Perlin
}

// NewPerlin returns three-octave Perlin noise (alpha 2, beta 2) remapped from
// [-1, 1] to [0, 1].
func NewPerlin(seed int64) Field {
	return perlinField{noise: perlin.NewPerlin(2, 2, 3, seed)}
}

func (f perlinField) Sample(x, y float64) float64 {
	return clamp01((f.noise.Noise2D(x, y) + 1) / 2)
}

type simplexField struct {
	noise opensimplex.Noise
}

// NewSimplex returns normalized OpenSimplex noise.
func NewSimplex(seed int64) Field {
	return simplexField{noise: opensimplex.NewNormalized(seed)}
}

func (f simplexField) Sample(x, y float64) float64 {
	return clamp01(f.noise.Eval2(x, y))
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
