package heightfield

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Reference sampler constants.
const (
	DefaultAmplitude      float32 = 2.0
	DefaultEpsilon        float32 = 0.01
	DefaultColorFrequency float32 = 5.0
)

// HeightFunc maps a world-space XY position to a height. It must be pure.
type HeightFunc func(p mgl32.Vec2) float32

// SineHeight returns amplitude * sin(x) * sin(y).
func SineHeight(amplitude float32) HeightFunc {
	return func(p mgl32.Vec2) float32 {
		return amplitude * sin32(p.X()) * sin32(p.Y())
	}
}

// Sampler turns a height function into mesh vertices.
//
// Epsilon is the forward-difference step used for both partial derivatives;
// the derivative scale is always 1/Epsilon.
type Sampler struct {
	Height         HeightFunc
	Epsilon        float32
	ColorFrequency float32
}

// DefaultSampler returns the sampler for 2*sin(x)*sin(y).
func DefaultSampler() Sampler {
	return NewSampler(DefaultAmplitude)
}

// NewSampler returns a sine sampler with the given amplitude and the
// reference epsilon and color frequency.
func NewSampler(amplitude float32) Sampler {
	return Sampler{
		Height:         SineHeight(amplitude),
		Epsilon:        DefaultEpsilon,
		ColorFrequency: DefaultColorFrequency,
	}
}

// Validate reports a sampler that cannot produce a well-formed mesh.
func (s Sampler) Validate() error {
	if s.Height == nil {
		return fmt.Errorf("%w: nil height function", ErrInvalidSampler)
	}
	if !finite(s.Epsilon) || s.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon %v must be finite and positive", ErrInvalidSampler, s.Epsilon)
	}
	if !finite(s.ColorFrequency) {
		return fmt.Errorf("%w: color frequency %v must be finite", ErrInvalidSampler, s.ColorFrequency)
	}
	return nil
}

// SampleVertex evaluates position, normal and color at p.
func (s Sampler) SampleVertex(p mgl32.Vec2) Vertex {
	h := s.Height(p)

	scale := 1 / s.Epsilon
	hx := scale * (s.Height(p.Add(mgl32.Vec2{s.Epsilon, 0})) - h)
	hy := scale * (s.Height(p.Add(mgl32.Vec2{0, s.Epsilon})) - h)

	return Vertex{
		Position: mgl32.Vec3{p.X(), p.Y(), h},
		Normal:   surfaceNormal(hx, hy),
		Color:    s.HeightColor(h),
	}
}

// HeightColor maps a height to RGBA. Every channel stays in [0,1].
func (s Sampler) HeightColor(h float32) mgl32.Vec4 {
	c := sin32(h*s.ColorFrequency)*0.5 + 0.5
	return mgl32.Vec4{c, 1 - c, 0.5, 1}
}

// surfaceNormal returns normalize(-hx, -hy, 1).
func surfaceNormal(hx, hy float32) mgl32.Vec3 {
	n := mgl32.Vec3{-hx, -hy, 1}
	l := n.Len()
	if l == 0 || math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
		return mgl32.Vec3{0, 0, 1}
	}
	return n.Mul(1 / l)
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func sin32(v float32) float32 {
	return float32(math.Sin(float64(v)))
}
