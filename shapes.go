package spacerocks

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// AsteroidOutline returns a lumpy closed outline around the origin. Vertices
// sit at evenly spaced angles with a little angular jitter, and each radius is
// drawn from N(radius, sigma*radius) clamped to two deviations. The jitter never
// exceeds half a step so vertices stay in counter-clockwise order.
func AsteroidOutline(rng *rand.Rand, radius float32, points int, sigma float32) []mgl32.Vec2 {
	if points < 3 {
		points = 3
	}
	step := 2 * math.Pi / float64(points)
	maxJitter := step * 0.45

	lo := float64(1 - 2*sigma)
	if lo < 0.1 {
		lo = 0.1
	}
	hi := float64(1 + 2*sigma)

	out := make([]mgl32.Vec2, points)
	for i := range out {
		jitter := rng.NormFloat64() * float64(sigma) * step / 2
		jitter = math.Max(-maxJitter, math.Min(maxJitter, jitter))
		angle := float64(i)*step + jitter

		scale := 1 + rng.NormFloat64()*float64(sigma)
		scale = math.Max(lo, math.Min(hi, scale))

		r := float64(radius) * scale
		out[i] = mgl32.Vec2{float32(math.Cos(angle) * r), float32(math.Sin(angle) * r)}
	}
	return out
}

// Triangle is the ship hull: nose on +X, centroid on the origin.
func Triangle(length, width float32) []mgl32.Vec2 {
	return []mgl32.Vec2{
		{length * 2 / 3, 0},
		{-length / 3, width / 2},
		{-length / 3, -width / 2},
	}
}

// Circle approximates a circle with a regular polygon.
func Circle(radius float32, segments int) []mgl32.Vec2 {
	if segments < 3 {
		segments = 3
	}
	out := make([]mgl32.Vec2, segments)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(segments)
		out[i] = mgl32.Vec2{radius * float32(math.Cos(a)), radius * float32(math.Sin(a))}
	}
	return out
}

// Centroid is the vertex average.
func Centroid(points []mgl32.Vec2) mgl32.Vec2 {
	var c mgl32.Vec2
	if len(points) == 0 {
		return c
	}
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Mul(1 / float32(len(points)))
}

// MeanRadius is the average vertex distance from the origin.
func MeanRadius(points []mgl32.Vec2) float32 {
	if len(points) == 0 {
		return 0
	}
	var sum float32
	for _, p := range points {
		sum += p.Len()
	}
	return sum / float32(len(points))
}

// BoundingRadius is the largest vertex distance from the origin.
func BoundingRadius(points []mgl32.Vec2) float32 {
	var max float32
	for _, p := range points {
		if l := p.Len(); l > max {
			max = l
		}
	}
	return max
}

// Rotate turns v by angle radians counter-clockwise.
func Rotate(v mgl32.Vec2, angle float32) mgl32.Vec2 {
	if angle == 0 {
		return v
	}
	return mgl32.Rotate2D(angle).Mul2x1(v)
}

func cross2(a, b mgl32.Vec2) float32 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// heading is the unit vector for an angle in degrees.
func heading(angleDeg float32) mgl32.Vec2 {
	rad := float64(mgl32.DegToRad(angleDeg))
	return mgl32.Vec2{float32(math.Cos(rad)), float32(math.Sin(rad))}
}

// normalizeDeg wraps an angle into (-180, 180].
func normalizeDeg(a float32) float32 {
	a = float32(math.Mod(float64(a), 360))
	if a <= -180 {
		a += 360
	}
	if a > 180 {
		a -= 360
	}
	return a
}

func randRange(rng *rand.Rand, min, max float32) float32 {
	if max <= min {
		return min
	}
	return min + rng.Float32()*(max-min)
}

func atan2(y, x float32) float64 {
	return math.Atan2(float64(y), float64(x))
}
