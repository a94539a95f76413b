package weapon

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-3, "component %d: want %v got %v", i, want, got)
	}
}

func TestAimDirection_RoundTrip(t *testing.T) {
	assertVec(t, mgl32.Vec3{0, 1, 0}, AimDirection(0))
	assertVec(t, mgl32.Vec3{-1, 0, 0}, AimDirection(math.Pi/2))

	for _, a := range []float32{-2.5, -1, 0, 0.3, 1.7, 3} {
		assert.InDelta(t, a, AngleOf(AimDirection(a)), 1e-5)
	}
}

func TestFanOut_Counts(t *testing.T) {
	want := map[Pattern]int{Single: 1, TwoShot: 2, SixRay: 6, SixAround: 6, ManyAround: 12}

	for _, angle := range []float32{0, 0.7, 2.1, -1.3, math.Pi} {
		aim := AimDirection(angle)
		for p, n := range want {
			shots := FanOut(p, aim)
			assert.Len(t, shots, n, "pattern %s angle %v", p, angle)
			assert.Equal(t, int32(n), p.Cost())
		}
	}
}

func TestFanOut_RelativeToAim(t *testing.T) {
	// поворот прицела поворачивает весь залп
	for _, p := range []Pattern{Single, TwoShot, SixRay, SixAround, ManyAround} {
		base := FanOut(p, AimDirection(0))
		turned := FanOut(p, AimDirection(1.1))
		require.Len(t, turned, len(base))
		for i := range base {
			assertVec(t, rotate(1.1, base[i].Offset), turned[i].Offset)
			assertVec(t, rotate(1.1, base[i].Direction), turned[i].Direction)
		}
	}
}

func TestFanOut_TwoShotSpread(t *testing.T) {
	aim := AimDirection(0.4)
	shots := FanOut(TwoShot, aim)
	require.Len(t, shots, 2)

	assert.InDelta(t, 0.4-math.Pi/16, AngleOf(shots[0].Direction), 1e-5)
	assert.InDelta(t, 0.4+math.Pi/16, AngleOf(shots[1].Direction), 1e-5)
	assert.InDelta(t, MuzzleOffset, shots[0].Offset.Len(), 1e-4)
}

func TestFanOut_SixRayIsParallelLine(t *testing.T) {
	shots := FanOut(SixRay, AimDirection(0))
	require.Len(t, shots, 6)

	xs := []float32{-15, -10, -5, 5, 10, 15}
	for i, s := range shots {
		assertVec(t, mgl32.Vec3{0, 1, 0}, s.Direction)
		assertVec(t, mgl32.Vec3{xs[i], 25, 0}, s.Offset)
	}
}

func TestFanOut_Rings(t *testing.T) {
	shots := FanOut(ManyAround, AimDirection(0))
	require.Len(t, shots, 12)

	for k := 0; k < 6; k++ {
		assert.InDelta(t, normalizeAngle(float64(k)*math.Pi/3), normalizeAngle(float64(AngleOf(shots[k].Direction))), 1e-4)
		assert.InDelta(t, normalizeAngle(float64(k)*math.Pi/3+math.Pi/6), normalizeAngle(float64(AngleOf(shots[6+k].Direction))), 1e-4)
	}
	for _, s := range shots {
		assert.InDelta(t, 1, s.Direction.Len(), 1e-5)
		assertVec(t, s.Direction.Mul(MuzzleOffset), s.Offset)
	}
}

func TestFanOut_ZeroAim(t *testing.T) {
	shots := FanOut(Single, mgl32.Vec3{})
	require.Len(t, shots, 1)
	assertVec(t, mgl32.Vec3{0, 1, 0}, shots[0].Direction)
}

// normalizeAngle приводит угол к [0, 2π)
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a > 2*math.Pi-1e-6 {
		a = 0
	}
	return a
}
