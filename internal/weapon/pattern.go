package weapon

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MuzzleOffset - расстояние от центра стрелка до точки вылета
	MuzzleOffset float32 = 25

	twoShotSpread = math.Pi / 16
	hexStep       = math.Pi / 3
)

var (
	forward = mgl32.Vec3{0, 1, 0}
	axisZ   = mgl32.Vec3{0, 0, 1}

	// поперечные смещения SixRay в локальных координатах стрелка
	rayLine = [...]float32{-15, -10, -5, 5, 10, 15}
)

// Shot - один снаряд залпа: смещение точки вылета и направление полёта.
type Shot struct {
	Offset    mgl32.Vec3
	Direction mgl32.Vec3
}

// AimDirection переводит угол поворота вокруг Z в единичный вектор прицела.
// Нулевой угол смотрит вдоль +Y.
func AimDirection(angle float32) mgl32.Vec3 {
	return mgl32.QuatRotate(angle, axisZ).Rotate(forward)
}

// AngleOf обратна AimDirection: возвращает угол, под которым смотрит dir.
func AngleOf(dir mgl32.Vec3) float32 {
	return float32(math.Atan2(float64(-dir.X()), float64(dir.Y())))
}

// Flatten обнуляет Z и нормализует вектор. Нулевой вектор остаётся нулевым.
func Flatten(v mgl32.Vec3) mgl32.Vec3 {
	v[2] = 0
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

func rotate(angle float32, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.QuatRotate(angle, axisZ).Rotate(v)
}

func radial(dir mgl32.Vec3) Shot {
	return Shot{Offset: dir.Mul(MuzzleOffset), Direction: dir}
}

// FanOut раскладывает прицел в залп по схеме. Все смещения считаются
// относительно прицела, а не мировых осей. Нулевой прицел заменяется на +Y.
func FanOut(p Pattern, aim mgl32.Vec3) []Shot {
	aim = Flatten(aim)
	if aim.Len() == 0 {
		aim = forward
	}

	switch p {
	case Single:
		return []Shot{radial(aim)}

	case TwoShot:
		return []Shot{
			radial(rotate(-twoShotSpread, aim)),
			radial(rotate(twoShotSpread, aim)),
		}

	case SixRay:
		facing := mgl32.QuatRotate(AngleOf(aim), axisZ)
		shots := make([]Shot, 0, len(rayLine))
		for _, x := range rayLine {
			shots = append(shots, Shot{
				Offset:    facing.Rotate(mgl32.Vec3{x, MuzzleOffset, 0}),
				Direction: aim,
			})
		}
		return shots

	case SixAround:
		return ring(aim, 0)

	case ManyAround:
		return append(ring(aim, 0), ring(aim, hexStep/2)...)
	}
	return nil
}

// ring строит шесть радиальных выстрелов через 60 градусов начиная с phase.
func ring(aim mgl32.Vec3, phase float32) []Shot {
	shots := make([]Shot, 0, 6)
	for k := 0; k < 6; k++ {
		d := Flatten(rotate(phase+float32(k)*hexStep, aim))
		shots = append(shots, radial(d))
	}
	return shots
}
