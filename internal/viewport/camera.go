// Package viewport описывает камеру, за которой следует мир.
package viewport

import "github.com/go-gl/mathgl/mgl32"

// Camera - прямоугольник обзора с центром в Position.
type Camera struct {
	Position mgl32.Vec3
	Width    float32
	Height   float32
}

// NewCamera создаёт камеру с заданным размером обзора.
func NewCamera(width, height float32) *Camera {
	return &Camera{Width: width, Height: height}
}

// Follow сдвигает камеру к цели на долю factor от расстояния. Z камеры не меняется.
func (c *Camera) Follow(target mgl32.Vec3, factor float32) {
	z := c.Position.Z()
	c.Position = c.Position.Add(target.Sub(c.Position).Mul(factor))
	c.Position[2] = z
}

// Contains сообщает, попадает ли точка в прямоугольник обзора.
func (c *Camera) Contains(p mgl32.Vec3) bool {
	dx := p.X() - c.Position.X()
	dy := p.Y() - c.Position.Y()
	return dx >= -c.Width/2 && dx <= c.Width/2 && dy >= -c.Height/2 && dy <= c.Height/2
}
