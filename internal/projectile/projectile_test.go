package projectile

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annelo/nightfall/internal/entity"
	"github.com/annelo/nightfall/internal/weapon"
)

func single(dir mgl32.Vec3) []weapon.Shot {
	return []weapon.Shot{{Direction: dir}}
}

func TestManager_Advance(t *testing.T) {
	m := NewManager()
	m.Spawn(mgl32.Vec3{0, 0, 1}, single(mgl32.Vec3{1, 0, 0}), FromPlayer)

	m.Advance(0.5)
	p := m.All()[0]
	assert.InDelta(t, 150, p.Position.X(), 1e-4)
	assert.InDelta(t, 1.3, p.Position.Z(), 1e-5)
	assert.Equal(t, float32(0.5), p.Age)
}

func TestManager_ExpiredBeforeHit(t *testing.T) {
	reg := entity.NewRegistry()
	h := reg.Spawn(entity.Enemy{Body: entity.Body{Health: 5}})

	m := NewManager()
	m.Spawn(mgl32.Vec3{}, single(mgl32.Vec3{0, 1, 0}), FromPlayer)
	m.items[0].Age = Lifetime
	m.items[0].Speed = 0

	m.Advance(0)
	hits, expired := m.Resolve(reg)

	assert.Zero(t, hits)
	assert.Equal(t, 1, expired)
	assert.Zero(t, m.Len())
	e, _ := reg.Enemy(h)
	assert.Equal(t, float32(5), e.Health)
}

func TestManager_SingleHitNoPierce(t *testing.T) {
	reg := entity.NewRegistry()
	first := reg.Spawn(entity.Enemy{Body: entity.Body{Health: 5, Position: mgl32.Vec3{0, 10, 0}}})
	second := reg.Spawn(entity.Enemy{Body: entity.Body{Health: 5, Position: mgl32.Vec3{0, 12, 0}}})

	m := NewManager()
	m.Spawn(mgl32.Vec3{}, single(mgl32.Vec3{0, 1, 0}), FromTurret)

	hits, _ := m.Resolve(reg)
	require.Equal(t, 1, hits)
	assert.Zero(t, m.Len())

	e1, _ := reg.Enemy(first)
	e2, _ := reg.Enemy(second)
	assert.Equal(t, float32(4), e1.Health)
	assert.Equal(t, float32(5), e2.Health)
}

func TestManager_MissKeepsFlying(t *testing.T) {
	reg := entity.NewRegistry()
	reg.Spawn(entity.Enemy{Body: entity.Body{Health: 5, Position: mgl32.Vec3{100, 0, 0}}})

	m := NewManager()
	m.Spawn(mgl32.Vec3{}, single(mgl32.Vec3{0, 1, 0}), FromPlayer)
	hits, expired := m.Resolve(reg)
	assert.Zero(t, hits)
	assert.Zero(t, expired)
	assert.Equal(t, 1, m.Len())
}

func TestManager_HitRadiusBoundary(t *testing.T) {
	reg := entity.NewRegistry()
	reg.Spawn(entity.Enemy{Body: entity.Body{Health: 1, Position: mgl32.Vec3{25, 0, 0}}})

	m := NewManager()
	m.Spawn(mgl32.Vec3{}, single(mgl32.Vec3{0, 1, 0}), FromPlayer)
	hits, _ := m.Resolve(reg)
	assert.Equal(t, 1, hits, "ровно 25 единиц считается попаданием")
}

func TestDespawn_AfterResolve(t *testing.T) {
	reg := entity.NewRegistry()
	h := reg.Spawn(entity.Enemy{Body: entity.Body{Health: 1}})
	reg.Spawn(entity.Enemy{Body: entity.Body{Health: 3, Position: mgl32.Vec3{500, 0, 0}}})

	m := NewManager()
	m.Spawn(mgl32.Vec3{}, single(mgl32.Vec3{0, 1, 0}), FromPlayer)
	m.Resolve(reg)

	_, ok := reg.Enemy(h)
	assert.True(t, ok, "до шага смерти враг ещё в реестре")

	assert.Equal(t, 1, Despawn(reg))
	assert.Equal(t, 1, reg.Len())
}
