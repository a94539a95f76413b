package loot

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annelo/nightfall/internal/rng"
)

func TestGenerate_BonusBranches(t *testing.T) {
	cases := []struct {
		name  string
		r     float32
		bonus []Item
	}{
		{"turret", 0.85, []Item{{Kind: KindTurret, Count: 1}}},
		{"nothing", 0.5, nil},
		{"weapon", 0.1, []Item{{Kind: KindWeapon, Count: 1}}},
		{"turret edge", 0.8, []Item{{Kind: KindTurret, Count: 1}}},
		{"weapon edge", 0.3, []Item{{Kind: KindWeapon, Count: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := &rng.Sequence{Ints: []int{42}, Floats: []float32{tc.r}}
			items := Generate(src)

			require.Len(t, items, 1+len(tc.bonus))
			assert.Equal(t, Item{Kind: KindEnergy, Count: 42}, items[0])
			if len(tc.bonus) > 0 {
				assert.Equal(t, tc.bonus[0], items[1])
			}
		})
	}
}

func TestGenerate_EnergyRange(t *testing.T) {
	src := rng.New(42)
	for i := 0; i < 200; i++ {
		items := Generate(src)
		require.NotEmpty(t, items)
		assert.Equal(t, KindEnergy, items[0].Kind)
		assert.Less(t, items[0].Count, uint32(100))
		assert.LessOrEqual(t, len(items), 2)
	}
}

func TestChest_TakeOnce(t *testing.T) {
	c := &Chest{Items: []Item{{Kind: KindEnergy, Count: 5}}}
	assert.Len(t, c.Take(), 1)
	assert.True(t, c.Opened)
	assert.Empty(t, c.Items)
	assert.Nil(t, c.Take())
}

func TestStore_PopulateCell(t *testing.T) {
	s := NewStore(rng.New(3))
	tint := colorful.Color{R: 0.4, G: 0.4, B: 0.7}
	origin := mgl32.Vec3{512, -1024, 0}

	n := s.PopulateCell(origin, 512, tint)
	assert.GreaterOrEqual(t, n, 2)
	assert.LessOrEqual(t, n, 7)
	assert.Equal(t, n, s.Len())

	for _, c := range s.Chests() {
		assert.GreaterOrEqual(t, c.Position.X(), float32(512))
		assert.Less(t, c.Position.X(), float32(1024))
		assert.GreaterOrEqual(t, c.Position.Y(), float32(-1024))
		assert.Less(t, c.Position.Y(), float32(-512))
		assert.Equal(t, tint, c.Tint)
		assert.False(t, c.Opened)
	}
}

func TestStore_NearestUnopenedInRange(t *testing.T) {
	s := NewStore(rng.New(1))
	far := &Chest{Position: mgl32.Vec3{31, 0, 0}}
	near := &Chest{Position: mgl32.Vec3{0, 10, 0}}
	nearer := &Chest{Position: mgl32.Vec3{5, 0, 0}, Opened: true}
	s.cells[mgl32.Vec2{}] = []*Chest{far, near, nearer}
	s.visible[mgl32.Vec2{}] = struct{}{}

	c, ok := s.Nearest(mgl32.Vec3{})
	require.True(t, ok)
	assert.Same(t, near, c)

	near.Opened = true
	_, ok = s.Nearest(mgl32.Vec3{})
	assert.False(t, ok)
}

func TestStore_Retint(t *testing.T) {
	s := NewStore(rng.New(1))
	s.PopulateCell(mgl32.Vec3{}, 512, colorful.Color{})
	s.Retint(colorful.Color{R: 1, G: 1, B: 1})
	for _, c := range s.Chests() {
		assert.Equal(t, colorful.Color{R: 1, G: 1, B: 1}, c.Tint)
	}
	s.Reset()
	assert.Zero(t, s.Len())
}

func TestStore_HiddenCellsSkipped(t *testing.T) {
	s := NewStore(rng.New(5))
	night := colorful.Color{R: 0.4, G: 0.4, B: 0.7}
	day := colorful.Color{R: 1, G: 1, B: 1}
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{512, 0, 0}
	na := s.PopulateCell(a, 512, day)
	nb := s.PopulateCell(b, 512, day)
	require.Len(t, s.Chests(), na+nb)

	s.HideCell(b)
	visible := s.Chests()
	assert.Len(t, visible, na)
	for _, c := range visible {
		assert.Less(t, c.Position.X(), float32(512))
	}
	assert.Equal(t, na+nb, s.Len())

	// скрытый сундук не находится даже вплотную
	hidden := s.cells[b.Vec2()][0]
	if c, ok := s.Nearest(hidden.Position); ok {
		assert.NotSame(t, hidden, c)
	}

	s.Retint(night)
	assert.Equal(t, day, hidden.Tint)

	s.ShowCell(b, night)
	assert.Len(t, s.Chests(), na+nb)
	assert.Equal(t, night, hidden.Tint)
	c, ok := s.Nearest(hidden.Position)
	require.True(t, ok)
	assert.Same(t, hidden, c)
}
