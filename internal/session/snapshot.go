package session

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/annelo/nightfall/internal/entity"
	"github.com/annelo/nightfall/internal/loot"
	"github.com/annelo/nightfall/internal/projectile"
	"github.com/annelo/nightfall/internal/tilemanager"
)

// Snapshot - копия состояния сессии для отрисовки и HUD.
type Snapshot struct {
	SessionID string
	Now       float32

	Health       float32
	Energy       int32
	Weapon       string
	TurretInHand string
	PlayerPos    mgl32.Vec3
	PlayerAim    float32
	PlayerDead   bool

	Day      int32
	Night    bool
	TimeLeft float32
	Ambient  colorful.Color

	Message   string
	MessageAt float32

	Camera      mgl32.Vec3
	Tiles       []tilemanager.Tile
	Enemies     []entity.Enemy
	Turrets     []entity.Turret
	Projectiles []projectile.Projectile
	Chests      []loot.Chest
}

// Snapshot собирает текущее состояние.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.world
	p := w.Player
	snap := Snapshot{
		SessionID:   s.ID.String(),
		Now:         w.Now,
		Health:      p.Health,
		Energy:      p.Energy,
		Weapon:      p.Weapon.Name,
		PlayerPos:   p.Position,
		PlayerAim:   p.Rotation,
		PlayerDead:  w.PlayerDead,
		Day:         w.Clock.Day(),
		Night:       w.Clock.IsNight(),
		TimeLeft:    w.Clock.TimeLeftInPhase(),
		Ambient:     w.Clock.AmbientTint(),
		Message:     w.Message.Text,
		MessageAt:   w.Message.At,
		Camera:      w.Camera.Position,
		Tiles:       w.Tiles.Tiles(),
		Enemies:     w.Enemies.Enemies(),
		Projectiles: w.Projectiles.All(),
		Chests:      w.Chests.Chests(),
	}
	if p.Inventory.TurretInHand != nil {
		snap.TurretInHand = p.Inventory.TurretInHand.Name
	}
	for _, t := range w.Enemies.Turrets() {
		snap.Turrets = append(snap.Turrets, *t)
	}
	return snap
}
