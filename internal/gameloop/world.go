package gameloop

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/annelo/nightfall/internal/daynight"
	"github.com/annelo/nightfall/internal/entity"
	"github.com/annelo/nightfall/internal/loot"
	"github.com/annelo/nightfall/internal/projectile"
	"github.com/annelo/nightfall/internal/rng"
	"github.com/annelo/nightfall/internal/spawn"
	"github.com/annelo/nightfall/internal/tilemanager"
	"github.com/annelo/nightfall/internal/viewport"
	"github.com/annelo/nightfall/internal/weapon"
	"github.com/annelo/nightfall/internal/worldinterfaces"
)

// Input - команды игрока на один тик.
// Fire удерживается, Interact, PlaceTurret и ConfirmOffer срабатывают по фронту.
type Input struct {
	Move         *mgl32.Vec2
	AimAngle     float32
	Fire         bool
	Interact     bool
	PlaceTurret  bool
	ConfirmOffer bool
}

// Settings - параметры игрока и камеры
type Settings struct {
	PlayerSpeed  float32
	PlayerHealth float32
	PlayerEnergy int32
	CameraFollow float32
	ViewWidth    float32
	ViewHeight   float32
}

// Message - последнее сообщение для HUD
type Message struct {
	Text string
	At   float32
}

// World хранит всё состояние симуляции, общее для систем цикла.
type World struct {
	Settings Settings

	Clock       *daynight.Clock
	Player      *entity.Player
	Camera      *viewport.Camera
	Enemies     *entity.Registry
	Projectiles *projectile.Manager
	Tiles       *tilemanager.TileManager
	Chests      *loot.Store
	Offers      loot.Offers
	Spawner     *spawn.Director
	Rand        rng.Source

	Input      Input
	Now        float32
	Message    Message
	PlayerDead bool
}

// NewWorld собирает мир. Тайлы заселяются сундуками из Chests.
func NewWorld(s Settings, src rng.Source, ground worldinterfaces.GroundSampler, log *zap.SugaredLogger) *World {
	chests := loot.NewStore(src)
	w := &World{
		Settings:    s,
		Clock:       daynight.NewClock(),
		Camera:      viewport.NewCamera(s.ViewWidth, s.ViewHeight),
		Enemies:     entity.NewRegistry(),
		Projectiles: projectile.NewManager(),
		Tiles:       tilemanager.NewTileManager(ground, chests, log),
		Chests:      chests,
		Spawner:     spawn.NewDirector(src),
		Rand:        src,
	}
	w.Player = entity.NewPlayer(s.PlayerHealth, s.PlayerEnergy, weapon.Default())
	return w
}

// Reset возвращает мир к началу первого дня. Сиды генераторов не меняются.
func (w *World) Reset() {
	w.Clock.Reset()
	w.Enemies.Reset()
	w.Projectiles.Reset()
	w.Tiles.Reset()
	w.Chests.Reset()
	w.Offers.Reset()
	w.Spawner.Reset()
	w.Player = entity.NewPlayer(w.Settings.PlayerHealth, w.Settings.PlayerEnergy, weapon.Default())
	w.Camera.Position = mgl32.Vec3{}
	w.Input = Input{}
	w.Now = 0
	w.Message = Message{}
	w.PlayerDead = false
}

// Notify заменяет сообщение HUD.
func (w *World) Notify(text string) {
	w.Message = Message{Text: text, At: w.Now}
}
