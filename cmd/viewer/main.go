package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/nsf/termbox-go"

	"github.com/annelo/nightfall/internal/config"
	"github.com/annelo/nightfall/internal/gameloop"
	"github.com/annelo/nightfall/internal/logging"
	"github.com/annelo/nightfall/internal/noisegeneration"
	"github.com/annelo/nightfall/internal/session"
	"github.com/annelo/nightfall/internal/tilemanager"
)

var (
	configPath = flag.String("config", "nightfall.yaml", "Путь к файлу настроек")
	seed       = flag.Int64("seed", 0, "Сид симуляции (0 = из настроек или случайный)")
	cellWidth  = flag.Float64("cell", 16, "Мировых единиц в одной ячейке терминала по горизонтали")
	debugMode  = flag.Bool("debug", false, "Режим отладки (показать подробную информацию)")
)

// inputState накапливает нажатия между тиками
type inputState struct {
	mu       sync.Mutex
	move     mgl32.Vec2
	moveTTL  int
	aim      float32
	fire     bool
	interact bool
	place    bool
	confirm  bool
	reset    bool
}

// движение держится несколько тиков после нажатия
const moveHoldTicks = 6

func (s *inputState) press(dx, dy float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.move = mgl32.Vec2{dx, dy}
	s.moveTTL = moveHoldTicks
	s.aim = float32(math.Atan2(float64(-dx), float64(dy)))
}

// take возвращает ввод на тик и сбрасывает одноразовые флаги
func (s *inputState) take() (gameloop.Input, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := gameloop.Input{
		AimAngle:     s.aim,
		Fire:         s.fire,
		Interact:     s.interact,
		PlaceTurret:  s.place,
		ConfirmOffer: s.confirm,
	}
	if s.moveTTL > 0 {
		m := s.move
		in.Move = &m
		s.moveTTL--
	}
	reset := s.reset
	s.interact, s.place, s.confirm, s.reset = false, false, false, false
	return in, reset
}

// Символы и цвета грунта
var groundCells = map[noisegeneration.GroundKind]struct {
	ch rune
	fg termbox.Attribute
}{
	noisegeneration.GroundGrass: {'.', termbox.ColorGreen},
	noisegeneration.GroundDirt:  {'.', termbox.ColorYellow},
	noisegeneration.GroundSand:  {',', termbox.ColorYellow},
	noisegeneration.GroundRock:  {'^', termbox.ColorWhite},
	noisegeneration.GroundMoss:  {'"', termbox.ColorGreen},
}

// processInput обрабатывает ввод с клавиатуры до выхода
func processInput(in *inputState) {
	for {
		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			switch ev.Key {
			case termbox.KeyEsc, termbox.KeyCtrlC:
				return
			case termbox.KeyArrowUp:
				in.press(0, 1)
			case termbox.KeyArrowDown:
				in.press(0, -1)
			case termbox.KeyArrowLeft:
				in.press(-1, 0)
			case termbox.KeyArrowRight:
				in.press(1, 0)
			case termbox.KeySpace:
				in.mu.Lock()
				in.fire = !in.fire
				in.mu.Unlock()
			}

			in.mu.Lock()
			switch ev.Ch {
			case 'e':
				in.interact = true
			case 't':
				in.place = true
			case 'c':
				in.confirm = true
			case 'r':
				in.reset = true
			}
			in.mu.Unlock()

			switch ev.Ch {
			case 'w':
				in.press(0, 1)
			case 's':
				in.press(0, -1)
			case 'a':
				in.press(-1, 0)
			case 'd':
				in.press(1, 0)
			case 'q':
				return
			}
		case termbox.EventError, termbox.EventInterrupt:
			return
		}
	}
}

// renderWorld рисует снимок сессии вокруг камеры
func renderWorld(snap session.Snapshot) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	width, height := termbox.Size()

	phase := "день"
	if snap.Night {
		phase = "ночь"
	}
	info := fmt.Sprintf("HP: %.0f | Энергия: %d | Оружие: %s | Турель: %s | День %d, %s, %.0fs",
		snap.Health, snap.Energy, snap.Weapon, orDash(snap.TurretInHand), snap.Day, phase, snap.TimeLeft)
	drawText(0, 0, width, info, termbox.ColorWhite, termbox.ColorDefault)
	infoY := 1
	if *debugMode {
		debugInfo := fmt.Sprintf("X: %.0f Y: %.0f | Клетка: %v | Врагов: %d | Снарядов: %d | Сундуков: %d",
			snap.PlayerPos.X(), snap.PlayerPos.Y(), tilemanager.CoordOf(snap.PlayerPos),
			len(snap.Enemies), len(snap.Projectiles), len(snap.Chests))
		drawText(0, infoY, width, debugInfo, termbox.ColorYellow, termbox.ColorDefault)
		infoY++
	}

	top := infoY
	rows := height - top - 2
	cw := float32(*cellWidth)
	ch := cw * 2 // ячейка терминала примерно вдвое выше ширины

	// перевод мировых координат в ячейки экрана, ось Y мира направлена вверх
	toScreen := func(p mgl32.Vec3) (int, int, bool) {
		x := int((p.X()-snap.Camera.X())/cw) + width/2
		y := top + rows/2 - int((p.Y()-snap.Camera.Y())/ch)
		return x, y, x >= 0 && x < width && y >= top && y < top+rows
	}

	tiles := make(map[tilemanager.Coord]noisegeneration.GroundKind, len(snap.Tiles))
	for _, t := range snap.Tiles {
		tiles[t.Coord] = t.Ground
	}
	_, _, v := snap.Ambient.Hsv()
	bg := termbox.ColorDefault
	if v < 0.8 {
		bg = termbox.ColorBlue
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < width; x++ {
			wp := mgl32.Vec3{
				snap.Camera.X() + float32(x-width/2)*cw,
				snap.Camera.Y() - float32(y-rows/2)*ch,
				0,
			}
			if g, ok := tiles[tilemanager.CoordOf(wp)]; ok {
				c := groundCells[g]
				termbox.SetCell(x, y+top, c.ch, c.fg, bg)
			}
		}
	}

	for _, c := range snap.Chests {
		if x, y, ok := toScreen(c.Position); ok {
			sym := 'C'
			if c.Opened {
				sym = 'c'
			}
			termbox.SetCell(x, y, sym, termbox.ColorMagenta, bg)
		}
	}
	for _, e := range snap.Enemies {
		if x, y, ok := toScreen(e.Position); ok {
			termbox.SetCell(x, y, 'x', termbox.ColorRed, bg)
		}
	}
	for _, t := range snap.Turrets {
		if x, y, ok := toScreen(t.Position); ok {
			termbox.SetCell(x, y, 'T', termbox.ColorCyan, bg)
		}
	}
	for _, p := range snap.Projectiles {
		if x, y, ok := toScreen(p.Position); ok {
			termbox.SetCell(x, y, '*', termbox.ColorYellow, bg)
		}
	}
	if x, y, ok := toScreen(snap.PlayerPos); ok {
		sym := '@'
		if snap.PlayerDead {
			sym = '%'
		}
		termbox.SetCell(x, y, sym, termbox.ColorRed, termbox.ColorDarkGray)
	}

	if snap.Message != "" {
		msg := fmt.Sprintf("[%.1fs] %s", snap.MessageAt, snap.Message)
		drawText(0, height-2, width, msg, termbox.ColorCyan, termbox.ColorDefault)
	}
	instructions := "Управление: Стрелки/WASD - движение, Пробел - огонь вкл/выкл, E - сундук, C - принять, T - турель, R - заново, Q/Esc - выход"
	drawText(0, height-1, width, instructions, termbox.ColorWhite, termbox.ColorDefault)

	termbox.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// drawText отображает текст с ограничением по ширине
func drawText(x, y, maxWidth int, text string, fg, bg termbox.Attribute) {
	i := 0
	for _, ch := range text {
		if i >= maxWidth {
			return
		}
		termbox.SetCell(x+i, y, ch, fg, bg)
		i++
	}
}

func main() {
	// Парсим флаги командной строки
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки настроек: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	// В терминале логи мешают отрисовке
	sess, err := session.New(cfg, nil, logging.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка создания сессии: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = sess.Close() }()

	if err := termbox.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось инициализировать терминал: %v\n", err)
		os.Exit(1)
	}
	defer termbox.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-signalChan:
			termbox.Interrupt()
		case <-ctx.Done():
		}
	}()

	in := &inputState{}

	// Цикл симуляции и отрисовки
	go func() {
		ticker := time.NewTicker(cfg.TickInterval)
		defer ticker.Stop()
		last := time.Now()
		for {
			select {
			case t := <-ticker.C:
				dt := t.Sub(last)
				last = t
				step, reset := in.take()
				if reset {
					sess.Reset()
				}
				sess.Step(ctx, dt, step)
				renderWorld(sess.Snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()

	processInput(in)
	cancel()
}
