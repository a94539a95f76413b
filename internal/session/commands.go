package session

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/annelo/nightfall/internal/plugin"
)

// ErrUsage возвращается командой с неверными аргументами
var ErrUsage = errors.New("неверные аргументы команды")

// RegisterCommands добавляет административные команды сессии в реестр.
func (s *Session) RegisterCommands() {
	s.reg.RegisterCommand("status", "показать состояние сессии", s.cmdStatus)
	s.reg.RegisterCommand("day", "показать текущий день и фазу", s.cmdDay)
	s.reg.RegisterCommand("spawn", "spawn <n>: запустить n волн вокруг игрока", s.cmdSpawn)
	s.reg.RegisterCommand("reset", "начать сессию заново", s.cmdReset)
	s.reg.RegisterCommand("help", "список команд", s.cmdHelp)
}

// Exec выполняет строку команды.
func (s *Session) Exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, err := s.reg.Command(fields[0])
	if err != nil {
		return "", err
	}
	return cmd.Handler(fields[1:])
}

func (s *Session) cmdStatus([]string) (string, error) {
	snap := s.Snapshot()
	return fmt.Sprintf("session=%s seed=%d day=%d night=%v health=%.0f energy=%d weapon=%s enemies=%d turrets=%d chests=%d dead=%v",
		snap.SessionID, s.Seed, snap.Day, snap.Night, snap.Health, snap.Energy, snap.Weapon,
		len(snap.Enemies), len(snap.Turrets), len(snap.Chests), snap.PlayerDead), nil
}

func (s *Session) cmdDay([]string) (string, error) {
	snap := s.Snapshot()
	phase := "day"
	if snap.Night {
		phase = "night"
	}
	return fmt.Sprintf("day %d, %s, %.1fs left", snap.Day, phase, snap.TimeLeft), nil
}

func (s *Session) cmdSpawn(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: spawn <n>", ErrUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return "", fmt.Errorf("%w: spawn <n>, n > 0", ErrUsage)
	}

	s.mu.Lock()
	w := s.world
	total := 0
	for i := 0; i < n; i++ {
		total += w.Spawner.Wave(w.Clock, w.Player.Position, w.Enemies)
	}
	s.live.Store(int64(w.Enemies.Len()))
	day := w.Clock.Day()
	s.mu.Unlock()

	s.reg.Emit(plugin.HookWaveSpawned, total, day)
	return fmt.Sprintf("spawned %d enemies", total), nil
}

func (s *Session) cmdReset([]string) (string, error) {
	s.Reset()
	return "session reset", nil
}

func (s *Session) cmdHelp([]string) (string, error) {
	cmds := s.reg.Commands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	var b strings.Builder
	for _, c := range cmds {
		fmt.Fprintf(&b, "%-8s %s\n", c.Name, c.Description)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
