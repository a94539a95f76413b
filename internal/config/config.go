// Package config загружает настройки симуляции из YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid возвращается при недопустимых значениях настроек
var ErrInvalid = errors.New("некорректная конфигурация")

// ViewConfig - размер обзора камеры в мировых единицах
type ViewConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// PlayerConfig - стартовые параметры игрока
type PlayerConfig struct {
	Speed  float32 `yaml:"speed"`
	Health float32 `yaml:"health"`
	Energy int32   `yaml:"energy"`
}

// Config - настройки сессии
type Config struct {
	// Seed 0 означает случайный сид
	Seed         int64         `yaml:"seed"`
	TickInterval time.Duration `yaml:"tick_interval"`
	LogLevel     string        `yaml:"log_level"`
	Development  bool          `yaml:"development"`
	PluginDir    string        `yaml:"plugin_dir"`
	CameraFollow float32       `yaml:"camera_follow"`
	View         ViewConfig    `yaml:"view"`
	Player       PlayerConfig  `yaml:"player"`
}

// Default возвращает настройки по умолчанию
func Default() Config {
	return Config{
		TickInterval: 16 * time.Millisecond,
		LogLevel:     "info",
		PluginDir:    "./plugins",
		CameraFollow: 0.2,
		View:         ViewConfig{Width: 800, Height: 600},
		Player:       PlayerConfig{Speed: 150, Health: 100, Energy: 100},
	}
}

// Load читает файл поверх значений по умолчанию. Отсутствующий файл не ошибка.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет диапазоны значений
func (c Config) Validate() error {
	switch {
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval должен быть положительным", ErrInvalid)
	case c.View.Width <= 0 || c.View.Height <= 0:
		return fmt.Errorf("%w: размер обзора должен быть положительным", ErrInvalid)
	case c.CameraFollow <= 0 || c.CameraFollow > 1:
		return fmt.Errorf("%w: camera_follow должен быть в (0, 1]", ErrInvalid)
	case c.Player.Health <= 0:
		return fmt.Errorf("%w: здоровье игрока должно быть положительным", ErrInvalid)
	case c.Player.Speed < 0:
		return fmt.Errorf("%w: скорость игрока не может быть отрицательной", ErrInvalid)
	}
	return nil
}
