// Package noisegeneration выбирает вариант грунта для тайлов мира по шуму Перлина.
package noisegeneration

import (
	"sync"

	"github.com/aquilax/go-perlin"
)

// GroundKind - вариант грунта тайла
type GroundKind int

const (
	GroundGrass GroundKind = iota
	GroundDirt
	GroundSand
	GroundRock
	GroundMoss
)

// String возвращает имя варианта грунта.
func (g GroundKind) String() string {
	switch g {
	case GroundGrass:
		return "grass"
	case GroundDirt:
		return "dirt"
	case GroundSand:
		return "sand"
	case GroundRock:
		return "rock"
	case GroundMoss:
		return "moss"
	default:
		return "unknown"
	}
}

// NoiseMap - многооктавный шум с нормализацией в [0, 1]
type NoiseMap struct {
	perlin      *perlin.Perlin
	scale       float64 // Масштаб (меньше - плавнее)
	persistence float64 // Множитель амплитуды между октавами
	lacunarity  float64 // Множитель частоты между октавами
}

// NewNoiseMap создаёт карту шума с заданным сидом и масштабом
func NewNoiseMap(seed int64, scale float64) *NoiseMap {
	// alpha, beta и число октав внутри самого perlin
	return &NoiseMap{
		perlin:      perlin.NewPerlin(2, 2, 3, seed),
		scale:       scale,
		persistence: 0.5,
		lacunarity:  2,
	}
}

// Octave2D возвращает значение шума в [0, 1] для заданного числа октав
func (nm *NoiseMap) Octave2D(x, y float64, octaves int) float64 {
	x *= nm.scale
	y *= nm.scale

	amplitude, frequency := 1.0, 1.0
	total, norm := 0.0, 0.0
	for i := 0; i < octaves; i++ {
		total += nm.perlin.Noise2D(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= nm.persistence
		frequency *= nm.lacunarity
	}
	if norm == 0 {
		return 0.5
	}

	v := (total/norm + 1) / 2
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// GroundNoise сопоставляет клетке сетки вариант грунта и кеширует результат
type GroundNoise struct {
	fertility *NoiseMap
	dryness   *NoiseMap

	mu       sync.RWMutex
	cache    map[int64]GroundKind
	capacity int
	hits     int
	misses   int
}

// NewGroundNoise создаёт генератор грунта
func NewGroundNoise(seed int64) *GroundNoise {
	return &GroundNoise{
		fertility: NewNoiseMap(seed, 0.15),
		dryness:   NewNoiseMap(seed+1, 0.08),
		cache:     make(map[int64]GroundKind),
		capacity:  4096,
	}
}

// cellKey упаковывает координаты клетки в один ключ
func cellKey(cx, cy int32) int64 {
	return (int64(cx) << 32) | (int64(cy) & 0xFFFFFFFF)
}

// GroundAt возвращает вариант грунта для клетки (cx, cy)
func (g *GroundNoise) GroundAt(cx, cy int32) GroundKind {
	key := cellKey(cx, cy)

	g.mu.Lock()
	defer g.mu.Unlock()
	if kind, ok := g.cache[key]; ok {
		g.hits++
		return kind
	}
	g.misses++

	// Смещение на полклетки, чтобы не попадать в узлы решётки шума
	x, y := float64(cx)+0.5, float64(cy)+0.5
	kind := Classify(g.fertility.Octave2D(x, y, 3), g.dryness.Octave2D(x, y, 2))

	// Простая стратегия: при переполнении кеш сбрасывается целиком
	if len(g.cache) >= g.capacity {
		g.cache = make(map[int64]GroundKind)
	}
	g.cache[key] = kind
	return kind
}

// CacheStats возвращает попадания и промахи кеша
func (g *GroundNoise) CacheStats() (hits, misses int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.hits, g.misses
}

// Classify выбирает грунт по плодородию и сухости
func Classify(fertility, dryness float64) GroundKind {
	switch {
	case dryness > 0.65:
		return GroundSand
	case fertility < 0.3:
		return GroundRock
	case fertility > 0.7 && dryness < 0.35:
		return GroundMoss
	case fertility < 0.45:
		return GroundDirt
	}
	return GroundGrass
}
