package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/annelo/nightfall/internal/noisegeneration"
)

const (
	width  = 40
	height = 20
)

var seed = flag.Int64("seed", 0, "Сид шума (0 = случайный)")

func main() {
	flag.Parse()
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	fmt.Printf("Seed: %d\n", *seed)

	// Визуализируем плодородие
	fmt.Println("\nПлодородие:")
	visualizeNoise(noisegeneration.NewNoiseMap(*seed, 0.15))

	// Визуализируем грунт клеток вокруг начала координат
	fmt.Println("\nКарта грунта:")
	ground := noisegeneration.NewGroundNoise(*seed)
	visualizeGround(ground)

	hits, misses := ground.CacheStats()
	fmt.Printf("\nКеш: %d попаданий, %d промахов\n", hits, misses)
}

// visualizeNoise печатает значения шума символами от низких к высоким
func visualizeNoise(noise *noisegeneration.NoiseMap) {
	chars := []rune{'~', '.', '-', '=', '#', '^', '*', '@'}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := noise.Octave2D(float64(x)+0.5, float64(y)+0.5, 3)
			idx := int(v * float64(len(chars)-1))
			if idx >= len(chars) {
				idx = len(chars) - 1
			}
			fmt.Print(string(chars[idx]))
		}
		fmt.Println()
	}
}

// visualizeGround печатает вариант грунта для каждой клетки
func visualizeGround(ground *noisegeneration.GroundNoise) {
	groundChars := map[noisegeneration.GroundKind]rune{
		noisegeneration.GroundGrass: '_', // трава
		noisegeneration.GroundDirt:  '.', // земля
		noisegeneration.GroundSand:  ',', // песок
		noisegeneration.GroundRock:  '^', // камень
		noisegeneration.GroundMoss:  '"', // мох
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cx, cy := int32(x-width/2), int32(height/2-y)
			fmt.Print(string(groundChars[ground.GroundAt(cx, cy)]))
		}
		fmt.Println()
	}
	// повторный проход идёт из кеша
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ground.GroundAt(int32(x-width/2), int32(height/2-y))
		}
	}
}
