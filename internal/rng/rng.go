// Package rng изолирует источник случайных чисел симуляции.
package rng

import "math/rand"

// Source - генератор, которым пользуются спавн волн и генерация лута.
// *rand.Rand удовлетворяет интерфейсу без обёрток.
type Source interface {
	Float32() float32
	Intn(n int) int
}

// New создаёт детерминированный генератор с заданным сидом.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Sequence воспроизводит заранее заданные значения по кругу.
// Пустые списки дают нули.
type Sequence struct {
	Floats []float32
	Ints   []int

	fi, ii int
}

// Float32 возвращает следующее значение из Floats.
func (s *Sequence) Float32() float32 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

// Intn возвращает следующее значение из Ints, приведённое к [0, n).
func (s *Sequence) Intn(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	if v < 0 {
		v = -v
	}
	return v % n
}
