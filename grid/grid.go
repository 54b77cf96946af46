// Package grid produces the shuffled number boards for a round. A board of
// size N holds every integer 1..N² exactly once; positions are read row by
// row, so index i sits at row i/N, column i%N.
package grid

import (
	"math/rand/v2"
)

// Size is N for an N×N board.
type Size int

const (
	Small Size = 3
	Large Size = 5
)

// Sizes lists the boards offered on the dashboard, smallest first.
var Sizes = []Size{Small, Large}

// Valid reports whether s is one of the offered board sizes.
func (s Size) Valid() bool {
	for _, v := range Sizes {
		if s == v {
			return true
		}
	}
	return false
}

// Cells returns N².
func (s Size) Cells() int {
	return int(s) * int(s)
}

// Source is the randomness a Generator draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Grid is one placement of 1..N² on the board.
type Grid struct {
	Size    Size
	Numbers []int
}

// At returns the number shown at position i, or 0 when i is off the board.
func (g Grid) At(i int) int {
	if i < 0 || i >= len(g.Numbers) {
		return 0
	}
	return g.Numbers[i]
}

// IndexOf returns the position of n, or -1.
func (g Grid) IndexOf(n int) int {
	for i, v := range g.Numbers {
		if v == n {
			return i
		}
	}
	return -1
}

// Empty reports whether the grid holds no cells (no round on the board).
func (g Grid) Empty() bool {
	return len(g.Numbers) == 0
}

// Valid reports whether the grid is a permutation of 1..N².
func (g Grid) Valid() bool {
	n := g.Size.Cells()
	if n == 0 || len(g.Numbers) != n {
		return false
	}
	seen := make([]bool, n+1)
	for _, v := range g.Numbers {
		if v < 1 || v > n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Generator hands out freshly shuffled grids.
type Generator struct {
	src Source
}

// NewGenerator returns a generator drawing from src. A nil src uses the
// process-wide random source.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

// NewSeededGenerator returns a generator with a reproducible sequence.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate builds 1..size² and shuffles it with Fisher–Yates.
func (g *Generator) Generate(size Size) Grid {
	numbers := make([]int, size.Cells())
	for i := range numbers {
		numbers[i] = i + 1
	}
	for i := len(numbers) - 1; i > 0; i-- {
		j := g.src.IntN(i + 1)
		numbers[i], numbers[j] = numbers[j], numbers[i]
	}
	return Grid{Size: size, Numbers: numbers}
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }
