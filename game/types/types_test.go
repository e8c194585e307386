package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridContains(t *testing.T) {
	g := DefaultGrid()

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"top left corner", Point{1, 1}, true},
		{"bottom right corner", Point{15, 10}, true},
		{"spawn cell", Point{8, 5}, true},
		{"zero column", Point{0, 5}, false},
		{"zero row", Point{8, 0}, false},
		{"past right edge", Point{16, 5}, false},
		{"past bottom edge", Point{8, 11}, false},
		{"negative", Point{-1, -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Contains(tt.p))
		})
	}
	assert.Equal(t, 150, g.Cells())
}

func TestDirectionGeometry(t *testing.T) {
	start := Point{8, 5}
	assert.Equal(t, Point{8, 4}, start.Add(Up.ToPoint()))
	assert.Equal(t, Point{8, 6}, start.Add(Down.ToPoint()))
	assert.Equal(t, Point{7, 5}, start.Add(Left.ToPoint()))
	assert.Equal(t, Point{9, 5}, start.Add(Right.ToPoint()))
	assert.Equal(t, start, start.Add(None.ToPoint()))

	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite(), d.String())
		assert.Equal(t, d.Opposite(), d.TurnLeft().TurnLeft(), d.String())
		assert.Equal(t, d, d.TurnLeft().TurnRight(), d.String())
		assert.True(t, d.Valid())
	}
	assert.False(t, None.Valid())
	assert.Equal(t, None, None.Opposite())
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}

	for _, token := range []string{"", "UP", "north", "none", " left"} {
		got, ok := ParseDirection(token)
		assert.False(t, ok, token)
		assert.Equal(t, None, got, token)
	}
}
