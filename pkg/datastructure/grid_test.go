package datastructure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	testCases := []struct {
		name    string
		width   int
		height  int
		wantErr error
	}{
		{name: "3x3", width: 3, height: 3},
		{name: "2x1", width: 2, height: 1},
		{name: "single cell", width: 1, height: 1},
		{name: "zero width", width: 0, height: 3, wantErr: ErrInvalidDimension},
		{name: "zero height", width: 3, height: 0, wantErr: ErrInvalidDimension},
		{name: "negative", width: -1, height: -4, wantErr: ErrInvalidDimension},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width*tt.height, g.NumberOfCells())
			assert.Equal(t, NewPosition(0, 0), g.GetStartPos())
			assert.Equal(t, NewPosition(tt.width-1, tt.height-1), g.GetTargetPos())

			for i, c := range g.Cells() {
				assert.Equal(t, i, c.GetY()*tt.width+c.GetX())
				assert.False(t, c.IsObstacle())
				assert.False(t, c.IsVisited())
				assert.True(t, math.IsInf(c.GetLocalGoal(), 1))
				assert.True(t, math.IsInf(c.GetGlobalGoal(), 1))
				assert.False(t, c.HasParent())
			}
		})
	}
}

func TestNewGridWithLimit(t *testing.T) {
	_, err := NewGridWithLimit(100, 100, 9999)
	assert.ErrorIs(t, err, ErrGridTooLarge)

	g, err := NewGridWithLimit(100, 100, 10000)
	require.NoError(t, err)
	assert.Equal(t, 10000, g.NumberOfCells())
}

func TestNeighbours(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	testCases := []struct {
		name string
		pos  Position
		want []Position
	}{
		{
			name: "corner",
			pos:  NewPosition(0, 0),
			want: []Position{NewPosition(1, 0), NewPosition(0, 1)},
		},
		{
			name: "center, order left right up down",
			pos:  NewPosition(1, 1),
			want: []Position{NewPosition(0, 1), NewPosition(2, 1), NewPosition(1, 0), NewPosition(1, 2)},
		},
		{
			name: "bottom edge",
			pos:  NewPosition(1, 2),
			want: []Position{NewPosition(0, 2), NewPosition(2, 2), NewPosition(1, 1)},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := g.GetCellAt(tt.pos)
			require.True(t, ok)
			got := make([]Position, 0, len(c.GetNeighbours()))
			for _, n := range c.GetNeighbours() {
				got = append(got, g.GetCell(n).GetPosition())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggleObstacle(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	assert.True(t, g.ToggleObstacle(NewPosition(1, 1)))
	c, _ := g.GetCellAt(NewPosition(1, 1))
	assert.True(t, c.IsObstacle())

	assert.True(t, g.ToggleObstacle(NewPosition(1, 1)))
	assert.False(t, c.IsObstacle())

	t.Run("start and target are never toggled", func(t *testing.T) {
		assert.False(t, g.ToggleObstacle(g.GetStartPos()))
		assert.False(t, g.ToggleObstacle(g.GetTargetPos()))
		assert.False(t, g.GetCell(g.GetStart()).IsObstacle())
		assert.False(t, g.GetCell(g.GetTarget()).IsObstacle())
	})

	t.Run("out of bounds is ignored", func(t *testing.T) {
		assert.False(t, g.ToggleObstacle(NewPosition(-1, 0)))
		assert.False(t, g.ToggleObstacle(NewPosition(3, 0)))
		assert.False(t, g.ToggleObstacle(NewPosition(0, 3)))
		assert.Empty(t, g.Obstacles())
	})
}

func TestSetObstacle(t *testing.T) {
	testCases := []struct {
		name        string
		pos         Position
		obstacle    bool
		wantChanged bool
		wantFlag    bool
	}{
		{name: "set open cell", pos: NewPosition(1, 1), obstacle: true, wantChanged: true, wantFlag: true},
		{name: "set twice stays set", pos: NewPosition(1, 1), obstacle: true, wantChanged: false, wantFlag: true},
		{name: "clear", pos: NewPosition(1, 1), obstacle: false, wantChanged: true, wantFlag: false},
		{name: "clear twice stays open", pos: NewPosition(1, 1), obstacle: false, wantChanged: false, wantFlag: false},
		{name: "start is refused", pos: NewPosition(0, 0), obstacle: true, wantChanged: false, wantFlag: false},
		{name: "target is refused", pos: NewPosition(2, 2), obstacle: true, wantChanged: false, wantFlag: false},
	}

	// cases run in order against one grid
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantChanged, g.SetObstacle(tt.pos, tt.obstacle))
			c, ok := g.GetCellAt(tt.pos)
			require.True(t, ok)
			assert.Equal(t, tt.wantFlag, c.IsObstacle())
		})
	}

	assert.False(t, g.SetObstacle(NewPosition(3, 0), true), "out of bounds")
	assert.Empty(t, g.Obstacles())
}

func TestSetStartAndTarget(t *testing.T) {
	g, err := NewGrid(4, 4)
	require.NoError(t, err)

	assert.True(t, g.SetStart(NewPosition(1, 2)))
	assert.Equal(t, NewPosition(1, 2), g.GetStartPos())

	assert.True(t, g.SetTarget(NewPosition(3, 0)))
	assert.Equal(t, NewPosition(3, 0), g.GetTargetPos())

	assert.False(t, g.SetStart(NewPosition(4, 0)))
	assert.False(t, g.SetTarget(NewPosition(0, -1)))
	assert.Equal(t, NewPosition(1, 2), g.GetStartPos())
	assert.Equal(t, NewPosition(3, 0), g.GetTargetPos())

	assert.False(t, g.SetStart(NewPosition(1, 2)), "same cell is not a change")

	t.Run("moving onto an obstacle clears it", func(t *testing.T) {
		require.True(t, g.ToggleObstacle(NewPosition(2, 2)))
		require.True(t, g.ToggleObstacle(NewPosition(0, 0)))

		assert.True(t, g.SetStart(NewPosition(2, 2)))
		assert.True(t, g.SetTarget(NewPosition(0, 0)))

		assert.False(t, g.GetCell(g.GetStart()).IsObstacle())
		assert.False(t, g.GetCell(g.GetTarget()).IsObstacle())
		assert.Empty(t, g.Obstacles())
	})
}

func TestResetWorkingStateKeepsObstacles(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	require.True(t, g.ToggleObstacle(NewPosition(1, 0)))

	c := g.GetCell(g.GetStart())
	c.SetVisited(true)
	c.SetLocalGoal(0)
	c.SetGlobalGoal(1.5)
	c.SetParent(3)

	g.ResetWorkingState()

	assert.False(t, c.IsVisited())
	assert.False(t, c.HasParent())
	assert.True(t, math.IsInf(c.GetLocalGoal(), 1))
	assert.True(t, math.IsInf(c.GetGlobalGoal(), 1))
	assert.Equal(t, []Position{NewPosition(1, 0)}, g.Obstacles())
}

func TestClearObstacles(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	g.ToggleObstacle(NewPosition(1, 0))
	g.ToggleObstacle(NewPosition(1, 1))

	assert.Equal(t, 2, g.ClearObstacles())
	assert.Empty(t, g.Obstacles())
	assert.Equal(t, 0, g.ClearObstacles())
}
