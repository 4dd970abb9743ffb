package routing

import (
	"math/rand"
	"testing"

	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/geo"
	"github.com/lintang-b-s/navigatorx-grid/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p(x, y int) da.Position {
	return da.NewPosition(x, y)
}

func newTestGrid(t *testing.T, width, height int, obstacles ...da.Position) (*da.Grid, *AStar) {
	t.Helper()
	g, err := da.NewGrid(width, height)
	require.NoError(t, err)
	for _, o := range obstacles {
		require.True(t, g.ToggleObstacle(o))
	}
	return g, NewAStar(g, metrics.NewMetric())
}

func TestFindPath(t *testing.T) {
	testCases := []struct {
		name      string
		width     int
		height    int
		start     da.Position
		target    da.Position
		obstacles []da.Position
		want      []da.Position
		wantCost  float64
	}{
		{
			name:     "2x1",
			width:    2,
			height:   1,
			start:    p(0, 0),
			target:   p(1, 0),
			want:     []da.Position{p(0, 0), p(1, 0)},
			wantCost: 1,
		},
		{
			name:     "3x3 open grid, ties resolved in neighbour order",
			width:    3,
			height:   3,
			start:    p(0, 0),
			target:   p(2, 2),
			want:     []da.Position{p(0, 0), p(1, 0), p(1, 1), p(2, 1), p(2, 2)},
			wantCost: 4,
		},
		{
			name:      "3x3 full wall at x=1",
			width:     3,
			height:    3,
			start:     p(0, 0),
			target:    p(2, 2),
			obstacles: []da.Position{p(1, 0), p(1, 1), p(1, 2)},
			want:      []da.Position{},
		},
		{
			name:      "detour around a partial wall",
			width:     3,
			height:    3,
			start:     p(0, 0),
			target:    p(2, 0),
			obstacles: []da.Position{p(1, 0), p(1, 1)},
			want:      []da.Position{p(0, 0), p(0, 1), p(0, 2), p(1, 2), p(2, 2), p(2, 1), p(2, 0)},
			wantCost:  6,
		},
		{
			name:     "start equals target",
			width:    3,
			height:   3,
			start:    p(1, 1),
			target:   p(1, 1),
			want:     []da.Position{p(1, 1)},
			wantCost: 0,
		},
		{
			name:      "target boxed in",
			width:     4,
			height:    4,
			start:     p(0, 0),
			target:    p(3, 3),
			obstacles: []da.Position{p(2, 3), p(3, 2)},
			want:      []da.Position{},
		},
		{
			name:   "single cell grid",
			width:  1,
			height: 1,
			start:  p(0, 0),
			target: p(0, 0),
			want:   []da.Position{p(0, 0)},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, as := newTestGrid(t, tt.width, tt.height)
			g.SetStart(tt.start)
			g.SetTarget(tt.target)
			for _, o := range tt.obstacles {
				require.True(t, g.ToggleObstacle(o))
			}

			route := as.ShortestPath()
			assert.Equal(t, tt.want, route.GetPath())
			assert.Equal(t, len(tt.want) > 0, route.IsFound())
			if route.IsFound() {
				assert.InDelta(t, tt.wantCost, route.GetCost(), 1e-9)
				assert.Equal(t, tt.start, route.GetPath()[0])
				assert.Equal(t, tt.target, route.GetPath()[len(route.GetPath())-1])
			}
		})
	}
}

func TestFindPathSettledCells(t *testing.T) {
	_, as := newTestGrid(t, 3, 3)
	as.FindPath()
	assert.Equal(t, 9, as.GetNumSettledCells())

	_, as = newTestGrid(t, 3, 3, p(1, 0), p(1, 1), p(1, 2))
	assert.Empty(t, as.FindPath())
	assert.Equal(t, 3, as.GetNumSettledCells(), "only the left column is reachable")
}

func TestFindPathOpenGridIsManhattan(t *testing.T) {
	g, as := newTestGrid(t, 6, 5)

	for sx := 0; sx < 6; sx++ {
		for sy := 0; sy < 5; sy++ {
			for _, target := range []da.Position{p(0, 0), p(5, 4), p(2, 3), p(5, 0)} {
				g.SetStart(p(sx, sy))
				g.SetTarget(target)

				path := as.FindPath()
				require.NotEmpty(t, path)
				assert.Equal(t, geo.CalculateManhattanDistance(sx, sy, target.X, target.Y), len(path)-1)
				assertContiguous(t, g, path)
			}
		}
	}
}

func TestFindPathIdempotent(t *testing.T) {
	g, as := newTestGrid(t, 8, 8, p(3, 0), p(3, 1), p(3, 2), p(3, 3), p(5, 7), p(5, 6), p(5, 5))
	g.SetTarget(p(7, 7))

	first := as.FindPath()
	second := as.FindPath()
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestFindPathWorkingState(t *testing.T) {
	g, as := newTestGrid(t, 3, 3, p(1, 1))

	path := as.FindPath()
	require.NotEmpty(t, path)

	start := g.GetCell(g.GetStart())
	target := g.GetCell(g.GetTarget())
	assert.True(t, start.IsVisited())
	assert.True(t, target.IsVisited())
	assert.Equal(t, 0.0, start.GetLocalGoal())
	assert.Equal(t, 4.0, target.GetLocalGoal())

	obstacle, _ := g.GetCellAt(p(1, 1))
	assert.False(t, obstacle.IsVisited())
	assert.False(t, obstacle.HasParent())
	assert.True(t, obstacle.IsObstacle())
}

func TestToggleStartOrTargetDoesNotBlockSearch(t *testing.T) {
	g, as := newTestGrid(t, 3, 3)
	before := as.FindPath()

	assert.False(t, g.ToggleObstacle(g.GetStartPos()))
	assert.False(t, g.ToggleObstacle(g.GetTargetPos()))

	assert.Equal(t, before, as.FindPath())
}

func TestCuttingOnlyRouteMakesTargetUnreachable(t *testing.T) {
	// two halves joined by a single gap at (2, 2)
	wall := []da.Position{p(2, 0), p(2, 1), p(2, 3), p(2, 4)}
	g, as := newTestGrid(t, 5, 5, wall...)

	require.NotEmpty(t, as.FindPath())

	require.True(t, g.ToggleObstacle(p(2, 2)))
	assert.Empty(t, as.FindPath())

	require.True(t, g.ToggleObstacle(p(2, 2)))
	assert.NotEmpty(t, as.FindPath())
}

func TestFindPathIsShortestOnRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		width := 4 + rng.Intn(12)
		height := 4 + rng.Intn(12)
		g, as := newTestGrid(t, width, height)
		g.SetStart(p(rng.Intn(width), rng.Intn(height)))
		g.SetTarget(p(rng.Intn(width), rng.Intn(height)))
		for j := 0; j < width*height/4; j++ {
			g.ToggleObstacle(p(rng.Intn(width), rng.Intn(height)))
		}

		path := as.FindPath()
		want := bfsSteps(g)
		if want < 0 {
			assert.Empty(t, path)
			continue
		}
		require.NotEmpty(t, path)
		assert.Equal(t, want, len(path)-1)
		assertContiguous(t, g, path)
	}
}

func assertContiguous(t *testing.T, g *da.Grid, path []da.Position) {
	t.Helper()
	for i, pos := range path {
		c, ok := g.GetCellAt(pos)
		require.True(t, ok)
		assert.False(t, c.IsObstacle())
		if i > 0 {
			assert.Equal(t, 1, geo.CalculateManhattanDistance(path[i-1].X, path[i-1].Y, pos.X, pos.Y))
		}
	}
}

// bfsSteps number of steps of the shortest start-target route, -1 if unreachable.
func bfsSteps(g *da.Grid) int {
	dist := make(map[da.Index]int)
	dist[g.GetStart()] = 0
	queue := []da.Index{g.GetStart()}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == g.GetTarget() {
			return dist[u]
		}
		for _, v := range g.GetCell(u).GetNeighbours() {
			if _, seen := dist[v]; seen || g.GetCell(v).IsObstacle() {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}
	return -1
}
