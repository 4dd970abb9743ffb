package usecases

import (
	"errors"
	"sync"
	"testing"

	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine"
	"github.com/lintang-b-s/navigatorx-grid/pkg/geo"
	"github.com/lintang-b-s/navigatorx-grid/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *GridService {
	t.Helper()
	e, err := engine.NewEngine(10, 10, 0, 8, nil, zap.NewNop())
	require.NoError(t, err)
	v, err := geo.NewViewport(800, 80, 10, 10)
	require.NoError(t, err)
	return NewGridService(zap.NewNop(), e, v)
}

func TestApplyPointer(t *testing.T) {
	testCases := []struct {
		name        string
		action      string
		px, py      float64
		wantChanged bool
		wantErr     bool
		check       func(t *testing.T, snap engine.GridSnapshot)
	}{
		{
			name:        "toggle obstacle at cell (1,0)",
			action:      "toggle_obstacle",
			px:          150,
			py:          100,
			wantChanged: true,
			check: func(t *testing.T, snap engine.GridSnapshot) {
				assert.Equal(t, []da.Position{da.NewPosition(1, 0)}, snap.Obstacles)
			},
		},
		{
			name:        "set start at cell (2,3)",
			action:      "set_start",
			px:          80 + 2*64 + 10,
			py:          80 + 3*64 + 10,
			wantChanged: true,
			check: func(t *testing.T, snap engine.GridSnapshot) {
				assert.Equal(t, da.NewPosition(2, 3), snap.Start)
			},
		},
		{
			name:        "set target at cell (5,5)",
			action:      "set_target",
			px:          80 + 5*64,
			py:          80 + 5*64,
			wantChanged: true,
			check: func(t *testing.T, snap engine.GridSnapshot) {
				assert.Equal(t, da.NewPosition(5, 5), snap.Target)
			},
		},
		{
			name:   "pointer on the frame is ignored",
			action: "toggle_obstacle",
			px:     10,
			py:     10,
			check: func(t *testing.T, snap engine.GridSnapshot) {
				assert.Empty(t, snap.Obstacles)
				assert.Equal(t, uint64(0), snap.Revision)
			},
		},
		{
			name:    "unknown action",
			action:  "erase",
			px:      100,
			py:      100,
			wantErr: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			gs := newTestService(t)
			result, err := gs.ApplyPointer(tt.action, tt.px, tt.py)
			if tt.wantErr {
				var e *util.Error
				require.True(t, errors.As(err, &e))
				assert.Equal(t, util.ErrBadParamInput, e.Code())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, result.Changed)
			tt.check(t, result.Grid)
			assert.Equal(t, gs.GetGrid(), result.Grid)

			require.True(t, result.Route.IsFound())
			assert.Equal(t, result.Grid.Start, result.Route.GetPath()[0])
			assert.Equal(t, result.Grid.Target, result.Route.GetPath()[len(result.Route.GetPath())-1])
			assert.NotEmpty(t, result.Polyline)
			assert.NotEmpty(t, result.Directions)
		})
	}
}

func TestShortestPathPolyline(t *testing.T) {
	gs := newTestService(t)
	gs.SetTarget(2, 0)

	route, encoded, directions := gs.ShortestPath()
	require.True(t, route.IsFound())
	require.Len(t, route.GetPath(), 3)
	require.Len(t, directions, 2)
	assert.Equal(t, "head east for 2 cells", directions[0].Description)

	points, err := geo.PointsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, 112.0, points[0].X, 1e-5)
	assert.InDelta(t, 112.0, points[0].Y, 1e-5)
	assert.InDelta(t, 240.0, points[2].X, 1e-5)

	// row 0 from x=2 on is cut off
	for x := 1; x < 10; x++ {
		gs.ToggleObstacle(x, 1)
	}
	gs.ToggleObstacle(1, 0)
	route, encoded, directions = gs.ShortestPath()
	assert.False(t, route.IsFound())
	assert.Empty(t, encoded)
	assert.Empty(t, directions)
}

func TestResetObstacles(t *testing.T) {
	gs := newTestService(t)
	gs.ToggleObstacle(3, 3)
	gs.ToggleObstacle(4, 4)

	removed, snap := gs.ResetObstacles()
	assert.Equal(t, 2, removed)
	assert.Empty(t, snap.Obstacles)
	assert.Equal(t, uint64(3), snap.Revision)

	removed, snap = gs.ResetObstacles()
	assert.Equal(t, 0, removed)
	assert.Equal(t, uint64(3), snap.Revision)
}

func TestApplyPointerAnswersAreConsistent(t *testing.T) {
	gs := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				x, y := (i*3+j)%10, (i+j*7)%10
				result, err := gs.ApplyPointer(string(TOGGLE_OBSTACLE), float64(80+x*64+32), float64(80+y*64+32))
				if !assert.NoError(t, err) {
					return
				}

				obstacles := make(map[da.Position]bool, len(result.Grid.Obstacles))
				for _, o := range result.Grid.Obstacles {
					obstacles[o] = true
				}
				for _, cell := range result.Route.GetPath() {
					if obstacles[cell] {
						t.Errorf("route crosses obstacle %v listed in the same answer (revision %d)", cell, result.Grid.Revision)
						return
					}
				}
				for _, cell := range result.Grid.Visited {
					if obstacles[cell] {
						t.Errorf("obstacle %v reported as visited (revision %d)", cell, result.Grid.Revision)
						return
					}
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestCellMutationReturnsSnapshotOfThatMutation(t *testing.T) {
	gs := newTestService(t)
	gs.ShortestPath()

	changed, snap := gs.ToggleObstacle(1, 0)
	assert.True(t, changed)
	assert.Equal(t, []da.Position{da.NewPosition(1, 0)}, snap.Obstacles)
	assert.Empty(t, snap.Visited, "visited cells belong to the search before the edit")

	changed, snap = gs.SetStart(1, 0)
	assert.True(t, changed)
	assert.Equal(t, da.NewPosition(1, 0), snap.Start)
	assert.Empty(t, snap.Obstacles)

	changed, snap = gs.SetTarget(20, 20)
	assert.False(t, changed)
	assert.Equal(t, uint64(2), snap.Revision)
}
