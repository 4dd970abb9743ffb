package routing

import (
	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/util"
)

/*
AStar. best-first search on the 4-connected grid, priority = localGoal + euclidean heuristic.

the open set is a min-heap with lazy deletion: a cell is pushed again every time its localGoal improves,
and entries of already visited cells are skipped when popped. equal priorities are popped in insertion
order, so the returned path is deterministic.

not safe for concurrent use, the search writes the grid's working state.
*/
type AStar struct {
	grid   *da.Grid
	metric Metric

	pq *da.MinHeap[da.Index]

	numSettledCells int
}

func NewAStar(grid *da.Grid, metric Metric) *AStar {
	pq := da.NewFourAryHeap[da.Index]()
	pq.Preallocate(grid.NumberOfCells())
	return &AStar{
		grid:   grid,
		metric: metric,
		pq:     pq,
	}
}

// FindPath reset the working state, run A* from start to target and return the path cells (start first).
// empty path if the target is unreachable.
func (as *AStar) FindPath() []da.Position {
	g := as.grid
	g.ResetWorkingState()
	as.pq.Clear()
	as.numSettledCells = 0

	s := g.GetStart()
	t := g.GetTarget()
	targetPos := g.GetTargetPos()

	start := g.GetCell(s)
	start.SetLocalGoal(0)
	start.SetGlobalGoal(as.metric.GetHeuristic(start.GetPosition(), targetPos))
	as.pq.Insert(da.NewPriorityQueueNode(start.GetGlobalGoal(), s))

	for !as.pq.IsEmpty() {
		queryKey, _ := as.pq.ExtractMin()
		uId := queryKey.GetItem()
		u := g.GetCell(uId)
		if u.IsVisited() {
			// stale duplicate, u was settled through a cheaper entry
			continue
		}

		u.SetVisited(true)
		as.numSettledCells++

		if uId == t {
			break
		}

		for _, vId := range u.GetNeighbours() {
			v := g.GetCell(vId)
			if v.IsVisited() || v.IsObstacle() {
				continue
			}

			newLocalGoal := u.GetLocalGoal() + as.metric.GetWeight(u.GetPosition(), v.GetPosition())
			if newLocalGoal >= v.GetLocalGoal() {
				// v already has an entry with this or a better priority
				continue
			}

			v.SetParent(uId)
			v.SetLocalGoal(newLocalGoal)
			v.SetGlobalGoal(newLocalGoal + as.metric.GetHeuristic(v.GetPosition(), targetPos))
			as.pq.Insert(da.NewPriorityQueueNode(v.GetGlobalGoal(), vId))
		}
	}

	return as.reconstructPath(s, t)
}

// ShortestPath same as FindPath, with the path cost & search stats.
func (as *AStar) ShortestPath() *Route {
	path := as.FindPath()
	cost := 0.0
	if len(path) > 0 {
		cost = as.grid.GetCell(as.grid.GetTarget()).GetLocalGoal()
	}
	return NewRoute(path, cost, as.numSettledCells)
}

func (as *AStar) GetNumSettledCells() int {
	return as.numSettledCells
}

func (as *AStar) reconstructPath(s, t da.Index) []da.Position {
	g := as.grid
	if !g.GetCell(t).IsVisited() {
		return []da.Position{}
	}

	path := make([]da.Position, 0)
	cur := t
	for cur != s {
		c := g.GetCell(cur)
		path = append(path, c.GetPosition())
		cur = c.GetParent()
	}
	path = append(path, g.GetCell(s).GetPosition())

	return util.ReverseG(path)
}
