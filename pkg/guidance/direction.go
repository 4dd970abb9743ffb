package guidance

import (
	"fmt"

	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
)

const (
	U_TURN     = -8
	TURN_LEFT  = -2
	CONTINUE   = 0
	TURN_RIGHT = 2
	FINISH     = 4
	START      = 101
)

type Heading string

const (
	NORTH Heading = "north"
	EAST  Heading = "east"
	SOUTH Heading = "south"
	WEST  Heading = "west"
)

// Direction one leg of a path: every cell between From and To is walked in the same heading.
type Direction struct {
	TurnSign    int         `json:"turn_sign"`
	TurnType    string      `json:"turn_type"`
	Heading     Heading     `json:"heading,omitempty"`
	From        da.Position `json:"from"`
	To          da.Position `json:"to"`
	Cells       int         `json:"cells"`
	Description string      `json:"description"`
}

type DirectionBuilder struct {
	directions  []Direction
	prevHeading Heading
	prevDx      int
	prevDy      int
}

func NewDirectionBuilder() *DirectionBuilder {
	return &DirectionBuilder{
		directions: make([]Direction, 0),
	}
}

// GetDirections group the unit moves of path into legs. path must be contiguous (each step one cell).
func (db *DirectionBuilder) GetDirections(path []da.Position) []Direction {
	db.directions = db.directions[:0]
	if len(path) == 0 {
		return []Direction{}
	}

	for i := 1; i < len(path); i++ {
		db.buildInstruction(path[i-1], path[i])
	}
	db.buildFinalInstruction(path[len(path)-1])

	directions := make([]Direction, len(db.directions))
	copy(directions, db.directions)
	for i := range directions {
		directions[i].Description = describe(directions[i])
	}
	return directions
}

func (db *DirectionBuilder) buildInstruction(from, to da.Position) {
	dx, dy := to.X-from.X, to.Y-from.Y
	heading := headingOf(dx, dy)

	if len(db.directions) > 0 && heading == db.prevHeading {
		last := &db.directions[len(db.directions)-1]
		last.To = to
		last.Cells++
		return
	}

	sign := START
	if len(db.directions) > 0 {
		sign = getTurnDirection(db.prevDx, db.prevDy, dx, dy)
	}
	db.directions = append(db.directions, Direction{
		TurnSign: sign,
		TurnType: turnType(sign),
		Heading:  heading,
		From:     from,
		To:       to,
		Cells:    1,
	})
	db.prevHeading, db.prevDx, db.prevDy = heading, dx, dy
}

func (db *DirectionBuilder) buildFinalInstruction(target da.Position) {
	db.directions = append(db.directions, Direction{
		TurnSign: FINISH,
		TurnType: turnType(FINISH),
		From:     target,
		To:       target,
	})
}

// screen orientation: y grows downwards, so north is dy < 0.
func headingOf(dx, dy int) Heading {
	switch {
	case dx > 0:
		return EAST
	case dx < 0:
		return WEST
	case dy > 0:
		return SOUTH
	default:
		return NORTH
	}
}

/*
getTurnDirection turn between two consecutive moves.
with y down the sign of the cross product is flipped compared to the usual math orientation:
cross > 0 is a clockwise (right) turn on screen.
*/
func getTurnDirection(prevDx, prevDy, dx, dy int) int {
	cross := prevDx*dy - prevDy*dx
	dot := prevDx*dx + prevDy*dy
	switch {
	case cross > 0:
		return TURN_RIGHT
	case cross < 0:
		return TURN_LEFT
	case dot < 0:
		return U_TURN
	default:
		return CONTINUE
	}
}

func turnType(sign int) string {
	switch sign {
	case START:
		return "start"
	case TURN_LEFT:
		return "turn_left"
	case TURN_RIGHT:
		return "turn_right"
	case U_TURN:
		return "u_turn"
	case FINISH:
		return "finish"
	default:
		return "continue"
	}
}

func describe(d Direction) string {
	cells := "cells"
	if d.Cells == 1 {
		cells = "cell"
	}
	switch d.TurnSign {
	case START:
		return fmt.Sprintf("head %s for %d %s", d.Heading, d.Cells, cells)
	case TURN_LEFT:
		return fmt.Sprintf("turn left and head %s for %d %s", d.Heading, d.Cells, cells)
	case TURN_RIGHT:
		return fmt.Sprintf("turn right and head %s for %d %s", d.Heading, d.Cells, cells)
	case U_TURN:
		return fmt.Sprintf("turn around and head %s for %d %s", d.Heading, d.Cells, cells)
	case FINISH:
		return "arrive at target"
	default:
		return fmt.Sprintf("continue %s for %d %s", d.Heading, d.Cells, cells)
	}
}
