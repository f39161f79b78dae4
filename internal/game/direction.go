package game

import "fmt"

// Direction is one of the four fixed table seats. The constant order is the
// clockwise ring order, so ring arithmetic is modular.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all seats in ring order.
var Directions = [4]Direction{North, East, South, West}

// SeatOrder is the order in which joining users fill seats: the first user
// takes NORTH, the second takes the partner seat SOUTH, then EAST, then WEST.
var SeatOrder = [4]Direction{North, South, East, West}

// Valid reports whether d is inside the 4-seat domain.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	switch d {
	case North:
		return "NORTH"
	case East:
		return "EAST"
	case South:
		return "SOUTH"
	case West:
		return "WEST"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts the persisted enum form back to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "NORTH":
		return North, nil
	case "EAST":
		return East, nil
	case "SOUTH":
		return South, nil
	case "WEST":
		return West, nil
	}
	return 0, fmt.Errorf("parse direction %q: %w", s, ErrInvalidDirection)
}

// NextClockwise returns the seat to d's left. Total over the 4-seat domain;
// the error is defensive and unreachable through normal construction.
func NextClockwise(d Direction) (Direction, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("next clockwise from %d: %w", int(d), ErrInvalidDirection)
	}
	return (d + 1) % 4, nil
}

// Partner returns the seat across the table: NORTH<->SOUTH, EAST<->WEST.
func Partner(d Direction) (Direction, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("partner of %d: %w", int(d), ErrInvalidDirection)
	}
	return (d + 2) % 4, nil
}

// Team identifies a partnership: 0 = North-South, 1 = East-West.
type Team int

const (
	TeamNS Team = 0
	TeamEW Team = 1
)

func (t Team) String() string {
	if t == TeamNS {
		return "NS"
	}
	return "EW"
}

// TeamOf maps a seat to its partnership.
func TeamOf(d Direction) Team {
	if d == North || d == South {
		return TeamNS
	}
	return TeamEW
}
