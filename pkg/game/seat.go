package game

import "fmt"

// Seat is one of the four fixed player positions at the table
type Seat int

// seats, in clockwise order
const (
	North Seat = iota
	East
	South
	West
)

// Seats lists the four seats in clockwise order
var Seats = [4]Seat{North, East, South, West}

// SeatFromLetter returns the seat for its wire letter (N, E, S or W)
func SeatFromLetter(b byte) (Seat, error) {
	switch b {
	case 'N':
		return North, nil
	case 'E':
		return East, nil
	case 'S':
		return South, nil
	case 'W':
		return West, nil
	}

	return 0, fmt.Errorf("not a valid seat: %q", b)
}

func (s Seat) String() string {
	switch s {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}

	panic("unknown seat")
}

// Next returns the next seat clockwise
func (s Seat) Next() Seat {
	return (s + 1) % 4
}
