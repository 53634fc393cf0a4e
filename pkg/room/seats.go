package room

import (
	"sync"

	"kierki-server/pkg/game"
)

// SeatOccupancy tracks which seats currently have a live connection, plus a
// one-shot "ended" flag set when the deal schedule is exhausted
type SeatOccupancy struct {
	mu     sync.Mutex
	cond   *sync.Cond
	active [4]bool
	ended  bool
}

// NewSeatOccupancy returns an empty occupancy tracker
func NewSeatOccupancy() *SeatOccupancy {
	o := &SeatOccupancy{}
	o.cond = sync.NewCond(&o.mu)
	return o
}

// Claim attempts to claim the seat for a new connection. On failure it
// returns the seats to report in the BUSY reply: the currently occupied ones,
// or all four once the game has ended.
func (o *SeatOccupancy) Claim(seat game.Seat) ([]game.Seat, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ended {
		return append([]game.Seat{}, game.Seats[:]...), false
	}

	if o.active[seat] {
		return o.occupiedLocked(), false
	}

	o.active[seat] = true
	o.cond.Broadcast()
	return nil, true
}

// Release clears the seat. Releasing a vacant seat is a no-op.
func (o *SeatOccupancy) Release(seat game.Seat) {
	o.mu.Lock()
	o.active[seat] = false
	o.cond.Broadcast()
	o.mu.Unlock()
}

// AllPresent returns true if all four seats are occupied
func (o *SeatOccupancy) AllPresent() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.allLocked()
}

// WaitForAll blocks until all four seats are occupied
func (o *SeatOccupancy) WaitForAll() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for !o.allLocked() {
		o.cond.Wait()
	}
}

// WaitForNone blocks until every seat has been released
func (o *SeatOccupancy) WaitForNone() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for o.anyLocked() {
		o.cond.Wait()
	}
}

// Occupied returns the occupied seats in N, E, S, W order
func (o *SeatOccupancy) Occupied() []game.Seat {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.occupiedLocked()
}

// MarkEnded irreversibly ends the game; all future claims report BUSY with
// every seat
func (o *SeatOccupancy) MarkEnded() {
	o.mu.Lock()
	o.ended = true
	o.mu.Unlock()
}

// Ended returns true once the game is over
func (o *SeatOccupancy) Ended() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ended
}

func (o *SeatOccupancy) anyLocked() bool {
	for _, a := range o.active {
		if a {
			return true
		}
	}

	return false
}

func (o *SeatOccupancy) allLocked() bool {
	for _, a := range o.active {
		if !a {
			return false
		}
	}

	return true
}

func (o *SeatOccupancy) occupiedLocked() []game.Seat {
	seats := make([]game.Seat, 0, 4)
	for _, seat := range game.Seats {
		if o.active[seat] {
			seats = append(seats, seat)
		}
	}

	return seats
}
