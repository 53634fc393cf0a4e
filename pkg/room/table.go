package room

import (
	"time"

	"github.com/sirupsen/logrus"

	"kierki-server/internal/auditlog"
	"kierki-server/internal/util"
	"kierki-server/pkg/game"
)

// Table owns everything shared by one game: the game state, the seat
// tracker, the per-seat signal channels and the completion semaphore. It is
// passed by reference to the dealer flow and to every session worker; there
// are no package-level singletons.
type Table struct {
	name     string
	game     *game.Game
	seats    *SeatOccupancy
	schedule []game.DealRecord
	timeout  time.Duration
	audit    *auditlog.Log

	seatCh     [4]chan token
	completion semaphore

	// gameOver is closed when the schedule is exhausted, telling the accept
	// loop to stop; done is closed once every seat's final worker has checked
	// out
	gameOver chan struct{}
	done     chan struct{}

	log logrus.FieldLogger
}

// NewTable creates a table for the given deal schedule. The timeout governs
// the seat-claim read, writes, and the your-turn reminder interval.
func NewTable(schedule []game.DealRecord, timeout time.Duration, audit *auditlog.Log) *Table {
	t := &Table{
		name:       util.GetRandomName(),
		game:       game.New(),
		seats:      NewSeatOccupancy(),
		schedule:   schedule,
		timeout:    timeout,
		audit:      audit,
		completion: newSemaphore(),
		gameOver:   make(chan struct{}),
		done:       make(chan struct{}),
	}

	for i := range t.seatCh {
		t.seatCh[i] = make(chan token, seatBacklog)
	}

	t.log = logrus.WithField("table", t.name)
	return t
}

// Game returns the shared game state
func (t *Table) Game() *game.Game {
	return t.game
}

// Seats returns the seat occupancy tracker
func (t *Table) Seats() *SeatOccupancy {
	return t.seats
}

// GameOver is closed once the deal schedule is exhausted
func (t *Table) GameOver() <-chan struct{} {
	return t.gameOver
}

// Done is closed once the game is over and all four seats have checked out
func (t *Table) Done() <-chan struct{} {
	return t.done
}

func (t *Table) broadcast(tok token) {
	for _, ch := range t.seatCh {
		ch <- tok
	}
}

// Status is a point-in-time view of the table for the status API
type Status struct {
	Name     string        `json:"name"`
	Occupied []string      `json:"occupied"`
	Ended    bool          `json:"ended"`
	Deals    int           `json:"deals"`
	Game     game.Snapshot `json:"game"`
}

// Status returns the current table status
func (t *Table) Status() Status {
	occupied := t.seats.Occupied()
	names := make([]string, len(occupied))
	for i, seat := range occupied {
		names[i] = seat.String()
	}

	return Status{
		Name:     t.name,
		Occupied: names,
		Ended:    t.seats.Ended(),
		Deals:    len(t.schedule),
		Game:     t.game.Snapshot(),
	}
}
