package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kierki-server/pkg/game"
)

func TestSeatOccupancy_Claim(t *testing.T) {
	a := assert.New(t)

	o := NewSeatOccupancy()
	busy, ok := o.Claim(game.North)
	a.True(ok)
	a.Nil(busy)

	busy, ok = o.Claim(game.North)
	a.False(ok)
	a.Equal([]game.Seat{game.North}, busy)

	_, ok = o.Claim(game.South)
	a.True(ok)
	a.Equal([]game.Seat{game.North, game.South}, o.Occupied())

	o.Release(game.North)
	a.Equal([]game.Seat{game.South}, o.Occupied())

	// releasing a vacant seat is a no-op
	o.Release(game.North)

	_, ok = o.Claim(game.North)
	a.True(ok)
}

func TestSeatOccupancy_Ended(t *testing.T) {
	a := assert.New(t)

	o := NewSeatOccupancy()
	a.False(o.Ended())

	o.MarkEnded()
	a.True(o.Ended())

	busy, ok := o.Claim(game.East)
	a.False(ok)
	a.Equal([]game.Seat{game.North, game.East, game.South, game.West}, busy)
}

func TestSeatOccupancy_WaitForAll(t *testing.T) {
	a := assert.New(t)

	o := NewSeatOccupancy()
	done := make(chan struct{})
	go func() {
		o.WaitForAll()
		close(done)
	}()

	for _, seat := range game.Seats[:3] {
		_, ok := o.Claim(seat)
		a.True(ok)
	}

	select {
	case <-done:
		t.Fatal("WaitForAll returned with a vacant seat")
	case <-time.After(25 * time.Millisecond):
	}

	a.False(o.AllPresent())

	_, ok := o.Claim(game.West)
	a.True(ok)
	a.True(o.AllPresent())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForAll did not return")
	}
}

func TestSeatOccupancy_WaitForNone(t *testing.T) {
	a := assert.New(t)

	o := NewSeatOccupancy()
	for _, seat := range game.Seats[:2] {
		_, ok := o.Claim(seat)
		a.True(ok)
	}

	done := make(chan struct{})
	go func() {
		o.WaitForNone()
		close(done)
	}()

	o.Release(game.North)

	select {
	case <-done:
		t.Fatal("WaitForNone returned with a seat occupied")
	case <-time.After(25 * time.Millisecond):
	}

	o.Release(game.East)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForNone did not return")
	}
}
