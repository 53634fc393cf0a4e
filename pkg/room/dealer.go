package room

import "github.com/sirupsen/logrus"

// StartShift launches the dealer run loop, the single game-master flow for
// the table
func (t *Table) StartShift() {
	go t.runLoop()
}

// runLoop drives the deal schedule: wait for four seats, run 13 tricks, hold
// the end-of-deal barrier, repeat. Trick/score state is only mutated by the
// workers through Game.Play; the dealer observes it and moves the signals
// along.
func (t *Table) runLoop() {
	t.log.Debug("dealer starting shift")

	// every seat starts paused
	t.broadcast(tokenPause)

	for i, rec := range t.schedule {
		log := t.log.WithFields(logrus.Fields{
			"deal":   rec.Number,
			"leader": rec.Leader.String(),
		})

		t.game.StartDeal(rec)

		log.Debug("waiting for all four seats")
		t.seats.WaitForAll()
		t.completion.drain()
		t.broadcast(tokenResume)
		log.Debug("deal started")

		for trick := 1; trick <= 13; {
			t.seatCh[t.game.Active()] <- tokenTurn
			trick = t.awaitTrick(trick, log)
		}

		// no worker may enter the next deal before all four have finished
		// scoring this one
		t.completion.barrier(4)

		if i == len(t.schedule)-1 {
			t.seats.MarkEnded()
		}

		t.broadcast(tokenPause)
		log.WithField("score", t.game.DealScore()).Info("deal complete")
	}

	t.log.WithField("total", t.game.TotalScore()).Info("deal schedule exhausted, game over")
	close(t.gameOver)

	// wait on the occupancy itself rather than counting checkout signals: a
	// seat that dropped between its last play and its end-of-deal
	// acknowledgment had its one departure signal consumed by the deal
	// barrier above, and there is no way to reclaim a seat once the game has
	// ended
	t.seats.WaitForNone()
	close(t.done)
}

// awaitTrick blocks until the given trick completes, absorbing seat churn.
// A completion signal means either "trick done" or "a seat dropped"; the two
// are indistinguishable on the semaphore, so occupancy and the trick state
// are re-checked on every wake before moving on.
func (t *Table) awaitTrick(trick int, log logrus.FieldLogger) int {
	for {
		t.completion.wait()

		// announce the result as soon as the trick closes, even if a seat
		// dropped in the same instant; any pause can follow on the next wake
		if t.game.TrickNumber() > trick {
			t.broadcast(tokenTaken)
			return trick + 1
		}

		// not a completed trick, so a seat dropped. Pause unconditionally,
		// even if the seat was already refilled: the replacement worker is
		// waiting on the resume to deal itself back in.
		log.WithField("trick", trick).Debug("seat dropped, pausing the table")
		t.broadcast(tokenPause)
		t.seats.WaitForAll()
		t.completion.drain()
		t.broadcast(tokenResume)
		log.WithField("trick", trick).Debug("all seats back, resuming")

		// the trick may have completed just as the seat dropped; its signal
		// was consumed or drained above, so check the state directly
		if t.game.TrickNumber() > trick {
			t.broadcast(tokenTaken)
			return trick + 1
		}
	}
}
