package room

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"kierki-server/pkg/deck"
	"kierki-server/pkg/game"
	"kierki-server/pkg/wire"
)

// errGameOver ends a session that claimed a seat in the narrow window between
// the last worker's release and the table being marked ended
var errGameOver = errors.New("game over")

// session is the worker for one connection. A seat may be served by a
// succession of sessions as connections come and go; the session owns its
// seat's remaining hand while it holds the turn, and rebuilds it from the
// trick history when it takes over mid-deal.
type session struct {
	t    *Table
	c    *client
	seat game.Seat
	hand deck.Hand
	log  logrus.FieldLogger
}

// HandleConnection runs the protocol for one accepted connection and blocks
// until the connection is finished. Call it in its own goroutine.
func (t *Table) HandleConnection(conn net.Conn) {
	c := newClient(conn, t.timeout, t.audit)
	defer c.close()

	log := t.log.WithFields(logrus.Fields{
		"uuid":   c.uuid,
		"remote": c.remote,
	})

	line, err := c.readLine()
	if err != nil {
		log.WithError(err).Debug("client gone before seat claim")
		return
	}

	seat, err := wire.ParseIAM(line)
	if err != nil {
		log.WithError(err).Debug("bad seat claim")
		return
	}

	log = log.WithField("seat", seat.String())

	occupied, ok := t.seats.Claim(seat)
	if !ok {
		log.Debug("seat busy")
		_ = c.send(wire.Busy(occupied))
		return
	}

	log.Debug("seat claimed")

	// however the session ends, free the seat and wake the dealer so its
	// barrier can never deadlock on a vanished worker
	defer func() {
		t.seats.Release(seat)
		t.completion.signal()
	}()

	c.startPump()

	s := &session{t: t, c: c, seat: seat, log: log}
	if err := s.run(); err != nil {
		log.WithError(err).Debug("session ended")
		return
	}

	log.Debug("session complete")
}

func (s *session) run() error {
	for !s.t.seats.Ended() {
		if err := s.playDeal(); err != nil {
			return err
		}
	}

	return nil
}

// ch returns this seat's signal channel
func (s *session) ch() chan token {
	return s.t.seatCh[s.seat]
}

// playDeal runs one deal from this session's perspective: wait for the
// resume, send the deal (catching up on completed tricks if the deal is
// already underway), then follow the trick sequence to the score report.
func (s *session) playDeal() error {
	trickNo, err := s.waitForDeal()
	if err != nil {
		return err
	}

	for ; trickNo <= 13; trickNo++ {
		tok, err := s.trickToken(trickNo)
		if err != nil {
			return err
		}

		if tok == tokenTurn {
			if err := s.takeTurn(trickNo); err != nil {
				return err
			}

			// block until the rest of the trick plays out
			if _, err := s.trickToken(trickNo); err != nil {
				return err
			}
		} else {
			// a predecessor on this seat already played into this trick
			s.discardPlayed(trickNo)
		}

		if err := s.c.send(wire.Taken(trickNo, s.t.game.Trick(trickNo), s.t.game.TrickWinner(trickNo))); err != nil {
			return err
		}
	}

	if err := s.c.send(wire.Score(s.t.game.DealScore())); err != nil {
		return err
	}

	if err := s.c.send(wire.Total(s.t.game.TotalScore())); err != nil {
		return err
	}

	s.log.WithField("deal", s.t.game.DealNumber()).Debug("deal finished")

	// end-of-deal barrier: acknowledge, then absorb the pause that closes
	// the deal
	s.t.completion.signal()
	<-s.ch()

	return nil
}

// waitForDeal blocks until the dealer resumes the table, then sends DEAL and
// replays every completed trick so a reconnecting client catches up exactly.
// Returns the trick number the live sequence continues from.
//
// Anything found in the seat channel's backlog from before the resume is
// stale, with one exception: a turn token reposted by a predecessor that died
// holding the turn. That one is kept; leftover trick-taken tokens belong to
// tricks the replay already covers and are dropped.
func (s *session) waitForDeal() (int, error) {
	var inheritedTurn bool
wait:
	for {
		select {
		case tok := <-s.ch():
			switch tok {
			case tokenResume:
				break wait
			case tokenTurn:
				inheritedTurn = true
			default:
				// pauses and stale trick-taken tokens
			}
		case res := <-s.c.lines:
			if res.err != nil {
				return 0, res.err
			}

			if err := s.answerUnsolicited(res.text); err != nil {
				return 0, err
			}
		case <-s.t.gameOver:
			return 0, errGameOver
		}
	}

	if inheritedTurn {
		s.ch() <- tokenTurn
	}

	g := s.t.game
	s.hand = g.Hand(s.seat)
	if err := s.c.send(wire.Deal(g.DealNumber(), g.Leader(), s.hand)); err != nil {
		return 0, err
	}

	// a trick number of 14 means the deal already finished; the replay then
	// covers all thirteen tricks and the caller goes straight to the score
	// report
	trickNo := g.TrickNumber()

	for i := 1; i < trickNo; i++ {
		trick := g.Trick(i)
		if err := s.c.send(wire.Taken(i, trick, g.TrickWinner(i))); err != nil {
			return 0, err
		}

		for _, card := range trick {
			s.hand.Discard(card)
		}
	}

	s.log.WithFields(logrus.Fields{
		"deal":  g.DealNumber(),
		"trick": trickNo,
	}).Debug("deal sent")

	return trickNo, nil
}

// trickToken returns the next token that matters for the given trick: the
// turn, or a trick-taken once the trick state shows it really closed. Churn
// around a seat handover can leave a taken from an earlier trick in flight
// after the resume; trusting the token alone would close the current trick
// early with an empty record, so the trick count decides and stale takens are
// dropped.
func (s *session) trickToken(trickNo int) (token, error) {
	for {
		tok, err := s.waitForTurn()
		if err != nil {
			return 0, err
		}

		if tok == tokenTaken && s.t.game.TrickNumber() <= trickNo {
			continue
		}

		return tok, nil
	}
}

// waitForTurn blocks until the seat is signaled with its turn or the end of
// the current trick, tracking pause/resume along the way. Unsolicited TRICK
// messages get a WRONG; anything else from the client tears the session
// down.
func (s *session) waitForTurn() (token, error) {
	paused := false
	var pending *lineResult

	for {
		if !paused && pending != nil {
			res := *pending
			pending = nil
			if err := s.answerUnsolicited(res.text); err != nil {
				return 0, err
			}

			continue
		}

		lines := s.c.lines
		if pending != nil {
			lines = nil
		}

		select {
		case tok := <-s.ch():
			switch tok {
			case tokenPause:
				paused = true
			case tokenResume:
				paused = false
			default:
				return tok, nil
			}
		case res := <-lines:
			if res.err != nil {
				return 0, res.err
			}

			if paused {
				pending = &res
				continue
			}

			if err := s.answerUnsolicited(res.text); err != nil {
				return 0, err
			}
		}
	}
}

// answerUnsolicited handles client traffic that arrives when it is not the
// seat's turn: a TRICK-shaped line earns a WRONG, anything else is a
// protocol violation
func (s *session) answerUnsolicited(line string) error {
	if _, _, err := wire.ParseTrick(line); err == nil {
		return s.c.send(wire.Wrong(s.t.game.TrickNumber()))
	}

	return fmt.Errorf("%w: unexpected message: %q", wire.ErrProtocolViolation, line)
}

// takeTurn prompts for and records this seat's play. If the session dies
// before the play lands, the turn token is handed back through the seat
// channel so a replacement worker inherits it.
func (s *session) takeTurn(trickNo int) error {
	if err := s.promptAndPlay(trickNo); err != nil {
		s.ch() <- tokenTurn
		return err
	}

	return nil
}

func (s *session) promptAndPlay(trickNo int) error {
	trick := s.t.game.Trick(trickNo)
	if err := s.c.send(wire.Trick(trickNo, trick)); err != nil {
		return err
	}

	card, err := s.awaitValidCard(trickNo, trick)
	if err != nil {
		return err
	}

	s.hand.Discard(card)
	if s.t.game.Play(card) {
		s.t.completion.signal()
	} else {
		s.t.seatCh[s.seat.Next()] <- tokenTurn
	}

	return nil
}

// awaitValidCard waits for a legal card for the given trick. A timeout is a
// reminder, not a failure: the prompt is re-sent and the wait continues. An
// illegal or malformed answer earns a WRONG without consuming the turn or
// resetting the reminder clock.
func (s *session) awaitValidCard(trickNo int, trick []deck.Card) (deck.Card, error) {
	timer := time.NewTimer(s.t.timeout)
	defer timer.Stop()

	paused := false
	var pending *lineResult

	for {
		if !paused && pending != nil {
			res := *pending
			pending = nil
			card, ok, err := s.checkCard(trickNo, trick, res.text)
			if err != nil {
				return deck.Card{}, err
			}
			if ok {
				return card, nil
			}

			continue
		}

		lines := s.c.lines
		if pending != nil {
			lines = nil
		}

		reminder := timer.C
		if paused {
			reminder = nil
		}

		select {
		case tok := <-s.ch():
			switch tok {
			case tokenPause:
				paused = true
				stopTimer(timer)
			case tokenResume:
				paused = false
				timer.Reset(s.t.timeout)
			}
		case res := <-lines:
			if res.err != nil {
				return deck.Card{}, res.err
			}

			if paused {
				pending = &res
				continue
			}

			card, ok, err := s.checkCard(trickNo, trick, res.text)
			if err != nil {
				return deck.Card{}, err
			}
			if ok {
				return card, nil
			}
		case <-reminder:
			if err := s.c.send(wire.Trick(trickNo, trick)); err != nil {
				return deck.Card{}, err
			}

			timer.Reset(s.t.timeout)
		}
	}
}

// checkCard validates one answer to the trick prompt. ok is true when the
// card may be played; otherwise a WRONG was sent and the turn continues.
func (s *session) checkCard(trickNo int, trick []deck.Card, line string) (deck.Card, bool, error) {
	no, cards, err := wire.ParseTrick(line)
	if err != nil || len(cards) != 1 || no != trickNo || !game.LegalPlay(s.hand, trick, cards[0]) {
		if err := s.c.send(wire.Wrong(trickNo)); err != nil {
			return deck.Card{}, false, err
		}

		return deck.Card{}, false, nil
	}

	return cards[0], true, nil
}

// discardPlayed removes this seat's card from the hand copy after a trick it
// did not play live (the card was played by a predecessor on the seat)
func (s *session) discardPlayed(trickNo int) {
	for _, card := range s.t.game.Trick(trickNo) {
		s.hand.Discard(card)
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
