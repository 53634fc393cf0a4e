package room

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kierki-server/internal/auditlog"
	"kierki-server/pkg/game"
)

// playOutTrick completes the current trick by playing the first legal card
// for each seat in turn
func playOutTrick(t *testing.T, g *game.Game) {
	t.Helper()

	no := g.TrickNumber()
	for len(g.Trick(no)) < 4 {
		seat := g.Active()
		hand := g.Hand(seat)
		trick := g.Trick(no)

		played := false
		for _, card := range hand {
			if game.LegalPlay(hand, trick, card) {
				g.Play(card)
				played = true
				break
			}
		}

		if !played {
			t.Fatalf("seat %s has no legal play", seat)
		}
	}
}

func TestSession_staleTrickTakenDropped(t *testing.T) {
	a := assert.New(t)

	tbl := NewTable(testSchedule(t, 1), time.Second, auditlog.New())
	tbl.game.StartDeal(tbl.schedule[0])
	playOutTrick(t, tbl.game)
	a.Equal(2, tbl.game.TrickNumber())

	server, remote := net.Pipe()
	defer server.Close()
	defer remote.Close()

	s := &session{
		t:    tbl,
		c:    newClient(server, time.Second, auditlog.New()),
		seat: game.North,
		log:  tbl.log,
	}

	// a taken left over from the first trick's churn must not close the
	// second trick; the turn behind it is what counts
	tbl.seatCh[game.North] <- tokenTaken
	tbl.seatCh[game.North] <- tokenTurn

	tok, err := s.trickToken(2)
	a.NoError(err)
	a.Equal(tokenTurn, tok)

	// the same token does close the trick it belongs to
	tbl.seatCh[game.North] <- tokenTaken
	tok, err = s.trickToken(1)
	a.NoError(err)
	a.Equal(tokenTaken, tok)
}
