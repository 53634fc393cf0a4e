package game

import (
	"sync"

	"kierki-server/pkg/deck"
)

// tricksPerDeal is the number of tricks in a complete deal
const tricksPerDeal = 13

// Game holds the shared state of one deal plus the session score totals.
// All accessors take copies under the lock; Play is the only mutator during
// a deal and callers serialize it through the turn handoff.
type Game struct {
	mu sync.Mutex

	dealNo   int
	leader   Seat
	hands    [4]deck.Hand
	tricks   [tricksPerDeal][]deck.Card
	winners  [tricksPerDeal]Seat
	trickIdx int
	active   Seat

	dealScore  [4]int
	totalScore [4]int
}

// New returns a Game with no deal in progress
func New() *Game {
	return &Game{}
}

// StartDeal installs a new deal, resetting the tricks and the per-deal score.
// The hands are the original 13-card deals and are not mutated by Play; each
// session tracks its seat's remaining cards against the trick history.
func (g *Game) StartDeal(rec DealRecord) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.dealNo = rec.Number
	g.leader = rec.Leader
	g.active = rec.Leader
	for i, hand := range rec.Hands {
		g.hands[i] = hand.Clone()
	}
	g.tricks = [tricksPerDeal][]deck.Card{}
	g.winners = [tricksPerDeal]Seat{}
	g.trickIdx = 0
	g.dealScore = [4]int{}
}

// DealNumber returns the current deal number (1-7)
func (g *Game) DealNumber() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dealNo
}

// Leader returns the seat that leads the first trick of the deal
func (g *Game) Leader() Seat {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.leader
}

// Active returns the seat holding the next play
func (g *Game) Active() Seat {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// TrickNumber returns the 1-based number of the trick currently being played.
// After the 13th trick resolves it returns 14.
func (g *Game) TrickNumber() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.trickIdx + 1
}

// Hand returns the original 13 cards dealt to the seat
func (g *Game) Hand(seat Seat) deck.Hand {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hands[seat].Clone()
}

// Trick returns the cards played so far in the given trick (1-based)
func (g *Game) Trick(no int) []deck.Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]deck.Card{}, g.tricks[no-1]...)
}

// TrickWinner returns the winner of a completed trick (1-based)
func (g *Game) TrickWinner(no int) Seat {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winners[no-1]
}

// Play appends a card to the current trick on behalf of the active seat and
// advances the turn. When the fourth card lands, the trick is resolved: the
// winner is scored, leads the next trick, and after the 13th trick the deal
// score folds into the session totals. Returns true if the play completed a
// trick.
func (g *Game) Play(card deck.Card) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	trick := append(g.tricks[g.trickIdx], card)
	g.tricks[g.trickIdx] = trick
	if len(trick) < 4 {
		g.active = g.active.Next()
		return false
	}

	// the trick leader is four plays back, which is the same seat
	winner := TrickWinner(g.active.Next(), trick)
	g.winners[g.trickIdx] = winner
	g.dealScore[winner] += Points(g.dealNo, g.trickIdx+1, trick)
	g.active = winner
	g.trickIdx++

	if g.trickIdx == tricksPerDeal {
		for seat, points := range g.dealScore {
			g.totalScore[seat] += points
		}
	}

	return true
}

// DealScore returns the per-deal score, indexed by seat
func (g *Game) DealScore() [4]int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dealScore
}

// TotalScore returns the session-cumulative score, indexed by seat
func (g *Game) TotalScore() [4]int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.totalScore
}

// LegalPlay reports whether the card may be played from the hand onto the
// trick: the card must be held, and if the hand holds any card of the led
// suit, the card must follow it.
func LegalPlay(hand deck.Hand, trick []deck.Card, card deck.Card) bool {
	if !hand.HasCard(card) {
		return false
	}

	if len(trick) == 0 || trick[0].Suit == card.Suit {
		return true
	}

	return !hand.HasSuit(trick[0].Suit)
}

// Snapshot is a point-in-time view of the game, safe to show to observers
type Snapshot struct {
	DealNumber  int      `json:"dealNumber"`
	Leader      string   `json:"leader"`
	Active      string   `json:"active"`
	TrickNumber int      `json:"trickNumber"`
	Trick       string   `json:"trick"`
	DealScore   [4]int   `json:"dealScore"`
	TotalScore  [4]int   `json:"totalScore"`
	Winners     []string `json:"winners"`
}

// Snapshot returns a copy of the observable game state
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	winners := make([]string, 0, g.trickIdx)
	for i := 0; i < g.trickIdx && i < tricksPerDeal; i++ {
		winners = append(winners, g.winners[i].String())
	}

	trickIdx := g.trickIdx
	if trickIdx >= tricksPerDeal {
		trickIdx = tricksPerDeal - 1
	}

	return Snapshot{
		DealNumber:  g.dealNo,
		Leader:      g.leader.String(),
		Active:      g.active.String(),
		TrickNumber: g.trickIdx + 1,
		Trick:       deck.CardsToString(g.tricks[trickIdx]),
		DealScore:   g.dealScore,
		TotalScore:  g.totalScore,
		Winners:     winners,
	}
}
