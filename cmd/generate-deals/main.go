package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"kierki-server/internal/rng"
	"kierki-server/pkg/deck"
	"kierki-server/pkg/game"
)

var (
	deals = flag.Int("n", 7, "number of deals to generate (1-7)")
	seed  = flag.Int64("seed", 0, "base shuffle seed; 0 picks a random one")
)

// main writes a deal schedule to stdout: one deal per rule set, leaders
// rotating clockwise from north
func main() {
	flag.Parse()

	if *deals < 1 || *deals > 7 {
		logrus.Fatal("the deal count must be between 1 and 7")
	}

	base := *seed
	if base == 0 {
		var source rng.Generator = rng.Crypto{}
		base = source.Int63()
	}

	leader := game.North
	for i := 1; i <= *deals; i++ {
		d := deck.New()
		d.Shuffle(base ^ int64(i))

		var hands [4]deck.Hand
		seat := 0
		for d.CanDraw(1) {
			card, err := d.Draw()
			if err != nil {
				logrus.WithError(err).Fatal("could not draw")
			}

			hands[seat].AddCard(card)
			seat = (seat + 1) % 4
		}

		fmt.Fprintf(os.Stdout, "%d%s\n", i, leader)
		for _, hand := range hands {
			sort.Sort(hand)
			fmt.Fprintln(os.Stdout, deck.CardsToString(hand))
		}

		leader = leader.Next()
	}
}
