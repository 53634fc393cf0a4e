package game

import "kierki-server/pkg/deck"

// Points returns the score awarded to the winner of a trick.
// The rules are keyed by the deal number and combine additively; deal 7 plays
// every rule at once.
func Points(dealNo, trickNo int, trick []deck.Card) int {
	points := 0

	if dealNo == 1 || dealNo == 7 {
		points++
	}

	for _, c := range trick {
		if (dealNo == 2 || dealNo == 7) && c.Suit == deck.Hearts {
			points++
		}

		if (dealNo == 3 || dealNo == 7) && c.Rank == deck.Queen {
			points += 5
		}

		if (dealNo == 4 || dealNo == 7) && (c.Rank == deck.Jack || c.Rank == deck.King) {
			points += 2
		}

		if (dealNo == 5 || dealNo == 7) && c.Rank == deck.King && c.Suit == deck.Hearts {
			points += 18
		}
	}

	if (dealNo == 6 || dealNo == 7) && (trickNo == 7 || trickNo == 13) {
		points += 10
	}

	return points
}

// TrickWinner returns the seat that wins a completed trick. The leader's card
// sets the led suit; the highest card of the led suit wins.
func TrickWinner(leader Seat, trick []deck.Card) Seat {
	if len(trick) != 4 {
		panic("trick winner requires exactly four plays")
	}

	highest := trick[0]
	winner := leader
	seat := leader
	for _, c := range trick[1:] {
		seat = seat.Next()
		if c.Beats(highest) {
			highest = c
			winner = seat
		}
	}

	return winner
}
