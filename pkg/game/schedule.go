package game

import (
	"bufio"
	"fmt"
	"io"

	"kierki-server/pkg/deck"
)

// DealRecord is one entry of the deal schedule: the deal number (which keys
// the scoring rules), the seat leading the first trick, and the four hands
// in seat order N, E, S, W
type DealRecord struct {
	Number int
	Leader Seat
	Hands  [4]deck.Hand
}

// ParseSchedule reads a deal schedule: per deal, a header line
// <dealNo><leaderSeat> followed by four lines of 13 concatenated cards
func ParseSchedule(r io.Reader) ([]DealRecord, error) {
	scanner := bufio.NewScanner(r)
	var deals []DealRecord

	for scanner.Scan() {
		header := scanner.Text()
		if header == "" {
			continue
		}

		rec, err := parseDeal(scanner, header)
		if err != nil {
			return nil, fmt.Errorf("deal %d: %w", len(deals)+1, err)
		}

		deals = append(deals, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(deals) == 0 {
		return nil, fmt.Errorf("schedule contains no deals")
	}

	return deals, nil
}

func parseDeal(scanner *bufio.Scanner, header string) (DealRecord, error) {
	if len(header) != 2 {
		return DealRecord{}, fmt.Errorf("bad header line: %q", header)
	}

	number := int(header[0] - '0')
	if number < 1 || number > 7 {
		return DealRecord{}, fmt.Errorf("bad deal number in %q", header)
	}

	leader, err := SeatFromLetter(header[1])
	if err != nil {
		return DealRecord{}, err
	}

	rec := DealRecord{Number: number, Leader: leader}
	seen := make(map[deck.Card]bool)
	for i := range rec.Hands {
		if !scanner.Scan() {
			return DealRecord{}, fmt.Errorf("missing hand for seat %s", Seats[i])
		}

		cards, err := deck.CardsFromString(scanner.Text())
		if err != nil {
			return DealRecord{}, fmt.Errorf("hand for seat %s: %w", Seats[i], err)
		}

		if len(cards) != 13 {
			return DealRecord{}, fmt.Errorf("hand for seat %s has %d cards", Seats[i], len(cards))
		}

		for _, c := range cards {
			if seen[c] {
				return DealRecord{}, fmt.Errorf("card %s dealt twice", deck.CardToString(c))
			}
			seen[c] = true
		}

		rec.Hands[i] = cards
	}

	return rec, nil
}
