// Package wire builds and parses the CRLF-framed table protocol messages.
// Each message is a single line; the framing (reading up to CRLF) is handled
// by the connection layer, so everything here works on bare lines.
package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"kierki-server/pkg/deck"
	"kierki-server/pkg/game"
)

// ErrProtocolViolation is an error when a line does not match the expected
// message grammar
var ErrProtocolViolation = errors.New("protocol violation")

// ParseIAM parses a seat claim: IAM<seat>
func ParseIAM(line string) (game.Seat, error) {
	if len(line) != 4 || line[:3] != "IAM" {
		return 0, fmt.Errorf("%w: expected IAM, got %q", ErrProtocolViolation, line)
	}

	seat, err := game.SeatFromLetter(line[3])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrProtocolViolation, line)
	}

	return seat, nil
}

// ParseTrick parses TRICK<trickNo><0-4 cards>. The prompt and the client's
// answer share the grammar; the caller checks the card count it wants.
func ParseTrick(line string) (int, []deck.Card, error) {
	rest, ok := cutPrefix(line, "TRICK")
	if !ok {
		return 0, nil, fmt.Errorf("%w: expected TRICK, got %q", ErrProtocolViolation, line)
	}

	if rest == "" {
		return 0, nil, fmt.Errorf("%w: missing trick number in %q", ErrProtocolViolation, line)
	}

	// "TRICK12H" is trick 1 followed by 2H, not trick 12: a one-digit trick
	// number is preferred whenever the remainder parses as cards
	if rest[0] >= '1' && rest[0] <= '9' {
		if cards, err := deck.CardsFromString(rest[1:]); err == nil && len(cards) <= 4 {
			return int(rest[0] - '0'), cards, nil
		}
	}

	if len(rest) >= 2 && rest[0] == '1' && rest[1] >= '0' && rest[1] <= '3' {
		if cards, err := deck.CardsFromString(rest[2:]); err == nil && len(cards) <= 4 {
			return 10 + int(rest[1]-'0'), cards, nil
		}
	}

	return 0, nil, fmt.Errorf("%w: bad TRICK line %q", ErrProtocolViolation, line)
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return s, false
	}

	return s[len(prefix):], true
}

// Busy formats BUSY<occupied-seats>, seats in N, E, S, W order
func Busy(seats []game.Seat) string {
	var sb strings.Builder
	sb.WriteString("BUSY")
	for _, s := range seats {
		sb.WriteString(s.String())
	}

	return sb.String()
}

// Deal formats DEAL<dealNo><leader><13 cards>
func Deal(no int, leader game.Seat, hand deck.Hand) string {
	return "DEAL" + strconv.Itoa(no) + leader.String() + deck.CardsToString(hand)
}

// Trick formats TRICK<trickNo><cards so far>
func Trick(no int, trick []deck.Card) string {
	return "TRICK" + strconv.Itoa(no) + deck.CardsToString(trick)
}

// Wrong formats WRONG<trickNo>
func Wrong(no int) string {
	return "WRONG" + strconv.Itoa(no)
}

// Taken formats TAKEN<trickNo><4 cards><winner>
func Taken(no int, trick []deck.Card, winner game.Seat) string {
	return "TAKEN" + strconv.Itoa(no) + deck.CardsToString(trick) + winner.String()
}

// Score formats SCORE<seat><points> for the four seats
func Score(points [4]int) string {
	return scoreLine("SCORE", points)
}

// Total formats TOTAL<seat><points> for the four seats
func Total(points [4]int) string {
	return scoreLine("TOTAL", points)
}

func scoreLine(prefix string, points [4]int) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, seat := range game.Seats {
		sb.WriteString(seat.String())
		sb.WriteString(strconv.Itoa(points[seat]))
	}

	return sb.String()
}
