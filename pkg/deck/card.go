package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedCard is an error when a card cannot be parsed from its text form
var ErrMalformedCard = errors.New("malformed card")

// Suit represents a card suit
type Suit string

// suit constants
const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// Suits lists the four suits in wire order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Letter returns the single-letter wire form of the suit
func (s Suit) Letter() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}

	panic("unknown suit")
}

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

func rankText(rank int) string {
	switch rank {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return strconv.Itoa(rank)
	}
}

func (c Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", rankText(c.Rank), suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// Beats returns true if c wins over card when card's suit was led.
// A card of a different suit never wins, regardless of rank.
func (c Card) Beats(card Card) bool {
	return c.Suit == card.Suit && c.Rank > card.Rank
}

func suitFromLetter(b byte) (Suit, bool) {
	switch b {
	case 'C':
		return Clubs, true
	case 'D':
		return Diamonds, true
	case 'H':
		return Hearts, true
	case 'S':
		return Spades, true
	}

	return "", false
}

// CardFromString returns a Card from its wire form: <rank><suit> where rank
// is 2-10, J, Q, K or A and suit is C, D, H or S (e.g. "10H", "QS")
func CardFromString(s string) (Card, error) {
	card, rest, err := readCard(s)
	if err != nil {
		return Card{}, err
	}

	if rest != "" {
		return Card{}, fmt.Errorf("%w: %q", ErrMalformedCard, s)
	}

	return card, nil
}

// readCard consumes a single card token off the front of s
func readCard(s string) (Card, string, error) {
	if len(s) < 2 {
		return Card{}, "", fmt.Errorf("%w: %q", ErrMalformedCard, s)
	}

	var rank, n int
	switch {
	case s[0] == '1':
		if len(s) < 3 || s[1] != '0' {
			return Card{}, "", fmt.Errorf("%w: %q", ErrMalformedCard, s)
		}

		rank, n = 10, 3
	case s[0] >= '2' && s[0] <= '9':
		rank, n = int(s[0]-'0'), 2
	case s[0] == 'J':
		rank, n = Jack, 2
	case s[0] == 'Q':
		rank, n = Queen, 2
	case s[0] == 'K':
		rank, n = King, 2
	case s[0] == 'A':
		rank, n = Ace, 2
	default:
		return Card{}, "", fmt.Errorf("%w: %q", ErrMalformedCard, s)
	}

	suit, ok := suitFromLetter(s[n-1])
	if !ok {
		return Card{}, "", fmt.Errorf("%w: %q", ErrMalformedCard, s)
	}

	return Card{Rank: rank, Suit: suit}, s[n:], nil
}

// CardsFromString parses a concatenation of card tokens (e.g. "2C10HAS")
func CardsFromString(s string) ([]Card, error) {
	cards := make([]Card, 0, len(s)/2)
	for s != "" {
		card, rest, err := readCard(s)
		if err != nil {
			return nil, err
		}

		cards = append(cards, card)
		s = rest
	}

	return cards, nil
}

// CardToString converts a card to its wire form (Ace of Clubs becomes "AC")
func CardToString(card Card) string {
	return rankText(card.Rank) + card.Suit.Letter()
}

// CardsToString converts a slice of cards to their concatenated wire form
func CardsToString(cards []Card) string {
	var sb strings.Builder
	for _, card := range cards {
		sb.WriteString(CardToString(card))
	}

	return sb.String()
}
