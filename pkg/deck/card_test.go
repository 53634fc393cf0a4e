package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2♡", Card{Rank: 2, Suit: Hearts}.String())
	assert.Equal(t, "J♣", Card{Rank: Jack, Suit: Clubs}.String())
	assert.Equal(t, "Q♢", Card{Rank: Queen, Suit: Diamonds}.String())
	assert.Equal(t, "K♠", Card{Rank: King, Suit: Spades}.String())
	assert.Equal(t, "10♠", Card{Rank: 10, Suit: Spades}.String())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card, err := CardFromString("2C")
	a.NoError(err)
	a.Equal(Card{Rank: 2, Suit: Clubs}, card)

	card, err = CardFromString("10H")
	a.NoError(err)
	a.Equal(Card{Rank: 10, Suit: Hearts}, card)

	card, err = CardFromString("AS")
	a.NoError(err)
	a.Equal(Card{Rank: Ace, Suit: Spades}, card)

	card, err = CardFromString("QD")
	a.NoError(err)
	a.Equal(Card{Rank: Queen, Suit: Diamonds}, card)

	for _, bad := range []string{"", "2", "1H", "11H", "0C", "2c", "tH", "2X", "10", "AS2", "A S"} {
		_, err := CardFromString(bad)
		a.ErrorIs(err, ErrMalformedCard, "input: %q", bad)
	}
}

func TestCardToString(t *testing.T) {
	assert.Equal(t, "2C", CardToString(Card{Rank: 2, Suit: Clubs}))
	assert.Equal(t, "10D", CardToString(Card{Rank: 10, Suit: Diamonds}))
	assert.Equal(t, "JH", CardToString(Card{Rank: Jack, Suit: Hearts}))
	assert.Equal(t, "AS", CardToString(Card{Rank: Ace, Suit: Spades}))
}

func TestCardsFromString(t *testing.T) {
	a := assert.New(t)

	cards, err := CardsFromString("2C10HAS")
	a.NoError(err)
	a.Equal([]Card{
		{Rank: 2, Suit: Clubs},
		{Rank: 10, Suit: Hearts},
		{Rank: Ace, Suit: Spades},
	}, cards)

	cards, err = CardsFromString("")
	a.NoError(err)
	a.Empty(cards)

	_, err = CardsFromString("2C10")
	a.ErrorIs(err, ErrMalformedCard)

	_, err = CardsFromString("2C3")
	a.ErrorIs(err, ErrMalformedCard)
}

func TestCardsToString_roundTrip(t *testing.T) {
	hand := Hand{
		{Rank: 2, Suit: Clubs},
		{Rank: 10, Suit: Spades},
		{Rank: King, Suit: Hearts},
	}

	cards, err := CardsFromString(CardsToString(hand))
	assert.NoError(t, err)
	assert.Equal(t, []Card(hand), cards)
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(Card{Rank: 2, Suit: Clubs}.Equal(Card{Rank: 2, Suit: Clubs}))
	a.False(Card{Rank: 2, Suit: Clubs}.Equal(Card{Rank: 2, Suit: Hearts}))
	a.False(Card{Rank: 2, Suit: Clubs}.Equal(Card{Rank: 3, Suit: Clubs}))
}

func TestCard_Beats(t *testing.T) {
	a := assert.New(t)

	// same suit compares by rank
	a.True(Card{Rank: King, Suit: Hearts}.Beats(Card{Rank: 2, Suit: Hearts}))
	a.False(Card{Rank: 2, Suit: Hearts}.Beats(Card{Rank: King, Suit: Hearts}))

	// off-suit never beats, there is no trump
	a.False(Card{Rank: Ace, Suit: Clubs}.Beats(Card{Rank: 2, Suit: Hearts}))
}
