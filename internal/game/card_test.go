// internal/game/card_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck()
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for _, c := range d.cards {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
		assert.Contains(t, rankValues, c.Rank)
	}
	assert.Len(t, seen, 52)
}

func TestDrawRemovesFromTail(t *testing.T) {
	d := NewDeck()
	tail := d.cards[len(d.cards)-1]

	drawn := d.Draw(1)
	require.Len(t, drawn, 1)
	assert.Equal(t, tail, drawn[0])
	assert.Equal(t, 51, d.Remaining())
}

func TestDrawPastExhaustion(t *testing.T) {
	d := NewDeck()
	d.cards = d.cards[:3]

	drawn := d.Draw(5)
	assert.Len(t, drawn, 3, "draw caps at remaining count")
	assert.Equal(t, 0, d.Remaining())

	drawn = d.Draw(1)
	assert.Empty(t, drawn, "drawing from an empty deck yields nothing")
}

func TestCardScoring(t *testing.T) {
	cases := []struct {
		card  Card
		score int
	}{
		{Card{"A", "H"}, 1},
		{Card{"7", "D"}, 7},
		{Card{"10", "S"}, 10},
		{Card{"J", "C"}, 11},
		{Card{"Q", "H"}, 12},
		{Card{"K", "H"}, 13},
		{Card{"K", "D"}, 13},
		{Card{"K", "C"}, 0},
		{Card{"K", "S"}, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.score, tc.card.Score(), "score of %s", tc.card)
	}
}

func TestCardWireFormat(t *testing.T) {
	data, err := json.Marshal(Card{Rank: "K", Suit: "C"})
	require.NoError(t, err)
	assert.JSONEq(t, `["K","C"]`, string(data))

	var c Card
	require.NoError(t, json.Unmarshal([]byte(`["10","H"]`), &c))
	assert.Equal(t, Card{Rank: "10", Suit: "H"}, c)

	err = json.Unmarshal([]byte(`{"rank":"K"}`), &c)
	assert.Error(t, err, "object form is not part of the protocol")
}
