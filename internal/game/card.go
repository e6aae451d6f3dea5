// internal/game/card.go
package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

var (
	suits = []string{"H", "D", "C", "S"}
	ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

	rankValues = map[string]int{
		"A": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8,
		"9": 9, "10": 10, "J": 11, "Q": 12, "K": 13,
	}
)

// Card is an immutable rank/suit pair. A standard deck holds no duplicates,
// so a card has no identity beyond its rank and suit.
//
// On the wire a card is a two-element JSON array, e.g. ["K","C"], matching
// the client protocol.
type Card struct {
	Rank string
	Suit string
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.Rank, c.Suit})
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("card must be a [rank, suit] pair: %w", err)
	}
	c.Rank, c.Suit = pair[0], pair[1]
	return nil
}

func (c Card) String() string {
	return c.Rank + c.Suit
}

// Value returns the card's face value: A=1, numeric ranks at face value,
// J=11, Q=12, K=13.
func (c Card) Value() int {
	return rankValues[c.Rank]
}

// Score returns the card's end-game score. The black kings (clubs and
// spades) score zero; every other card scores its face value.
func (c Card) Score() int {
	if c.Rank == "K" && (c.Suit == "C" || c.Suit == "S") {
		return 0
	}
	return c.Value()
}

// Deck is an ordered sequence of the 52 unique cards, shuffled at
// construction. Each deck is owned by exactly one game and is mutated only
// through Draw.
type Deck struct {
	cards []Card
}

// NewDeck builds the full 52-card set and applies a uniformly random shuffle.
func NewDeck() *Deck {
	cards := make([]Card, 0, len(suits)*len(ranks))
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Draw removes and returns up to n cards from the tail of the deck.
// Exhaustion is not an error: once the deck is empty, Draw returns an empty
// slice and callers must check the returned length.
func (d *Deck) Draw(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := make([]Card, n)
	for i := 0; i < n; i++ {
		last := len(d.cards) - 1
		drawn[i] = d.cards[last]
		d.cards = d.cards[:last]
	}
	return drawn
}

// Remaining reports how many cards are left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
