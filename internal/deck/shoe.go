package deck

import rand "math/rand/v2"

// CardsPerDeck is the number of cards in a single standard deck
const CardsPerDeck = 52

// Shoe holds one or more shuffled decks that a single round deals from.
// A fresh shoe is built for every round; it is never reused across rounds.
type Shoe struct {
	cards []Card
	decks int
}

// NewShoe creates a shoe of decks*52 cards shuffled with the provided RNG.
// The RNG is injected so rounds are reproducible from a seed.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	s := &Shoe{
		cards: buildCards(decks),
		decks: decks,
	}
	rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	return s
}

// NewReferenceShoe creates an unshuffled full shoe. It is used as the
// reference population when estimating the dealer's hole card.
func NewReferenceShoe(decks int) *Shoe {
	return &Shoe{cards: buildCards(decks), decks: decks}
}

func buildCards(decks int) []Card {
	cards := make([]Card, 0, decks*CardsPerDeck)
	for d := 0; d < decks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				cards = append(cards, NewCard(suit, rank))
			}
		}
	}
	return cards
}

// Deal removes and returns the top card from the shoe
func (s *Shoe) Deal() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}

	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card, true
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Size returns the number of cards in a full shoe of this many decks
func (s *Shoe) Size() int {
	return s.decks * CardsPerDeck
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// Cards returns a copy of the remaining cards, top of the shoe last
func (s *Shoe) Cards() []Card {
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Stack places the given cards on top of the shoe so they deal in the
// given order. Used by tests to force deterministic deals.
func (s *Shoe) Stack(cards ...Card) {
	for i := len(cards) - 1; i >= 0; i-- {
		s.cards = append(s.cards, cards[i])
	}
}

// CountTenValued returns how many ten-valued cards remain in a full shoe of
// the given deck count after removing the visible cards.
func CountTenValued(decks int, visible []Card) int {
	// 16 ten-valued cards per deck: T, J, Q, K in four suits.
	count := decks * 16
	for _, c := range visible {
		if c.IsTenValued() {
			count--
		}
	}
	return count
}
