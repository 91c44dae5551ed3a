package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/cardsim/blackjack/internal/deck"
)

// Styles contains the lipgloss styles used for rendering cards and table
// state at the terminal.
type Styles struct {
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	CardBack  lipgloss.Style
	Title     lipgloss.Style
	Value     lipgloss.Style
	Chips     lipgloss.Style
	Warning   lipgloss.Style
}

// DefaultStyles returns the standard table styling
func DefaultStyles() *Styles {
	return &Styles{
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		CardBack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Chips: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
	}
}

// Renderer draws cards and hands. Color is disabled automatically when the
// terminal cannot render it.
type Renderer struct {
	styles *Styles
	color  bool
}

// NewRenderer creates a renderer with the default styles, probing the
// environment's color support via termenv.
func NewRenderer() *Renderer {
	return &Renderer{
		styles: DefaultStyles(),
		color:  termenv.EnvColorProfile() != termenv.Ascii,
	}
}

// NewPlainRenderer creates a renderer that never emits color. Used in tests
// and when output is piped.
func NewPlainRenderer() *Renderer {
	return &Renderer{styles: DefaultStyles(), color: false}
}

func (r *Renderer) styleFor(c deck.Card) lipgloss.Style {
	if c.IsRed() {
		return r.styles.RedCard
	}
	return r.styles.BlackCard
}

func (r *Renderer) render(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// rankLabel is the rank as printed on card art; the ten shows as "10"
func rankLabel(rank deck.Rank) string {
	if rank == deck.Ten {
		return "10"
	}
	return rank.String()
}

// Card renders a single card as five lines of box art
func (r *Renderer) Card(c deck.Card) string {
	label := rankLabel(c.Rank)
	lines := []string{
		"┌─────┐",
		fmt.Sprintf("│%-5s│", label),
		fmt.Sprintf("│  %s  │", c.Suit),
		fmt.Sprintf("│%5s│", label),
		"└─────┘",
	}
	return r.render(r.styleFor(c), strings.Join(lines, "\n"))
}

// HiddenCard renders a face-down card
func (r *Renderer) HiddenCard() string {
	lines := []string{
		"┌─────┐",
		"│░░░░░│",
		"│░░░░░│",
		"│░░░░░│",
		"└─────┘",
	}
	return r.render(r.styles.CardBack, strings.Join(lines, "\n"))
}

// Cards renders cards side by side. When hideLast is set the final card is
// drawn face down, which is how the dealer's hole card is shown.
func (r *Renderer) Cards(cards []deck.Card, hideLast bool) string {
	if len(cards) == 0 {
		return ""
	}
	arts := make([]string, len(cards))
	for i, c := range cards {
		if hideLast && i == len(cards)-1 {
			arts[i] = r.HiddenCard()
			continue
		}
		arts[i] = r.Card(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, arts...)
}

// Inline renders cards on a single line, e.g. "A♠ T♥"
func (r *Renderer) Inline(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.render(r.styleFor(c), c.String())
	}
	return strings.Join(parts, " ")
}

// Hand renders a titled hand with its value line
func (r *Renderer) Hand(title string, cards []deck.Card, value int) string {
	var b strings.Builder
	b.WriteString(r.render(r.styles.Title, title))
	b.WriteString("\n")
	b.WriteString(r.Cards(cards, false))
	b.WriteString("\n")
	b.WriteString(r.render(r.styles.Value, fmt.Sprintf("value: %d", value)))
	return b.String()
}

// DealerUpcard renders the dealer's hand with the hole card face down
func (r *Renderer) DealerUpcard(cards []deck.Card) string {
	var b strings.Builder
	b.WriteString(r.render(r.styles.Title, "Dealer"))
	b.WriteString("\n")
	b.WriteString(r.Cards(cards, true))
	return b.String()
}

// Title styles a section heading
func (r *Renderer) TitleLine(text string) string {
	return r.render(r.styles.Title, text)
}

// ChipsLine styles a chip count line
func (r *Renderer) ChipsLine(text string) string {
	return r.render(r.styles.Chips, text)
}

// WarnLine styles a warning line
func (r *Renderer) WarnLine(text string) string {
	return r.render(r.styles.Warning, text)
}
