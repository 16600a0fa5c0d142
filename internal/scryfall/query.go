package scryfall

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultRandomURL is the random-card endpoint
const DefaultRandomURL = "https://api.scryfall.com/cards/random"

// DefaultExcludedCards are creatures that break Momir games
var DefaultExcludedCards = []string{"Shadowborn Apostle"}

// QueryOptions customises the fixed part of the search
type QueryOptions struct {
	ExcludedCards []string
}

// ManaValues returns the mana values offered as buttons: 0 to 14, then 15 and 16.
// 15 and 16 are queried as exact values.
func ManaValues() []int {
	values := make([]int, 0, 17)
	for v := 0; v <= 14; v++ {
		values = append(values, v)
	}
	return append(values, 15, 16)
}

// BuildQuery returns the search expression for a random creature of the given mana value
func BuildQuery(manaValue int, opts QueryOptions) string {
	terms := []string{
		"legal:vintage",
		"-set_type:funny",        // no un-sets
		`type:/^[^\/]*Creature/`, // creature on the front face
		"-type:land",
		"-mana>=x",   // no {X} in the cost
		"-mana:/^$/", // must have a mana cost
	}
	for _, name := range opts.ExcludedCards {
		terms = append(terms, fmt.Sprintf(`-!"%s"`, name))
	}
	terms = append(terms, fmt.Sprintf("cmc:%d", manaValue))
	return strings.Join(terms, " ")
}

// RandomCardURL builds the full image request URL for a mana value
func RandomCardURL(base string, manaValue int, opts QueryOptions) string {
	if base == "" {
		base = DefaultRandomURL
	}
	params := url.Values{}
	params.Set("q", BuildQuery(manaValue, opts))
	params.Set("format", "image")
	params.Set("version", "border_crop")
	return base + "?" + params.Encode()
}
