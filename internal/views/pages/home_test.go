package pages

import (
	"encoding/json"
	"strings"
	"testing"

	"momir/internal/momir"
	"momir/internal/testhelpers"
)

var manaValues = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

func TestHomePage(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("renders page structure", func(t *testing.T) {
		renderer.Render(Home(momir.State{}, manaValues)).
			AssertNotEmpty().
			AssertValid().
			AssertContains("<title>Momir</title>").
			AssertHasElementWithID("content").
			AssertHasElementWithID("controls").
			AssertHasElementWithID("card").
			AssertHasElementWithID("history").
			AssertHasElementWithID("status")
	})

	t.Run("has one button per mana value", func(t *testing.T) {
		renderer.Render(Home(momir.State{}, manaValues)).
			AssertHasDatastarAttribute("on-click", "@post(&#39;/momir/0&#39;)").
			AssertHasDatastarAttribute("on-click", "@post(&#39;/momir/16&#39;)")

		// 17 mana buttons plus zen and print
		renderer.AssertElementCount("button", 19)
	})

	t.Run("seeds signals from state", func(t *testing.T) {
		renderer.Render(Home(momir.State{Mode: momir.ModeRawBT}, manaValues)).
			AssertContains(`data-signals="{&#34;mode&#34;:&#34;rawbt&#34;,&#34;loading&#34;:false,&#34;zen&#34;:false}"`)
	})

	t.Run("controls sit inside the zen frame", func(t *testing.T) {
		renderer.Render(Home(momir.State{}, manaValues)).
			AssertHasDatastarAttribute("show", "!$zen").
			AssertMatches(`<div id="zen-frame"[^>]*><div id="controls"`)
	})

	t.Run("fresh page prints everything", func(t *testing.T) {
		renderer.Render(Home(momir.State{}, manaValues)).
			AssertElementLacksClass("content", "d-print-none").
			AssertElementLacksClass("controls", "d-print-none").
			AssertElementHasClass("card-image", "d-none")
	})

	t.Run("displayed card suppresses everything else from print", func(t *testing.T) {
		state := momir.State{
			Mode:            momir.ModePrint,
			Card:            momir.CardImage{ID: "c1", DataURI: "data:image/jpeg;base64,AAAA"},
			CardVisible:     true,
			PrintSuppressed: true,
			Phase:           momir.PhaseDisplaying,
		}
		renderer.Render(Home(state, manaValues)).
			AssertPrintSuppressed("content", "controls").
			AssertElementLacksClass("card", "d-print-none").
			AssertElementLacksClass("card-image", "d-none").
			AssertContains(`src="data:image/jpeg;base64,AAAA"`)
	})
}

func TestSignalsFor(t *testing.T) {
	s := SignalsFor(momir.State{Mode: momir.ModeShow, Phase: momir.PhaseLoading})
	if s.Mode != "show" || !s.Loading {
		t.Errorf("unexpected signals %+v", s)
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "zen") {
		t.Errorf("server signals must not touch zen: %s", b)
	}
}
