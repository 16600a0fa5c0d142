package components

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"momir/internal/momir"
	"momir/internal/testhelpers"
)

func TestCard(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("hidden by default", func(t *testing.T) {
		renderer.Render(Card(momir.State{})).
			AssertValid().
			AssertElementHasClass("card-image", "d-none").
			AssertNotContains("src=")
	})

	t.Run("visible card", func(t *testing.T) {
		state := momir.State{
			Card:        momir.CardImage{ID: "abc", DataURI: "data:image/png;base64,iVBO"},
			CardVisible: true,
		}
		renderer.Render(Card(state)).
			AssertElementLacksClass("card-image", "d-none").
			AssertContains(`src="data:image/png;base64,iVBO"`).
			AssertContains(`data-card-id="abc"`).
			AssertHasDatastarAttribute("on-click", "@post(&#39;/card/print&#39;)")
	})

	t.Run("escapes image source", func(t *testing.T) {
		state := momir.State{
			Card:        momir.CardImage{ID: "x", DataURI: `data:"><script>`},
			CardVisible: true,
		}
		renderer.Render(Card(state)).
			AssertNotContains(`"><script>`)
	})
}

func TestHistory(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)
	items := []momir.CardImage{
		{ID: "one", DataURI: "data:image/jpeg;base64,MQ=="},
		{ID: "two", DataURI: "data:image/jpeg;base64,Mg=="},
	}

	t.Run("renders thumbnails oldest first", func(t *testing.T) {
		renderer.Render(History(items, false)).
			AssertElementCount("img", 2).
			AssertHasClass("history-image").
			AssertMatches(`(?s)data-history-id="one".*data-history-id="two"`).
			AssertHasDatastarAttribute("on-click", "@post(&#39;/history/two&#39;)")
	})

	t.Run("thumbnails are inert while loading", func(t *testing.T) {
		renderer.Render(History(items, true)).
			AssertElementCount("img", 2).
			AssertNotContains("data-on-click")
	})

	t.Run("empty strip", func(t *testing.T) {
		renderer.Render(History(nil, false)).
			AssertHasElementWithID("history").
			AssertElementCount("img", 0)
	})
}

func TestStatus(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("idle hides both banners", func(t *testing.T) {
		renderer.Render(Status(momir.State{})).
			AssertValid().
			AssertElementHasClass("loadingAlert", "d-none").
			AssertElementHasClass("errorAlert", "d-none")
	})

	t.Run("loading shows message", func(t *testing.T) {
		state := momir.State{Phase: momir.PhaseLoading, LoadingMessage: "Printing... 42.5 %"}
		renderer.Render(Status(state)).
			AssertElementLacksClass("loadingAlert", "d-none").
			AssertContains("Printing... 42.5 %")
	})

	t.Run("error banner escapes message", func(t *testing.T) {
		state := momir.State{Phase: momir.PhaseFailed, ErrorMessage: "Failed to fetch image: <b>HTTP 404</b>"}
		renderer.Render(Status(state)).
			AssertElementLacksClass("errorAlert", "d-none").
			AssertElementHasClass("loadingAlert", "d-none").
			AssertContains("Failed to fetch image: &lt;b&gt;HTTP 404&lt;/b&gt;")
	})
}

func TestModeSelector(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("unset mode checks nothing", func(t *testing.T) {
		renderer.Render(ModeSelector(momir.ModeUnset)).
			AssertElementCount("input", 3).
			AssertNotContains("checked")
	})

	t.Run("selected mode is checked", func(t *testing.T) {
		renderer.Render(ModeSelector(momir.ModeRawBT)).
			AssertMatches(`id="mode-rawbt" name="mode" value="rawbt" checked`).
			AssertHasDatastarAttribute("on-change", "@post(&#39;/mode/print&#39;)").
			AssertInputValue("mode", "show")
	})
}

func TestManaButtons(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("one button per value", func(t *testing.T) {
		renderer.Render(ManaButtons([]int{0, 15, 16}, false)).
			AssertElementCount("button", 3).
			AssertContains(`>15</button>`).
			AssertHasDatastarAttribute("attr-disabled", "$loading").
			AssertNotContains(" disabled>")
	})

	t.Run("disabled while loading", func(t *testing.T) {
		renderer.Render(ManaButtons([]int{1, 2}, true)).
			AssertMatches(`(?s)(disabled>.*){2}`)
	})
}

func TestControlsAndContent(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("print suppression", func(t *testing.T) {
		state := momir.State{PrintSuppressed: true, CardVisible: true}
		renderer.Render(Controls(state, []int{1})).
			AssertPrintSuppressed("controls").
			AssertHasElementWithID("zen-button").
			AssertHasDatastarAttribute("on-click", "@post(&#39;/print&#39;)")
		renderer.Render(Content(state)).
			AssertPrintSuppressed("content")
	})

	t.Run("print button needs a card", func(t *testing.T) {
		renderer.Render(Controls(momir.State{}, []int{1})).
			AssertMatches(`id="print-button"[^>]*disabled`)
	})

	t.Run("zen button sets the client signal", func(t *testing.T) {
		renderer.Render(Controls(momir.State{}, []int{1})).
			AssertHasDatastarAttribute("on-click", "$zen = true; momirZen()")
	})
}

func TestZenFrame(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("hides children while zen is set", func(t *testing.T) {
		renderer.Render(ZenFrame()).
			AssertValid().
			AssertHasElementWithID("zen-frame").
			AssertHasDatastarAttribute("show", "!$zen").
			AssertHasDatastarAttribute("on-fullscreenchange__window", "$zen = document.fullscreenElement != null")
	})

	t.Run("wraps controls", func(t *testing.T) {
		ctx := templ.WithChildren(context.Background(), Controls(momir.State{}, []int{1}))
		var buf strings.Builder
		if err := ZenFrame().Render(ctx, &buf); err != nil {
			t.Fatalf("render failed: %v", err)
		}
		renderer.Render(templ.Raw(buf.String())).
			AssertMatches(`(?s)<div id="zen-frame"[^>]*>\s*<div id="controls".*</div>\s*</div>$`)
	})
}
