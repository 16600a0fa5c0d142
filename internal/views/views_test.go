package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"momir/internal/momir"
	"momir/internal/views/components"
	"momir/internal/views/layouts"
	"momir/internal/views/pages"
)

// Test that every view renders for every phase without error
func TestTemplateRendering(t *testing.T) {
	card := momir.NewCardImage("data:image/jpeg;base64,/9j/4AAQ")
	history := []momir.CardImage{
		momir.NewCardImage("data:image/jpeg;base64,AAAA"),
		momir.NewCardImage("data:image/jpeg;base64,BBBB"),
	}

	states := map[string]momir.State{
		"idle":    {},
		"loading": {Mode: momir.ModeShow, Phase: momir.PhaseLoading, LoadingMessage: "Fetching image..."},
		"displaying": {
			Mode: momir.ModePrint, Card: card, CardVisible: true, History: history,
			Phase: momir.PhaseDisplaying, PrintSuppressed: true,
		},
		"printer dispatched": {Mode: momir.ModeRawBT, History: history, Phase: momir.PhasePrinterDispatched},
		"failed":             {Mode: momir.ModeShow, Phase: momir.PhaseFailed, ErrorMessage: "Failed to fetch image: HTTP 404: not found"},
	}

	ctx := context.Background()

	for name, state := range states {
		views := map[string]templ.Component{
			"Base":     layouts.Base("Momir"),
			"Home":     pages.Home(state, []int{0, 1, 15, 16}),
			"Content":  components.Content(state),
			"Controls": components.Controls(state, []int{3}),
			"Card":     components.Card(state),
			"ZenFrame": components.ZenFrame(),
		}
		for viewName, component := range views {
			t.Run(name+"/"+viewName, func(t *testing.T) {
				buf := &bytes.Buffer{}
				if err := component.Render(ctx, buf); err != nil {
					t.Errorf("%s failed to render: %v", viewName, err)
				}
				if buf.Len() == 0 {
					t.Errorf("%s rendered empty content", viewName)
				}
			})
		}
	}
}
