package pages

import (
	"encoding/json"

	"momir/internal/momir"
)

// Signals are the datastar signals the server keeps in sync with state.
// Zen is not among them; only the browser sets it.
type Signals struct {
	Mode    string `json:"mode"`
	Loading bool   `json:"loading"`
}

// SignalsFor derives the client signals from state
func SignalsFor(state momir.State) Signals {
	return Signals{
		Mode:    string(state.Mode),
		Loading: state.Loading(),
	}
}

// pageSignals seeds the client-only signals on first render
type pageSignals struct {
	Signals
	Zen bool `json:"zen"`
}

func initialSignals(state momir.State) string {
	b, err := json.Marshal(pageSignals{Signals: SignalsFor(state)})
	if err != nil {
		return "{}"
	}
	return string(b)
}
