package momir

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
)

// ImageSource fetches a random card image for a mana value
type ImageSource interface {
	RandomCard(ctx context.Context, manaValue int) (CardImage, error)
}

// Handoff is the part of a print job the browser has to finish
type Handoff struct {
	LaunchURL string
}

// Printer pushes an image to the receipt printer bridge.
// Print blocks until the job reaches a terminal outcome.
type Printer interface {
	Print(ctx context.Context, img CardImage, progress func(fraction float64)) (Handoff, error)
}

// Preferences is a key-value store for user preferences
type Preferences interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Options tunes an App
type Options struct {
	HistoryCapacity int
	Logger          *slog.Logger
}

// App owns the current card slot, the history ring and the selected mode.
// Every action takes the lock only for state transitions, never across I/O.
type App struct {
	source  ImageSource
	printer Printer
	prefs   Preferences
	logger  *slog.Logger

	mu              sync.Mutex
	mode            PrintMode
	current         CardImage
	visible         bool
	history         *HistoryRing
	phase           Phase
	loading         string
	errMsg          string
	printSuppressed bool
}

// NewApp creates an App with no card shown and no mode selected
func NewApp(source ImageSource, printer Printer, prefs Preferences, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		source:  source,
		printer: printer,
		prefs:   prefs,
		logger:  logger,
		history: NewHistoryRing(opts.HistoryCapacity),
	}
}

// Restore selects the mode stored in preferences, if it is a known one
func (a *App) Restore(ctx context.Context) {
	value, err := a.prefs.Get(ctx, PreferenceKey)
	if err != nil {
		a.logger.Debug("no stored print mode", "error", err)
		return
	}
	mode, ok := ParseMode(value)
	if !ok {
		a.logger.Warn("ignoring unknown stored print mode", "value", value)
		return
	}

	a.mu.Lock()
	a.mode = mode
	a.mu.Unlock()
	a.logger.Info("restored print mode", "mode", mode)
}

// State returns a snapshot of the current state
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

// Momir fetches a random creature of the given mana value and hands it to
// the selected output. A call made while another cycle is loading is ignored
// and returns ErrBusy.
func (a *App) Momir(ctx context.Context, manaValue int, notify Notify) (Effects, error) {
	a.mu.Lock()
	if a.phase == PhaseLoading {
		a.mu.Unlock()
		return Effects{}, ErrBusy
	}
	a.addCurrentCardToHistory()
	a.visible = false
	a.errMsg = ""
	a.phase = PhaseLoading
	a.loading = "Fetching image..."
	state := a.snapshot()
	a.mu.Unlock()
	emit(notify, state)

	defer a.settle(notify)

	img, err := a.source.RandomCard(ctx, manaValue)
	if err != nil {
		a.logger.Error("failed to fetch card", "mana_value", manaValue, "error", err)
		a.update(nil, func() {
			a.fail(fmt.Sprintf("Failed to fetch image: %v", err))
		})
		return Effects{}, fmt.Errorf("fetch mana value %d: %w", manaValue, err)
	}

	a.logger.Info("fetched card", "mana_value", manaValue, "card_id", img.ID)
	return a.dispatch(ctx, img, notify)
}

// Recall swaps a history entry with the current card and hands it to the
// selected output again
func (a *App) Recall(ctx context.Context, id string, notify Notify) (Effects, error) {
	a.mu.Lock()
	if a.phase == PhaseLoading {
		a.mu.Unlock()
		return Effects{}, ErrBusy
	}
	img, ok := a.history.Remove(id)
	if !ok {
		a.mu.Unlock()
		return Effects{}, ErrHistoryEntryNotFound
	}
	a.addCurrentCardToHistory()
	if a.mode == ModeRawBT {
		a.errMsg = ""
		a.phase = PhaseLoading
		a.loading = "Printing..."
	}
	a.mu.Unlock()

	defer a.settle(notify)
	return a.dispatch(ctx, img, notify)
}

// SetMode selects and persists the output mode. Switching to rawbt moves
// the displayed card into history; switching back brings the newest
// history entry back on screen.
func (a *App) SetMode(ctx context.Context, mode PrintMode) error {
	if !mode.Valid() {
		return &UnknownModeError{Mode: mode}
	}

	if err := a.prefs.Set(ctx, PreferenceKey, string(mode)); err != nil {
		a.logger.Warn("failed to persist print mode", "mode", mode, "error", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.mode = mode
	if a.phase == PhaseLoading {
		return nil
	}

	if mode == ModeRawBT {
		a.addCurrentCardToHistory()
		a.visible = false
	} else if !a.visible {
		if previous, ok := a.history.Pop(); ok {
			a.showImage(previous)
		}
	}
	return nil
}

// CardClicked re-opens the print dialog when the displayed card is clicked in print mode
func (a *App) CardClicked() Effects {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Effects{PrintDialog: a.mode == ModePrint && a.visible}
}

// Print opens the print dialog for the displayed card, whatever the mode
func (a *App) Print() Effects {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Effects{PrintDialog: a.visible}
}

func (a *App) dispatch(ctx context.Context, img CardImage, notify Notify) (Effects, error) {
	a.mu.Lock()
	mode := a.mode
	a.mu.Unlock()

	switch mode {
	case ModeShow:
		a.update(nil, func() { a.showImage(img) })
		return Effects{}, nil
	case ModePrint:
		a.update(nil, func() { a.showImage(img) })
		return Effects{PrintDialog: true}, nil
	case ModeRawBT:
		return a.printRawBT(ctx, img, notify)
	default:
		err := &UnknownModeError{Mode: mode}
		a.logger.Error("cannot dispatch card", "card_id", img.ID, "error", err)
		return Effects{}, err
	}
}

func (a *App) printRawBT(ctx context.Context, img CardImage, notify Notify) (Effects, error) {
	a.update(notify, func() {
		a.phase = PhaseLoading
		a.loading = "Printing..."
		a.history.Add(img)
	})

	handoff, err := a.printer.Print(ctx, img, func(fraction float64) {
		a.update(notify, func() {
			a.loading = "Printing... " + formatPercent(fraction) + " %"
		})
	})
	if err != nil {
		attrs := []any{"card_id", img.ID, "error", err}
		if cause := errors.Unwrap(err); cause != nil {
			attrs = append(attrs, "cause", cause)
		}
		a.logger.Error("print job failed", attrs...)
		a.update(nil, func() { a.fail(err.Error()) })
		return Effects{}, err
	}

	a.logger.Info("print job finished", "card_id", img.ID)
	a.update(nil, func() {
		a.phase = PhasePrinterDispatched
		a.loading = ""
	})
	return Effects{LaunchURL: handoff.LaunchURL}, nil
}

// settle clears the loading state on every exit path of a cycle
func (a *App) settle(notify Notify) {
	a.update(notify, func() {
		if a.phase == PhaseLoading {
			a.phase = PhaseIdle
		}
		a.loading = ""
	})
}

// update applies fn under the lock and emits the resulting state
func (a *App) update(notify Notify, fn func()) {
	a.mu.Lock()
	fn()
	state := a.snapshot()
	a.mu.Unlock()
	emit(notify, state)
}

func (a *App) addCurrentCardToHistory() {
	if a.visible && !a.current.IsZero() {
		a.history.Add(a.current)
	}
}

func (a *App) showImage(img CardImage) {
	a.current = img
	a.visible = true
	a.printSuppressed = true
	a.phase = PhaseDisplaying
	a.loading = ""
}

func (a *App) fail(message string) {
	a.phase = PhaseFailed
	a.errMsg = message
	a.loading = ""
}

func (a *App) snapshot() State {
	return State{
		Mode:            a.mode,
		Card:            a.current,
		CardVisible:     a.visible,
		History:         a.history.Items(),
		Phase:           a.phase,
		LoadingMessage:  a.loading,
		ErrorMessage:    a.errMsg,
		PrintSuppressed: a.printSuppressed,
	}
}

func emit(notify Notify, state State) {
	if notify != nil {
		notify(state)
	}
}

func formatPercent(fraction float64) string {
	return strconv.FormatFloat(math.Round(fraction*1000)/10, 'f', -1, 64)
}
