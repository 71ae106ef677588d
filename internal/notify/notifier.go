package notify

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Category groups events for user notification preferences and audio
// cues.
type Category string

const (
	CategoryBid    Category = "bid"
	CategorySold   Category = "sold"
	CategoryUnsold Category = "unsold"
	CategoryStatus Category = "status"
	CategoryTimer  Category = "timer"
	CategoryChat   Category = "chat"
)

// Toast is a transient on-screen message.
type Toast struct {
	Level    string // "info", "success", "warning", "error"
	Message  string
	Duration time.Duration
}

// DefaultToastDuration is how long a toast stays up before auto-dismiss.
const DefaultToastDuration = 4 * time.Second

// Sinks are the outputs a notification can fan out to. Any sink may be
// nil; sink failures are logged and never propagated.
type Sinks struct {
	Toast   func(Toast)
	Desktop func(title, body string) error
	Beep    func(frequencyHz float64, duration time.Duration) error
}

// Prefs gates notification delivery. Both callbacks are consulted on
// every emission so preference flips take effect immediately.
type Prefs struct {
	SoundEnabled    func() bool
	CategoryEnabled func(Category) bool
}

// Notifier is a pure reaction layer: given an event category and a
// message it emits zero or more of toast, desktop notification, and
// audio cue. Everything is best-effort.
type Notifier struct {
	sinks Sinks
	prefs Prefs
}

// NewNotifier creates a notifier over the given sinks and preferences.
func NewNotifier(sinks Sinks, prefs Prefs) *Notifier {
	return &Notifier{sinks: sinks, prefs: prefs}
}

// Notify emits a toast plus, when the category preference allows, a
// desktop notification and an audio cue.
func (n *Notifier) Notify(category Category, level, message string) {
	n.ShowToast(level, message)

	if n.prefs.CategoryEnabled != nil && !n.prefs.CategoryEnabled(category) {
		return
	}

	if n.sinks.Desktop != nil {
		if err := n.sinks.Desktop("Auction", message); err != nil {
			log.Debug().Err(err).Msg("desktop notification failed")
		}
	}

	n.PlayCue(category)
}

// ShowToast emits only the transient on-screen message.
func (n *Notifier) ShowToast(level, message string) {
	if n.sinks.Toast == nil {
		return
	}
	n.sinks.Toast(Toast{
		Level:    level,
		Message:  message,
		Duration: DefaultToastDuration,
	})
}

// PlayCue plays the category's audio cue. A no-op when sound is
// disabled or no beep sink is wired; never returns an error upward.
func (n *Notifier) PlayCue(category Category) {
	if n.sinks.Beep == nil {
		return
	}
	if n.prefs.SoundEnabled != nil && !n.prefs.SoundEnabled() {
		return
	}

	freq, duration := cueFor(category)
	if err := n.sinks.Beep(freq, duration); err != nil {
		log.Debug().Err(err).Str("category", string(category)).Msg("audio cue failed")
	}
}

// cueFor maps each category to a distinct tone.
func cueFor(category Category) (float64, time.Duration) {
	switch category {
	case CategoryBid:
		return 880, 120 * time.Millisecond
	case CategorySold:
		return 523, 300 * time.Millisecond
	case CategoryUnsold:
		return 330, 200 * time.Millisecond
	case CategoryStatus:
		return 660, 150 * time.Millisecond
	case CategoryTimer:
		return 990, 80 * time.Millisecond
	case CategoryChat:
		return 740, 100 * time.Millisecond
	default:
		return 600, 100 * time.Millisecond
	}
}
