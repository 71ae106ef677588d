package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	toasts   []Toast
	desktops []string
	beeps    []float64
}

func recordingSinks(r *recorded) Sinks {
	return Sinks{
		Toast:   func(t Toast) { r.toasts = append(r.toasts, t) },
		Desktop: func(title, body string) error { r.desktops = append(r.desktops, body); return nil },
		Beep:    func(freq float64, d time.Duration) error { r.beeps = append(r.beeps, freq); return nil },
	}
}

func allowAll() Prefs {
	return Prefs{
		SoundEnabled:    func() bool { return true },
		CategoryEnabled: func(Category) bool { return true },
	}
}

func TestNotify_FansOutToAllSinks(t *testing.T) {
	var r recorded
	n := NewNotifier(recordingSinks(&r), allowAll())

	n.Notify(CategorySold, "success", "Kohli sold for 1200!")

	require.Len(t, r.toasts, 1)
	assert.Equal(t, "success", r.toasts[0].Level)
	assert.Equal(t, DefaultToastDuration, r.toasts[0].Duration)
	assert.Equal(t, []string{"Kohli sold for 1200!"}, r.desktops)
	assert.Equal(t, []float64{523}, r.beeps)
}

func TestNotify_DisabledCategoryStillToasts(t *testing.T) {
	var r recorded
	prefs := allowAll()
	prefs.CategoryEnabled = func(c Category) bool { return c != CategoryBid }
	n := NewNotifier(recordingSinks(&r), prefs)

	n.Notify(CategoryBid, "info", "new bid")

	assert.Len(t, r.toasts, 1, "toasts bypass category preferences")
	assert.Empty(t, r.desktops)
	assert.Empty(t, r.beeps)
}

func TestPlayCue_SoundDisabledIsNoOp(t *testing.T) {
	var r recorded
	prefs := allowAll()
	prefs.SoundEnabled = func() bool { return false }
	n := NewNotifier(recordingSinks(&r), prefs)

	n.PlayCue(CategoryChat)
	assert.Empty(t, r.beeps)
}

func TestPlayCue_DistinctTonesPerCategory(t *testing.T) {
	var r recorded
	n := NewNotifier(recordingSinks(&r), allowAll())

	categories := []Category{CategoryBid, CategorySold, CategoryUnsold, CategoryStatus, CategoryTimer, CategoryChat}
	for _, c := range categories {
		n.PlayCue(c)
	}

	require.Len(t, r.beeps, len(categories))
	seen := map[float64]bool{}
	for _, freq := range r.beeps {
		assert.False(t, seen[freq], "each category gets its own tone")
		seen[freq] = true
	}
}

func TestNilSinksAreSafe(t *testing.T) {
	n := NewNotifier(Sinks{}, Prefs{})
	assert.NotPanics(t, func() {
		n.Notify(CategoryStatus, "info", "auction started")
		n.ShowToast("info", "hello")
		n.PlayCue(CategoryTimer)
	})
}

func TestBeepErrorIsSwallowed(t *testing.T) {
	n := NewNotifier(Sinks{
		Beep: func(float64, time.Duration) error { return assert.AnError },
	}, allowAll())

	assert.NotPanics(t, func() { n.PlayCue(CategoryBid) })
}
