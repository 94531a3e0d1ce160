// Package clock renders the UTC date and time readout of the test card.
package clock

import (
	"fmt"
	"time"
)

// TextTarget is any element that can display a line of text
type TextTarget interface {
	SetText(s string)
}

// View writes the current UTC date and time into its two targets
type View struct {
	date TextTarget
	time TextTarget
}

// New binds the view to its date and time targets
func New(dateTarget, timeTarget TextTarget) *View {
	return &View{date: dateTarget, time: timeTarget}
}

// Tick is the per-frame entry point
func (v *View) Tick(now time.Time) {
	v.Refresh(now)
}

// Refresh recomputes both strings from now
func (v *View) Refresh(now time.Time) {
	v.date.SetText(FormatDate(now))
	v.time.SetText(FormatTime(now))
}

// FormatDate renders YYYY-MM-DD in UTC.
// The day field is the zero-padded weekday index (Sunday = 00), not the
// day of the month. This matches the deployed card and is kept until the
// owners decide otherwise.
func FormatDate(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), int(t.Weekday()))
}

// FormatTime renders HH:MM:SS.mmmZ in UTC
func FormatTime(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%02d:%02d:%02d.%03dZ",
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}
