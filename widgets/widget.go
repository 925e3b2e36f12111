package widgets

import "strings"

type State uint8

const (
	StateIdle State = iota
	StateInfo
	StateGood
	StateWarning
	StateCritical
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInfo:
		return "info"
	case StateGood:
		return "good"
	case StateWarning:
		return "warning"
	case StateCritical:
		return "critical"
	}
	return "unknown"
}

// Widget is a snapshot of what a block wants displayed. It is a value; the
// bar keeps its own copy.
type Widget struct {
	Icon      string
	Text      string
	ShortText string
	State     State
}

func (w Widget) WithIcon(icon string) Widget {
	w.Icon = icon
	return w
}

func (w Widget) WithText(text string) Widget {
	w.Text = text
	return w
}

func (w Widget) WithShortText(text string) Widget {
	w.ShortText = text
	return w
}

func (w Widget) WithState(state State) Widget {
	w.State = state
	return w
}

func (w Widget) FullText() string {
	return join(w.Icon, w.Text)
}

func (w Widget) Short() string {
	if w.ShortText == "" {
		return ""
	}
	return join(w.Icon, w.ShortText)
}

func join(icon, text string) string {
	switch {
	case icon == "":
		return text
	case text == "":
		return icon
	}
	return strings.TrimSpace(icon) + " " + text
}
