package bars

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/reusee/taibar/widgets"
)

// header starts the i3bar protocol stream.
type header struct {
	Version     int  `json:"version"`
	ClickEvents bool `json:"click_events"`
}

type i3Block struct {
	FullText  string `json:"full_text"`
	ShortText string `json:"short_text,omitempty"`
	Name      string `json:"name"`
	Instance  string `json:"instance"`
	Color     string `json:"color,omitempty"`
	Urgent    bool   `json:"urgent,omitempty"`
}

var stateColors = map[widgets.State]string{
	widgets.StateInfo:     "#81a1c1",
	widgets.StateGood:     "#a3be8c",
	widgets.StateWarning:  "#ebcb8b",
	widgets.StateCritical: "#bf616a",
}

func toI3Block(name string, id int, widget widgets.Widget) i3Block {
	return i3Block{
		FullText:  widget.FullText(),
		ShortText: widget.Short(),
		Name:      name,
		Instance:  strconv.Itoa(id),
		Color:     stateColors[widget.State],
		Urgent:    widget.State == widgets.StateCritical,
	}
}

type clickEvent struct {
	Name      string   `json:"name"`
	Instance  string   `json:"instance"`
	Button    int      `json:"button"`
	Modifiers []string `json:"modifiers"`
}

// readClicks decodes the endless click array i3bar writes to stdin.
func readClicks(r io.Reader, yield func(clickEvent) bool) error {
	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		var ev clickEvent
		if err := dec.Decode(&ev); err != nil {
			return err
		}
		if !yield(ev) {
			return nil
		}
	}
	return nil
}
