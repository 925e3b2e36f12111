package clicks

import "fmt"

type MouseButton uint8

const (
	Left MouseButton = iota + 1
	Middle
	Right
	WheelUp
	WheelDown
	Forward
	Back
)

var buttonNames = map[MouseButton]string{
	Left:      "left",
	Middle:    "middle",
	Right:     "right",
	WheelUp:   "up",
	WheelDown: "down",
	Forward:   "forward",
	Back:      "back",
}

func (b MouseButton) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("button%d", uint8(b))
}

func ParseMouseButton(name string) (MouseButton, error) {
	for button, n := range buttonNames {
		if n == name {
			return button, nil
		}
	}
	return 0, fmt.Errorf("unknown mouse button: %s", name)
}

// ButtonFromProtocol maps the button number of an i3bar click event.
func ButtonFromProtocol(n int) (MouseButton, bool) {
	switch n {
	case 1:
		return Left, true
	case 2:
		return Middle, true
	case 3:
		return Right, true
	case 4:
		return WheelUp, true
	case 5:
		return WheelDown, true
	case 9:
		return Forward, true
	case 8:
		return Back, true
	}
	return 0, false
}
