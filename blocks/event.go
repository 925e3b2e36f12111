package blocks

import "fmt"

type eventKind uint8

const (
	actionEvent eventKind = iota + 1
	updateRequestEvent
)

// BlockEvent is an instruction delivered to one block: a named action or an
// update request. Events compare by value.
type BlockEvent struct {
	kind   eventKind
	action string
}

func Action(name string) BlockEvent {
	return BlockEvent{
		kind:   actionEvent,
		action: name,
	}
}

var UpdateRequest = BlockEvent{
	kind: updateRequestEvent,
}

func (e BlockEvent) IsUpdateRequest() bool {
	return e.kind == updateRequestEvent
}

// ActionName returns the action name and whether e is an action.
func (e BlockEvent) ActionName() (string, bool) {
	return e.action, e.kind == actionEvent
}

func (e BlockEvent) String() string {
	switch e.kind {
	case actionEvent:
		return fmt.Sprintf("action(%s)", e.action)
	case updateRequestEvent:
		return "update request"
	}
	return "invalid event"
}
