package clicks

import "slices"

// DefaultAction is an action a block binds to a button unless the user
// config overrides it. An empty Modifier matches clicks with no modifier.
type DefaultAction struct {
	Button   MouseButton
	Modifier string
	Action   string
}

// Binding is a user-configured click handler.
type Binding struct {
	Button   string `json:"button"`
	Modifier string `json:"modifier,omitempty"`
	Action   string `json:"action,omitempty"`
	Update   bool   `json:"update,omitempty"`
}

type Click struct {
	Button    MouseButton
	Modifiers []string
}

func (c Click) matches(button MouseButton, modifier string) bool {
	if c.Button != button {
		return false
	}
	if modifier == "" {
		return len(c.Modifiers) == 0
	}
	return slices.Contains(c.Modifiers, modifier)
}

// Outcome is what a click resolves to.
type Outcome struct {
	Action string
	Update bool
}

func (o Outcome) Empty() bool {
	return o.Action == "" && !o.Update
}

// Resolve maps a click to an outcome. User bindings win over defaults;
// a binding with a modifier wins over one without.
func Resolve(bindings []Binding, defaults []DefaultAction, click Click) Outcome {
	var matched *Binding
	for i, binding := range bindings {
		button, err := ParseMouseButton(binding.Button)
		if err != nil || !click.matches(button, binding.Modifier) {
			continue
		}
		if matched == nil || matched.Modifier == "" && binding.Modifier != "" {
			matched = &bindings[i]
		}
	}
	if matched != nil {
		return Outcome{
			Action: matched.Action,
			Update: matched.Update,
		}
	}

	var found *DefaultAction
	for i, action := range defaults {
		if !click.matches(action.Button, action.Modifier) {
			continue
		}
		if found == nil || found.Modifier == "" && action.Modifier != "" {
			found = &defaults[i]
		}
	}
	if found != nil {
		return Outcome{
			Action: found.Action,
		}
	}
	return Outcome{}
}
