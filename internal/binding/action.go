package binding

import (
	"fmt"
	"strings"
)

// ActionKind discriminates the Action variants. New kinds (gestures,
// macros) extend this enum without touching the dispatch path.
type ActionKind uint8

const (
	// ActionCommand spawns an external process.
	ActionCommand ActionKind = iota
	// ActionKeyCombo injects a keyboard combination.
	ActionKeyCombo
)

// Action is the payload a binding fires. Kind selects which field is
// meaningful.
type Action struct {
	Kind ActionKind
	Argv []string // ActionCommand
	Keys []string // ActionKeyCombo
}

// Command builds a process-spawning action.
func Command(argv ...string) Action {
	return Action{Kind: ActionCommand, Argv: argv}
}

// KeyCombo builds a key-injection action.
func KeyCombo(keys ...string) Action {
	return Action{Kind: ActionKeyCombo, Keys: keys}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionCommand:
		return "command(" + strings.Join(a.Argv, " ") + ")"
	case ActionKeyCombo:
		return "key_combo(" + strings.Join(a.Keys, "+") + ")"
	}
	return fmt.Sprintf("action(%d)", uint8(a.Kind))
}
