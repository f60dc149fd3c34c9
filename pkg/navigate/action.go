package navigate

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gliedit/pkg/buffer"
)

// Action is a navigation intent coming from a key binding or a flag.
type Action int

// Navigation actions.
const (
	ActionNone Action = iota
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionTop
	ActionBottom
)

//nolint:gochecknoglobals // Read-only lookup table.
var actionNames = map[Action]string{
	ActionNone:       "none",
	ActionScrollUp:   "up",
	ActionScrollDown: "down",
	ActionPageUp:     "page-up",
	ActionPageDown:   "page-down",
	ActionTop:        "top",
	ActionBottom:     "bottom",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction returns the action named s, as printed by Action.String.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for action, name := range actionNames {
		if name == s {
			return action, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: unknown navigation action %q", buffer.ErrInvalidArguments, s)
}

// Apply returns the viewport after action. Unknown actions are a no-op.
func (v Viewport) Apply(action Action) Viewport {
	switch action {
	case ActionScrollUp:
		return v.ScrollUp()
	case ActionScrollDown:
		return v.ScrollDown()
	case ActionPageUp:
		return v.PageUp()
	case ActionPageDown:
		return v.PageDown()
	case ActionTop:
		return v.Top()
	case ActionBottom:
		return v.Bottom()
	case ActionNone:
		return v
	default:
		return v
	}
}
