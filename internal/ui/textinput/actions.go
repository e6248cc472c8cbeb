package textinput

import (
	"github.com/llehouerou/xiamiu/internal/ui/action"
)

// Source identifies messages coming from this popup.
const Source = "textinput"

// Result carries the submitted field values, in field order.
type Result struct {
	Values   []string
	Context  any  // passed through from Start
	Canceled bool // esc pressed
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "textinput.result" }

// Value returns the i-th field value, or "" when out of range.
func (a Result) Value(i int) string {
	if i < 0 || i >= len(a.Values) {
		return ""
	}
	return a.Values[i]
}

// ActionMsg creates an action.Msg for a textinput action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
