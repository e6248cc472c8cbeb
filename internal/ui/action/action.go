// Package action defines how popups report results to the app.
package action

// Action is a result produced by a UI component. ActionType identifies it
// in logs.
type Action interface {
	ActionType() string
}

// Msg wraps an action with the name of the component that produced it.
type Msg struct {
	Source string
	Action Action
}
