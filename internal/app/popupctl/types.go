// Package popupctl manages the modal popups of the app.
package popupctl

// Type identifies which popup is currently active.
type Type int

const (
	None Type = iota
	Help
	TextInput
	Confirm
	Error
)

// Priority defines which popup takes precedence (highest priority first).
var Priority = []Type{
	Error,
	Confirm,
	Help,
	TextInput,
}

// RenderOrder defines the order popups are rendered (bottom to top).
var RenderOrder = []Type{
	TextInput,
	Help,
	Confirm,
	Error,
}

// InputMode identifies what the text input popup collects.
type InputMode int

const (
	InputNone    InputMode = iota
	InputFilter            // list page name filter
	InputSearch            // catalog search query
	InputLogin             // username and password
	InputComment           // comment text and rating
)
