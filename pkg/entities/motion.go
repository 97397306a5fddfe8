package entities

type Motion string

const (
	// MotionButtonClick is a message whose text equals one of the keyboard labels
	MotionButtonClick Motion = "Button click"

	// MotionCommand is a message starting with a slash
	MotionCommand Motion = "Command"

	// MotionKeyboardTyping is any other free-text message
	MotionKeyboardTyping Motion = "Keyboard typing"

	// MotionSystem marks rows written by the bot itself
	MotionSystem Motion = "System"
)
