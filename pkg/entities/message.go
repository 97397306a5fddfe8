package entities

import "strings"

type User struct {
	ID        string
	UserName  string
	FirstName string
}

// DisplayName returns @username when the user has one, first name otherwise.
func (u User) DisplayName() string {
	if u.UserName != "" {
		return "@" + u.UserName
	}

	return u.FirstName
}

type Message struct {
	Sender User
	ChatID int64
	Text   string

	// Command is the bot command without the leading slash and bot mention,
	// empty if the message is not a command
	Command string
}

func (m *Message) IsCommand() bool {
	return m.Command != ""
}

// IsButton reports whether the message text is one of the keyboard labels.
func (m *Message) IsButton() bool {
	return IsKeyboardLabel(strings.TrimSpace(m.Text))
}
