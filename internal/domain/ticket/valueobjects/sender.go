package valueobjects

import "fmt"

// Sender is the role a message is attributed to, independent of the author id.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAdmin Sender = "admin"
)

func (s Sender) String() string {
	return string(s)
}

func (s Sender) IsValid() bool {
	return s == SenderUser || s == SenderAdmin
}

func (s Sender) IsStaff() bool {
	return s == SenderAdmin
}

func NewSender(s string) (Sender, error) {
	sender := Sender(s)
	if !sender.IsValid() {
		return "", fmt.Errorf("invalid sender: %s", s)
	}
	return sender, nil
}
