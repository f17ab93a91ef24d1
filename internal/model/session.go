// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// SESSION
// =============================================================================

// Session holds the ordered messages of one running instance and the text
// currently being typed. Messages are only ever appended.
type Session struct {
	messages []Message
	input    string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Append adds msg to the end of the sequence.
func (s *Session) Append(msg Message) {
	s.messages = append(s.messages, msg)
}

// Messages returns a copy of the sequence, oldest first.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages.
func (s *Session) Len() int {
	return len(s.messages)
}

// IsEmpty returns true if no message has been appended yet.
func (s *Session) IsEmpty() bool {
	return len(s.messages) == 0
}

// Last returns the most recent message, if any.
func (s *Session) Last() (Message, bool) {
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// Input returns the current input buffer.
func (s *Session) Input() string {
	return s.input
}

// SetInput replaces the input buffer.
func (s *Session) SetInput(text string) {
	s.input = text
}

// ClearInput resets the input buffer to empty.
func (s *Session) ClearInput() {
	s.input = ""
}
