// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/carter/internal/util"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single turn in the conversation.
// Fields are unexported so a message cannot change after it is created.
type Message struct {
	id        string
	text      string
	isUser    bool
	createdAt time.Time
}

// NewUserMessage creates a message authored by the user.
func NewUserMessage(text string) Message {
	return newMessage(text, true)
}

// NewBotMessage creates a message authored by the completion API.
func NewBotMessage(text string) Message {
	return newMessage(text, false)
}

func newMessage(text string, isUser bool) Message {
	return Message{
		id:        uuid.NewString(),
		text:      text,
		isUser:    isUser,
		createdAt: time.Now(),
	}
}

// ID returns the message's unique identifier.
func (m Message) ID() string { return m.id }

// Text returns the message content.
func (m Message) Text() string { return m.text }

// IsUser reports whether the user wrote the message.
func (m Message) IsUser() bool { return m.isUser }

// CreatedAt returns when the message was created.
func (m Message) CreatedAt() time.Time { return m.createdAt }

// Author returns a display label for the message author.
func (m Message) Author() string {
	if m.isUser {
		return "You"
	}
	return "Bot"
}

// Preview returns the text on one line, truncated to maxWidth terminal columns.
func (m Message) Preview(maxWidth int) string {
	return util.TruncateWidth(util.SingleLine(m.text), maxWidth)
}
