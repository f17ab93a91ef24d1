// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for a chat session.
//
// # Key Types
//
//   - Message: Immutable chat turn with an ID, text, and author flag
//   - Session: Append-only message sequence plus the current input buffer
//
// # Usage
//
//	sess := model.NewSession()
//	sess.SetInput("Hello!")
//	sess.Append(model.NewUserMessage(sess.Input()))
//	sess.ClearInput()
//
// A Session is owned by the UI loop and is not safe for concurrent use.
package model
