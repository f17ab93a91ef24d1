// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/carter/internal/completion"
)

// Exit codes returned by Execute.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

// ReplyError is returned when a completion fails. Its display text has
// already been written to stderr by the time it is returned.
type ReplyError struct {
	Result completion.Result
}

func (e *ReplyError) Error() string {
	return e.Result.DisplayText()
}

func (e *ReplyError) Unwrap() error {
	return e.Result.Err
}

// displayError writes err to w unless it was already shown.
func displayError(w io.Writer, err error) {
	var re *ReplyError
	if errors.As(err, &re) {
		return
	}
	fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("Error:"), err)
}
