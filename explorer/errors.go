// Copyright (c) 2022 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/daltonclaybrook/GuessingGame
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package explorer

import (
	"fmt"

	"github.com/pkg/errors"
)

// AlreadyVerifiedError indicates that the source of the contract at the
// address is already verified on the explorer.
type AlreadyVerifiedError struct {
	Address string
}

// Error implements error interface.
func (e AlreadyVerifiedError) Error() string {
	if e.Address == "" {
		return "contract is already verified"
	}
	return fmt.Sprintf("contract at %s is already verified", e.Address)
}

// NewAlreadyVerifiedError constructs and returns an AlreadyVerifiedError.
func NewAlreadyVerifiedError(addr string) error {
	return errors.WithStack(AlreadyVerifiedError{Address: addr})
}

// RejectedError indicates that the explorer processed the request and
// responded with an error. Result holds the message returned by the explorer.
type RejectedError struct {
	Action string
	Result string
}

// Error implements error interface.
func (e RejectedError) Error() string {
	return fmt.Sprintf("explorer rejected %s: %s", e.Action, e.Result)
}

// NewRejectedError constructs and returns a RejectedError.
func NewRejectedError(action, result string) error {
	return errors.WithStack(RejectedError{Action: action, Result: result})
}

// IsAlreadyVerified returns true if the error is or wraps an AlreadyVerifiedError.
func IsAlreadyVerified(err error) bool {
	return errors.As(err, &AlreadyVerifiedError{})
}
