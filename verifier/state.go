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

package verifier

import (
	"fmt"

	"github.com/pkg/errors"
)

// State of the verification task.
type State string

// Enumeration of states. The task moves through them in the order listed,
// except for Failed, which can be entered from any state and is terminal.
const (
	Start            State = "START"
	SubmittedMain    State = "SUBMITTED_MAIN"
	FetchedTokenAddr State = "FETCHED_TOKEN_ADDR"
	SubmittedToken   State = "SUBMITTED_TOKEN"
	Done             State = "DONE"
	Failed           State = "FAILED"
)

var next = map[State]State{
	Start:            SubmittedMain,
	SubmittedMain:    FetchedTokenAddr,
	FetchedTokenAddr: SubmittedToken,
	SubmittedToken:   Done,
}

// Next returns the state following s on success. Done and Failed have no next state.
func (s State) Next() (State, bool) {
	n, ok := next[s]
	return n, ok
}

// IsTerminal returns true for Done and Failed.
func (s State) IsTerminal() bool {
	return s == Done || s == Failed
}

// StepError is returned when the step transitioning the task to State fails.
type StepError struct {
	State State
	err   error
}

// Error implements error interface.
func (e StepError) Error() string {
	return fmt.Sprintf("step to %s failed: %v", e.State, e.err)
}

// Unwrap returns the original error.
func (e StepError) Unwrap() error {
	return e.err
}

// NewStepError constructs and returns a StepError.
func NewStepError(state State, err error) error {
	return errors.WithStack(StepError{State: state, err: err})
}
