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

package guessinggame

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigError indicates that a configuration value required by the tool is
// missing or invalid. It is returned once at startup, before any network call
// is made.
//
// Value holds the offending value, with secrets masked.
type ConfigError struct {
	Field string
	Value string
	err   error
}

// Error implements error interface.
func (e ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid config %s: %v", e.Field, e.err)
	}
	return fmt.Sprintf("invalid config %s (%s): %v", e.Field, e.Value, e.err)
}

// Unwrap returns the original error.
func (e ConfigError) Unwrap() error {
	return e.err
}

// NewConfigError constructs and returns a ConfigError.
func NewConfigError(field, value string, err error) error {
	return errors.WithStack(ConfigError{
		Field: field,
		Value: value,
		err:   err,
	})
}

// ErrMissing is the cause of a ConfigError for a required value that was not set.
var ErrMissing = errors.New("value not set")

// IsConfigError returns true if the err or any error it wraps is a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr ConfigError
	return errors.As(err, &cfgErr)
}
