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

package main

import (
	"bytes"
	"os/exec"

	"github.com/pkg/errors"
)

// pipe runs the commands, connecting the stdout of each one to the stdin of the
// next and returns the stdout of the last one.
func pipe(cmds ...*exec.Cmd) (bytes.Buffer, error) {
	stdin := &bytes.Buffer{}
	stdout := &bytes.Buffer{}
	for _, cmd := range cmds {
		stdout = &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd.Stdin = stdin
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err := cmd.Run(); err != nil {
			return *stderr, errors.Wrapf(err, "running %s", cmd.Path)
		}
		stdin = stdout
	}
	return *stdout, nil
}
