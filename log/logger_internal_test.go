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

package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewLoggerWithField(t *testing.T) {
	t.Run("happy_without_init", func(t *testing.T) {
		setCleanup(t)
		logger = nil

		var l Logger
		assert.NotPanics(t, func() {
			l = NewLoggerWithField("module", "deployer")
		})
		require.NotNil(t, l)
		assert.Equal(t, logrus.DebugLevel, logger.Level)
		assert.Equal(t, logrus.DebugLevel, l.(*logrus.Entry).Logger.Level)
	})

	t.Run("happy_with_init_stdout", func(t *testing.T) {
		setCleanup(t)
		logger = nil
		err := InitLogger("error", "")
		require.NoError(t, err)

		var l Logger
		assert.NotPanics(t, func() {
			l = NewLoggerWithField("testkey", "testval")
		})
		require.NotNil(t, l)
		assert.Equal(t, logrus.ErrorLevel, logger.Level)
		assert.Equal(t, logrus.ErrorLevel, l.(*logrus.Entry).Logger.Level)
	})

	t.Run("happy_with_init_file", func(t *testing.T) {
		setCleanup(t)
		logger = nil
		logFile := filepath.Join(t.TempDir(), "deployer.log")

		err := InitLogger("info", logFile)
		require.NoError(t, err)

		l := NewLoggerWithField("testkey", "testval")
		l.Info("test-message")

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "test-message")
		assert.Contains(t, string(content), "testkey=testval")
	})
}

func Test_InitLogger(t *testing.T) {
	t.Run("err_multiple_init", func(t *testing.T) {
		setCleanup(t)
		logger = nil
		err1 := InitLogger("error", "")
		require.NoError(t, err1)
		err2 := InitLogger("info", "")
		require.Error(t, err2)
		t.Log(err2)

		require.NotNil(t, logger)
		assert.Equal(t, logrus.ErrorLevel, logger.Level)
	})

	t.Run("err_invalid_level", func(t *testing.T) {
		setCleanup(t)
		logger = nil
		err := InitLogger("invalid-level", "")
		require.Error(t, err)
		t.Log(err)

		require.Nil(t, logger)
	})

	t.Run("err_setting_up_file", func(t *testing.T) {
		setCleanup(t)
		logger = nil
		// A directory cannot be opened for writing.
		err := InitLogger("error", t.TempDir())
		require.Error(t, err)
		t.Log(err)

		require.Nil(t, logger)
	})
}

func Test_InitLoggerWithOutput(t *testing.T) {
	setCleanup(t)
	logger = nil
	buf := new(bytes.Buffer)
	require.NoError(t, InitLoggerWithOutput("debug", buf))

	l := NewDerivedLoggerWithField(NewLoggerWithField("module", "verifier"), "state", "SUBMITTED_MAIN")
	l.Debug("transition")

	out := buf.String()
	assert.Contains(t, out, "▶ ")
	assert.Contains(t, out, "module=verifier")
	assert.Contains(t, out, "state=SUBMITTED_MAIN")
}

func Test_NewDerivedLoggerWithField_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewDerivedLoggerWithField(nil, "key", "value")
	})
}

// setCleanup backs up the original value of package level logger instance and
// registers a callback to test cleanup to restore it after the test.
func setCleanup(t *testing.T) {
	oldLogger := logger
	t.Cleanup(func() {
		logger = oldLogger
	})
}
