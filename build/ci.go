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
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

const (
	binaryPkg  = "./cmd/guessinggame"
	mainPkg    = "main"
	integTag   = "integration"
	minGoMinor = 17
)

// Packages that have no tests or only hold test helpers.
var excludedPkgs = []string{"/build", "test"}

var (
	redf   = color.New(color.FgRed).SprintfFunc()
	greenf = color.New(color.FgGreen).SprintfFunc()
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./build install|test|integ|lint [options]")
		os.Exit(1)
	}
	if err := checkGoVersion(runtime.Version()); err != nil {
		fmt.Println(redf("Error in go environment: %v", err))
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "install":
		err = install()
	case "test":
		err = test(os.Args[2:], false)
	case "integ":
		err = test(os.Args[2:], true)
	case "lint":
		err = run(exec.Command("golangci-lint", "run", "./..."))
	default:
		err = errors.Errorf("unknown command %s", os.Args[1])
	}
	if err != nil {
		fmt.Println(redf("%s failed: %v", os.Args[1], err))
		os.Exit(1)
	}
	fmt.Println(greenf("%s successful", os.Args[1]))
}

func checkGoVersion(goVersion string) error {
	if strings.Contains(goVersion, "devel") {
		return errors.Errorf("development version of golang detected - %s", goVersion)
	}
	var major, minor int
	if _, err := fmt.Sscanf(goVersion, "go%d.%d", &major, &minor); err != nil {
		return errors.Wrapf(err, "parsing go version %s", goVersion)
	}
	if major != 1 || minor < minGoMinor {
		return errors.Errorf("detected go version - %s. At least go1.%d required", goVersion, minGoMinor)
	}
	return nil
}

func install() error {
	version, gitCommitID := versionInfo()
	fmt.Printf("Installing guessinggame %s (%s)\n", version, gitCommitID)
	return run(exec.Command("go", "install", "-ldflags", ldflags(version, gitCommitID), binaryPkg))
}

// versionInfo returns the tag and the commit of the working tree. Both are
// empty when git is not available.
func versionInfo() (version, gitCommitID string) {
	if out, err := pipe(exec.Command("git", "describe", "--tags", "--exact-match")); err == nil {
		version = strings.TrimSpace(out.String())
	}
	if out, err := pipe(exec.Command("git", "rev-parse", "--short", "HEAD")); err == nil {
		gitCommitID = strings.TrimSpace(out.String())
	}
	return version, gitCommitID
}

// ldflags sets the variables printed by the version command.
func ldflags(version, gitCommitID string) string {
	return fmt.Sprintf("-X %s.version=%s -X %s.gitCommitID=%s", mainPkg, version, mainPkg, gitCommitID)
}

func test(userOpts []string, integ bool) error {
	out, err := pipe(exec.Command("go", "list", "./..."))
	if err != nil {
		return errors.WithMessage(err, out.String())
	}
	opts := []string{"-cover", "-count=1"}
	if integ {
		opts = append(opts, "-tags="+integTag)
	}
	fmt.Printf("Running unit tests with options: %v %v\n", opts, userOpts)

	args := append([]string{"test"}, opts...)
	args = append(args, userOpts...)
	args = append(args, packagesToTest(strings.Fields(out.String()))...)
	return run(exec.Command("go", args...))
}

func packagesToTest(pkgs []string) []string {
	filtered := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		if !isExcluded(pkg) {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}

func isExcluded(pkg string) bool {
	for _, suffix := range excludedPkgs {
		if strings.HasSuffix(pkg, suffix) {
			return true
		}
	}
	return false
}

func run(cmd *exec.Cmd) error {
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return errors.Wrapf(cmd.Run(), "running %s", strings.Join(cmd.Args, " "))
}
