// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/ava-labs/tokengate/app"
	"github.com/ava-labs/tokengate/config"
	"github.com/ava-labs/tokengate/utils/perms"
	"github.com/ava-labs/tokengate/version"
)

// GitCommit is set by the build script
var GitCommit string

var exitCode = 0

// main is the primary entry point to tokengate.
func main() {
	defer func() {
		os.Exit(exitCode)
	}()

	c, err := config.GetConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		exitCode = 1
		fmt.Printf("couldn't get daemon config: %s\n", err)
		return
	}

	if c.DisplayVersionAndExit {
		fmt.Print(version.String(GitCommit))
		return
	}

	// Set the log directory permissions to be read write.
	if err := perms.ChmodR(c.LoggingConfig.Directory, true, perms.ReadWriteExecute); err != nil {
		exitCode = 1
		fmt.Printf("failed to restrict the permissions of the log directory with error %s\n", err)
		return
	}

	exitCode = app.Run(app.New(c))
}
