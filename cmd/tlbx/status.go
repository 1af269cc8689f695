package main

import (
	"os"

	charmlog "charm.land/log/v2"
)

// status is the CLI's human-facing line logger — distinct from the
// structured slog output the engine itself emits, which goes to the
// --log-level/--log-format handler set up in main. status always writes to
// stderr so stdout stays clean for command output that pipes (to-json or
// bin-to-json without -o).
var status = charmlog.NewWithOptions(os.Stderr, charmlog.Options{ReportTimestamp: false})
