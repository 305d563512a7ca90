// cmd/trialscope/main.go
package main

import (
	cmd "github.com/mwiater/trialscope/internal/cli"
)

// Build-time variables injected by the release pipeline.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the trialscope CLI application by delegating to the
// cobra root command defined in the trialscope package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
