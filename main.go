// main is the entry point for the shotline CLI.
package main

import (
	"github.com/rmonroe/shotline/cmd"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/internal/iocache"
)

func main() {
	err := cmd.Execute()

	iocache.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
