// Command yure shows a report of significant 2022 earthquakes around El Salvador.
package main

import (
	"fmt"
	"os"

	"github.com/ka2n/yure/cli"
	"github.com/ka2n/yure/log"
	"github.com/morikuni/failure/v2"
)

func main() {
	if err := cli.Run(); err != nil {
		var userMessage string
		if fmsg := failure.MessageOf(err); fmsg != "" {
			userMessage = fmsg.String()
		} else {
			userMessage = err.Error()
		}
		log.Debug("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", userMessage)
		os.Exit(1)
	}
}
