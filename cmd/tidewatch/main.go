package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ngmaloney/tidewatch/internal/logger"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	err := rootCmd.Execute()
	_ = logger.Close()
	if err != nil {
		var ece *exitCodeError
		if errors.As(err, &ece) {
			if ece.msg != "" {
				fmt.Fprintln(os.Stderr, ece.msg)
			}
			os.Exit(ece.code)
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(ExitError)
	}
}
