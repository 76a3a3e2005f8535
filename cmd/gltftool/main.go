// gltftool writes scene descriptions as glTF 2.0 documents with embedded buffers.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfw/internal/logger"
)

func main() {
	os.Exit(Main())
}

// Main runs the command line and returns the process exit code.
func Main() int {
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
