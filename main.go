package main

import (
	"errors"
	"os"

	"github.com/eelitiawan/taskweave/cmd"
	twerrors "github.com/eelitiawan/taskweave/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Tool failures must surface the external tool's own exit status,
		// so the structured error carries the code to use.
		var terr *twerrors.TaskweaveError
		if errors.As(err, &terr) {
			os.Exit(terr.ExitCode())
		}
		os.Exit(1)
	}
}
