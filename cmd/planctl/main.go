// Command planctl runs the planner engine over a YAML workspace file
// holding a catalog, a course history and a plan.
package main

import (
	"os"

	"github.com/yigit/courseplanner/internal/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("planctl failed")
		os.Exit(1)
	}
}
