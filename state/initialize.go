package state

import (
	"os"
	"time"

	"go.uber.org/zap"
)

// newLocalEnv creates a new LocalEnv instance with default values, logger is
// a no-op until configuration is processed.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Log:    zap.NewNop(),
		Stdout: os.Stdout,
		start:  time.Now(),
	}
}
