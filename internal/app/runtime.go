package app

import (
	"os"
	"sync"
)

// TestModeEnv disables process startup when set to "1". The testing package
// sets it for every test binary that imports it.
const TestModeEnv = "ODYSSEY_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	return os.Getenv(TestModeEnv) == "1"
})

// InTestMode reports whether cmd/portal should return before dialing
// Postgres and Redis.
func InTestMode() bool {
	return testMode()
}
