package regions

import (
	"fmt"
	"io"
	"os"
)

// Config holds caller options for region detection.
type Config struct {
	LogWarnings bool      // Whether to report soft strategy failures
	Logger      io.Writer // Destination for warnings (nil = stdout)
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogWarnings: true,
		Logger:      nil, // stdout
	}
}

// getLogger returns the io.Writer to use for warnings, defaulting to
// os.Stdout when none is configured.
func getLogger(config Config) io.Writer {
	if config.Logger == nil {
		return os.Stdout
	}
	return config.Logger
}

func logWarning(config Config, format string, args ...any) {
	if !config.LogWarnings {
		return
	}
	fmt.Fprintf(getLogger(config), "Warning: "+format+"\n", args...)
}
