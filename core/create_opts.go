package kunda

import "log/slog"

// createConfig holds configuration for archive creation.
type createConfig struct {
	preset   string
	checksum bool
	maxFiles int
	logger   *slog.Logger
	progress ProgressFunc
}

// CreateOption configures archive creation.
type CreateOption func(*createConfig)

// CreateWithPreset selects the compression preset. Unrecognized names
// fall back to the fast preset; the default is DefaultPreset.
func CreateWithPreset(preset string) CreateOption {
	return func(cfg *createConfig) {
		cfg.preset = preset
	}
}

// CreateWithChecksum controls whether a digest of the compressed payload
// is stored in the archive. On by default.
func CreateWithChecksum(enabled bool) CreateOption {
	return func(cfg *createConfig) {
		cfg.checksum = enabled
	}
}

// CreateWithMaxFiles limits the number of files included in the archive.
// Zero uses DefaultMaxFiles. Negative means no limit.
func CreateWithMaxFiles(n int) CreateOption {
	return func(cfg *createConfig) {
		cfg.maxFiles = n
	}
}

// CreateWithLogger sets the logger for creation. A nil logger discards
// all output.
func CreateWithLogger(l *slog.Logger) CreateOption {
	return func(cfg *createConfig) {
		cfg.logger = l
	}
}

// CreateWithProgress registers a callback for progress events.
func CreateWithProgress(fn ProgressFunc) CreateOption {
	return func(cfg *createConfig) {
		cfg.progress = fn
	}
}
