package kunda

import "log/slog"

// extractConfig holds configuration for archive extraction.
type extractConfig struct {
	verify   bool
	logger   *slog.Logger
	progress ProgressFunc
}

// ExtractOption configures archive extraction.
type ExtractOption func(*extractConfig)

// ExtractWithVerification controls whether a stored payload digest is
// checked before the payload is trusted. On by default; it has no effect
// on archives written without a checksum.
func ExtractWithVerification(enabled bool) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.verify = enabled
	}
}

// ExtractWithLogger sets the logger for extraction. A nil logger
// discards all output.
func ExtractWithLogger(l *slog.Logger) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.logger = l
	}
}

// ExtractWithProgress registers a callback for progress events.
func ExtractWithProgress(fn ProgressFunc) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.progress = fn
	}
}
