package kunda

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

const (
	StageScanning ProgressStage = iota
	StageAnalyzing
	StageEncoding
	StageCompressing
	StageChecksumming
	StageWriting
	StageVerifying
	StageDecompressing
	StageExtracting
)

// String returns a short human-readable phase name.
func (s ProgressStage) String() string {
	switch s {
	case StageScanning:
		return "scanning"
	case StageAnalyzing:
		return "analyzing"
	case StageEncoding:
		return "encoding"
	case StageCompressing:
		return "compressing"
	case StageChecksumming:
		return "checksumming"
	case StageWriting:
		return "writing"
	case StageVerifying:
		return "verifying"
	case StageDecompressing:
		return "decompressing"
	case StageExtracting:
		return "extracting"
	default:
		return "unknown"
	}
}

// ProgressEvent is a progress update during creation or extraction.
// Path, Type and Size describe the current file on per-file events;
// Files and Bytes accumulate across the operation.
type ProgressEvent struct {
	Stage ProgressStage
	Path  string
	Type  FileType
	Size  uint64
	Files int
	Bytes uint64
}

// ProgressFunc receives progress updates. It is called synchronously from
// the pipeline and should be cheap.
type ProgressFunc func(ProgressEvent)
