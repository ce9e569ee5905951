package kunda

import kundacore "github.com/meigma/kunda/core"

// --- Re-exports from core ---

// Record represents one file stored in an archive.
type Record = kundacore.Record

// Prefix is a shared directory prefix discovered during path analysis.
type Prefix = kundacore.Prefix

// FileType classifies a file's content for reporting purposes.
type FileType = kundacore.FileType

// CreateStats summarizes a finished create operation.
type CreateStats = kundacore.CreateStats

// ExtractStats summarizes a finished extract operation.
type ExtractStats = kundacore.ExtractStats

// CreateOption configures archive creation.
type CreateOption = kundacore.CreateOption

// ExtractOption configures archive extraction.
type ExtractOption = kundacore.ExtractOption

// ProgressEvent is a progress update during creation or extraction.
type ProgressEvent = kundacore.ProgressEvent

// ProgressStage identifies the current phase of an operation.
type ProgressStage = kundacore.ProgressStage

// ProgressFunc receives progress updates.
type ProgressFunc = kundacore.ProgressFunc

// File type constants.
const (
	TypeEmpty      = kundacore.TypeEmpty
	TypeText       = kundacore.TypeText
	TypeBinary     = kundacore.TypeBinary
	TypeCompressed = kundacore.TypeCompressed
)

// Progress stage constants.
const (
	StageScanning      = kundacore.StageScanning
	StageAnalyzing     = kundacore.StageAnalyzing
	StageEncoding      = kundacore.StageEncoding
	StageCompressing   = kundacore.StageCompressing
	StageChecksumming  = kundacore.StageChecksumming
	StageWriting       = kundacore.StageWriting
	StageVerifying     = kundacore.StageVerifying
	StageDecompressing = kundacore.StageDecompressing
	StageExtracting    = kundacore.StageExtracting
)

// DefaultPreset is the compression preset used when none is given.
const DefaultPreset = kundacore.DefaultPreset

// DetectType guesses what kind of content a file holds.
var DetectType = kundacore.DetectType

// Creation options re-exported from core.
var (
	CreateWithPreset   = kundacore.CreateWithPreset
	CreateWithChecksum = kundacore.CreateWithChecksum
	CreateWithMaxFiles = kundacore.CreateWithMaxFiles
	CreateWithLogger   = kundacore.CreateWithLogger
	CreateWithProgress = kundacore.CreateWithProgress
)

// Extraction options re-exported from core.
var (
	ExtractWithVerification = kundacore.ExtractWithVerification
	ExtractWithLogger       = kundacore.ExtractWithLogger
	ExtractWithProgress     = kundacore.ExtractWithProgress
)
