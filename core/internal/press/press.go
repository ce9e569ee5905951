// Package press maps compression preset names onto concrete LZMA2 encoder
// configurations and performs whole-buffer compression and decompression
// of the archive container.
package press

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// Sentinel errors surfaced by the engine.
var (
	ErrCompress   = errors.New("kunda: compression failed")
	ErrDecompress = errors.New("kunda: decompression failed")
)

// Method identifiers recorded in the archive header. Only MethodLZMAUltra
// is ever produced; the others are reserved by the format.
const (
	MethodZlib      byte = 0
	MethodBzip2     byte = 1
	MethodLZMA      byte = 2
	MethodLZMAUltra byte = 3
)

const mib = 1 << 20

// Dictionary sizing for the bare "ultra" preset.
const (
	targetDictCap = 256 * mib
	minDictCap    = 64 * mib
	maxDictCap    = 1536 * mib
)

// Variant selects between the two encoder configurations.
type Variant uint8

const (
	// VariantLeveled uses the codec's built-in defaults for the preset
	// level. Explicit tuning in Params is deliberately not applied on
	// this path; doing so would change the bytes produced for existing
	// presets.
	VariantLeveled Variant = iota

	// VariantChain applies the full custom filter-chain tuning.
	VariantChain
)

// Params is a fully resolved encoder configuration for one preset.
type Params struct {
	Preset  string
	Level   int
	DictCap int
	Variant Variant

	// Filter-chain tuning, honored only by VariantChain.
	LC    int
	LP    int
	PB    int
	Depth int
}

// Resolve maps a preset name to encoder parameters.
//
// Recognized presets, in evaluation order: "ultra" (level 9, computed
// dictionary, custom chain), "ultra-<N>" (level 9, N MiB dictionary,
// custom chain), "max" (level 9, 256 MiB), "balanced" (level 6, 128 MiB)
// and anything else as "fast" (level 3, 64 MiB). All presets request the
// extreme tuning of their level.
func Resolve(preset string) Params {
	p := Params{
		Preset: preset,
		LC:     3,
		LP:     0,
		PB:     2,
		Depth:  273,
	}
	switch {
	case preset == "ultra":
		p.Level = 9
		p.DictCap = computedDictCap()
		p.Variant = VariantChain
	case strings.HasPrefix(preset, "ultra-"):
		p.Level = 9
		p.Variant = VariantChain
		if n, err := strconv.Atoi(strings.TrimPrefix(preset, "ultra-")); err == nil {
			p.DictCap = n * mib
		}
	case preset == "max":
		p.Level = 9
		p.DictCap = 256 * mib
	case preset == "balanced":
		p.Level = 6
		p.DictCap = 128 * mib
	default:
		p.Level = 3
		p.DictCap = 64 * mib
	}
	return p
}

// computedDictCap picks the dictionary size for the bare "ultra" preset:
// a 256 MiB target rounded down to a power of two and clamped to
// [64 MiB, 1536 MiB]. It is a fixed policy, not a memory probe.
func computedDictCap() int {
	dict := targetDictCap
	rounded := 1
	for rounded < dict {
		rounded <<= 1
	}
	if rounded > dict {
		rounded >>= 1
	}
	dict = rounded
	if dict < minDictCap {
		dict = minDictCap
	}
	if dict > maxDictCap {
		dict = maxDictCap
	}
	return dict
}

// levelDictCap returns the codec's own default dictionary size for a
// preset level. Only the three levels in the preset table occur.
func levelDictCap(level int) int {
	switch level {
	case 9:
		return 64 * mib
	case 6:
		return 8 * mib
	default:
		return 4 * mib
	}
}

// writerConfig translates resolved parameters into an encoder
// configuration. The two variants stay structurally separate: the leveled
// path ignores the requested dictionary size and filter tuning and keeps
// the level defaults.
func (p Params) writerConfig() xz.WriterConfig {
	if p.Variant == VariantChain {
		return xz.WriterConfig{
			DictCap:    p.DictCap,
			CheckSum:   xz.CRC64,
			Properties: &lzma.Properties{LC: p.LC, LP: p.LP, PB: p.PB},
			// The binary-tree matcher always searches its full window;
			// Depth has no separate knob here.
			Matcher: lzma.BinaryTree,
		}
	}
	return xz.WriterConfig{
		DictCap:  levelDictCap(p.Level),
		CheckSum: xz.CRC64,
	}
}

// Compress squeezes the payload according to the named preset and reports
// the method tag to record in the archive header. The whole payload and
// the whole compressed output are resident at once.
func Compress(payload []byte, preset string) ([]byte, byte, error) {
	params := Resolve(preset)
	if params.Variant == VariantChain && params.DictCap <= 0 {
		return nil, 0, fmt.Errorf("%w: preset %q requests an invalid dictionary size", ErrCompress, preset)
	}
	cfg := params.writerConfig()

	var buf bytes.Buffer
	buf.Grow(len(payload)/4 + 4096)

	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: configure encoder for preset %q: %v", ErrCompress, preset, err)
	}
	if _, err := w.Write(payload); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCompress, err)
	}
	if err := w.Close(); err != nil {
		return nil, 0, fmt.Errorf("%w: finish stream: %v", ErrCompress, err)
	}
	return buf.Bytes(), MethodLZMAUltra, nil
}

// Decompress expands a whole compressed stream. The stream format is
// self-describing, so the preset used at compression time is not needed.
// originalSize is the payload size claimed by the archive header; a
// stream that produces a different amount of data fails.
func Decompress(compressed []byte, originalSize int) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}

	// The header size claim is untrusted, so cap the pre-allocation and
	// refuse output beyond the claim instead of trusting it blindly.
	alloc := originalSize
	if alloc > 64*mib {
		alloc = 64 * mib
	}
	buf := bytes.NewBuffer(make([]byte, 0, alloc))
	n, err := io.Copy(buf, io.LimitReader(r, int64(originalSize)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	if n != int64(originalSize) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header claims %d", ErrDecompress, n, originalSize)
	}
	return buf.Bytes(), nil
}
