package kunda

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectType(t *testing.T) {
	random := make([]byte, 4096)
	rand.New(rand.NewSource(1)).Read(random)

	tests := []struct {
		name string
		data []byte
		want FileType
	}{
		{"empty", nil, TypeEmpty},
		{"text", []byte("package kunda\n\nfunc main() {}\n"), TypeText},
		{"text with tabs and crlf", []byte("a\tb\r\nc\r\n"), TypeText},
		{"gzip signature", []byte{0x1f, 0x8b, 0x08, 0x00}, TypeCompressed},
		{"zip signature", []byte("PK\x03\x04rest"), TypeCompressed},
		{"bzip2 signature", []byte("BZh91AY"), TypeCompressed},
		{"xz signature", []byte{0xfd, '7', 'z', 'X', 'Z', 0x00, 0x00}, TypeCompressed},
		{"png signature", []byte("\x89PNG\r\n\x1a\nchunk"), TypeCompressed},
		{"jpeg signature", []byte{0xff, 0xd8, 0xff, 0xe0}, TypeCompressed},
		{"structured binary", bytes.Repeat([]byte{0x00, 0x01, 0x02, 0xfe, 0xff}, 1024), TypeBinary},
		{"high entropy without signature", random, TypeCompressed},
		{"mostly printable long sample", []byte(strings.Repeat("almost all text ", 1024) + "\x00\x01"), TypeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectType(tt.data))
		})
	}
}

func TestFileTypeString(t *testing.T) {
	assert.Equal(t, "empty", TypeEmpty.String())
	assert.Equal(t, "text", TypeText.String())
	assert.Equal(t, "binary", TypeBinary.String())
	assert.Equal(t, "compressed", TypeCompressed.String())
}
