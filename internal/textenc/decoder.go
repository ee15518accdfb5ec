// Package textenc decodes raw file bytes into text. It inspects the
// leading bytes for a byte-order mark, resolves the encoding, and
// surfaces malformed input as an error rather than silently substituting
// replacement characters that would corrupt type inference downstream.
package textenc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

// Canonical encoding names.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
)

// Known byte-order marks, longest first.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Result holds decoded text plus the metadata callers report back.
type Result struct {
	// Text is the decoded content with any BOM removed.
	Text string

	// Encoding is the resolved canonical encoding name.
	Encoding string

	// HasBOM reports whether a byte-order mark was present.
	HasBOM bool
}

// Decode converts raw bytes to text. A BOM overrides the preferred
// encoding; without one, preferred is used, defaulting to UTF-8.
func Decode(data []byte, preferred string) (*Result, error) {
	if enc, bom := detectBOM(data); bom != nil {
		text, err := decodeAs(data[len(bom):], enc)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text, Encoding: enc, HasBOM: true}, nil
	}

	enc, err := resolveEncoding(preferred)
	if err != nil {
		return nil, err
	}
	text, err := decodeAs(data, enc)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text, Encoding: enc}, nil
}

// detectBOM returns the encoding and BOM bytes when the data starts with
// a known byte-order mark.
func detectBOM(data []byte) (string, []byte) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8, bomUTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE, bomUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE, bomUTF16BE
	default:
		return "", nil
	}
}

// resolveEncoding maps a user-supplied encoding name to its canonical
// form. Empty means UTF-8.
func resolveEncoding(name string) (string, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch normalized {
	case "", "utf8", EncodingUTF8:
		return EncodingUTF8, nil
	case "utf16", "utf-16", "utf16le", EncodingUTF16LE:
		return EncodingUTF16LE, nil
	case "utf16be", EncodingUTF16BE:
		return EncodingUTF16BE, nil
	default:
		return "", fmt.Errorf("%w: unknown encoding %q", domain.ErrDecode, name)
	}
}

// decodeAs decodes data (BOM already stripped) as the given encoding.
func decodeAs(data []byte, enc string) (string, error) {
	switch enc {
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: invalid UTF-8 byte sequence", domain.ErrDecode)
		}
		return string(data), nil
	case EncodingUTF16LE:
		return decodeUTF16(data, unicode.LittleEndian)
	case EncodingUTF16BE:
		return decodeUTF16(data, unicode.BigEndian)
	default:
		return "", fmt.Errorf("%w: unknown encoding %q", domain.ErrDecode, enc)
	}
}

// decodeUTF16 reassembles byte pairs into code units via x/text. An odd
// byte count or an unpaired surrogate is a decode error, not a silent
// replacement.
func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("%w: truncated UTF-16 byte pair", domain.ErrDecode)
	}
	decoder := unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder()
	decoded, err := decoder.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	// The x/text decoder substitutes U+FFFD for unpaired surrogates.
	// Treat any substitution as corrupt input.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("%w: malformed UTF-16 sequence", domain.ErrDecode)
	}
	return string(decoded), nil
}
