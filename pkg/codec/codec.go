// Package codec converts file bytes to text and back using a declared
// character encoding. Names are resolved with the WHATWG encoding index, so
// "utf-8", "latin1", "windows-1252" and "shift_jis" are all accepted.
package codec

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no encoding is declared
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding is returned by Lookup for a name the index does not know
var ErrUnknownEncoding = errors.Base("unknown encoding")

// 🔤 Codec decodes and encodes text in one declared encoding
type Codec struct {
	name string
	enc  encoding.Encoding
}

// UTF8 returns the default codec
func UTF8() *Codec {
	return &Codec{name: DefaultEncoding, enc: unicode.UTF8}
}

// 🎯 Lookup resolves an encoding by name; an empty name means UTF-8
func Lookup(name string) (*Codec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UTF8(), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = strings.ToLower(name)
	}

	if canonical == DefaultEncoding {
		return UTF8(), nil
	}

	return &Codec{name: canonical, enc: enc}, nil
}

// Name returns the canonical encoding name
func (c *Codec) Name() string {
	return c.name
}

func (c *Codec) isUTF8() bool {
	return c.name == DefaultEncoding
}

// 📖 Decode converts raw file bytes to text. Invalid input is an error, never
// silently replaced.
func (c *Codec) Decode(raw []byte) (string, error) {
	if c.isUTF8() {
		if off := invalidUTF8Offset(raw); off >= 0 {
			return "", errors.Errorf("invalid %s byte 0x%02x at offset %d", c.name, raw[off], off)
		}
		return string(raw), nil
	}

	out, err := c.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.Errorf("decoding %s: %w", c.name, err)
	}

	// x/text decoders substitute U+FFFD for bytes the charset does not define
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", errors.Errorf("input contains bytes undefined in %s", c.name)
	}

	return string(out), nil
}

// 💾 Encode converts text back to bytes in the declared encoding. Characters
// the encoding cannot represent are an error.
func (c *Codec) Encode(s string) ([]byte, error) {
	if c.isUTF8() {
		if !utf8.ValidString(s) {
			return nil, errors.Errorf("text is not valid %s", c.name)
		}
		return []byte(s), nil
	}

	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Errorf("encoding %s: %w", c.name, err)
	}
	return out, nil
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
