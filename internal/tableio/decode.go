package tableio

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// MaxInputSize bounds the decoded size of a single input.
const MaxInputSize = 512 * 1024 * 1024

var gzipMagic = []byte{0x1f, 0x8b}

// readAll reads r fully, transparently decompressing gzip and converting
// non-UTF-8 text to UTF-8.
func readAll(r io.Reader) ([]byte, error) {
	data, err := readRaw(r)
	if err != nil {
		return nil, err
	}
	return textOf(data)
}

// readRaw reads r fully and decompresses gzip input. Binary formats are
// decoded from these bytes directly.
func readRaw(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if bytes.HasPrefix(data, gzipMagic) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		if data, err = io.ReadAll(io.LimitReader(zr, MaxInputSize+1)); err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("input exceeds %d bytes", MaxInputSize)
	}
	return data, nil
}

// textOf strips a UTF-8 byte order mark and converts other charsets to UTF-8.
func textOf(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	return toUTF8(data)
}

// DetectCharset returns the lower-case charset name of data, "utf-8" when
// the data is already valid UTF-8 or detection fails.
func DetectCharset(data []byte) string {
	if utf8.Valid(data) {
		return "utf-8"
	}
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

func toUTF8(data []byte) ([]byte, error) {
	label := DetectCharset(data)
	if label == "utf-8" {
		return data, nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s input: %w", label, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s input: %w", label, err)
	}
	return out, nil
}
