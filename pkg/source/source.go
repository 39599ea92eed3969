// Package source turns input files and streams into plain text for the
// parser.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"golang.org/x/text/encoding/charmap"
)

// Kind is how a source is decoded.
type Kind string

const (
	KindText Kind = "text"
	KindXLS  Kind = "xls"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

var ErrUnsupported = errors.New("unsupported source")

// maxRows bounds how many spreadsheet rows are read.
const maxRows = 10000

// DetectKind picks a decoder from the file extension.
func DetectKind(path string) (Kind, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xls":
		return KindXLS, nil
	case ".xlsx", ".pdf", ".ofx", ".zip":
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	default:
		return KindText, nil
	}
}

// Supported reports whether a directory scan should pick the file up.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".xls":
		return true
	}
	return false
}

// ReadFile reads a file, or standard input when path is "-".
func ReadFile(path string) (string, error) {
	if path == Stdin {
		return Read(os.Stdin)
	}
	kind, err := DetectKind(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(data, kind)
}

// Read consumes a text stream.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return Decode(data, KindText)
}

func Decode(data []byte, kind Kind) (string, error) {
	switch kind {
	case KindText:
		return decodeText(data)
	case KindXLS:
		return decodeXLS(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
}

// decodeText accepts UTF-8 and falls back to Windows-1252, which is what
// Brazilian bank exports tend to use.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data), nil
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", fmt.Errorf("%w: binary content", ErrUnsupported)
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(out), nil
}

// decodeXLS flattens the first sheet: each row becomes one line with its
// non-empty cells joined by a space.
func decodeXLS(data []byte) (text string, err error) {
	// the xls reader panics on some malformed workbooks
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed workbook: %v", ErrUnsupported, r)
		}
	}()

	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return "", fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(maxRows)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var cells []string
		for _, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n"), nil
}
