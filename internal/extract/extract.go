package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrEmptyText means the PDF parsed but contained no extractable
	// text (image-based, scanned, or encrypted documents). The remedy is
	// the plain-text submission path, so callers surface it separately.
	ErrEmptyText = errors.New("no extractable text in pdf")

	// ErrUnreadable means the bytes could not be parsed as a PDF at all.
	ErrUnreadable = errors.New("unreadable pdf")
)

// Text extracts plain text from PDF bytes, processing every page. The
// decode goes through a temp file that is removed on every exit path.
func Text(data []byte) (_ string, err error) {
	if len(data) == 0 {
		return "", ErrUnreadable
	}

	tmp, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	text, err := parse(tmpPath)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

// parse isolates the library call. The parser panics on some malformed
// files, so the recover here folds panics into ErrUnreadable.
func parse(path string) (_ string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: parser panic: %v", ErrUnreadable, rec)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return buf.String(), nil
}
