// Package dumpfile reads raw transaction archives: newline-delimited files
// where each line is one hex-encoded transaction. A record's offset is its
// 1-based line number, so ingestion can resume mid-file.
package dumpfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/txlens/txlens-backend/internal/model"
)

// Lines can hold multi-megabyte transactions; size the scanner accordingly.
const maxLineBytes = 16 * 1024 * 1024

type Source struct {
	path string
}

func NewSource(path string) (*Source, error) {
	if path == "" {
		return nil, errors.New("dump file path is required")
	}
	return &Source{path: path}, nil
}

// ReadBatch returns up to limit records whose line number is strictly greater
// than afterOffset. Blank lines and lines starting with '#' keep their line
// number but are skipped.
func (s *Source) ReadBatch(ctx context.Context, afterOffset uint64, limit int) ([]model.RawRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dump file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), maxLineBytes)

	records := make([]model.RawRecord, 0, limit)
	var lineNo uint64
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lineNo++
		if lineNo <= afterOffset {
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		records = append(records, model.RawRecord{Offset: lineNo, Hex: line})
		if len(records) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dump file: %w", err)
	}

	return records, nil
}
