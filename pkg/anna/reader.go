package anna

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// RecordHandler processes a single decoded record.
type RecordHandler func(ctx context.Context, record *Record) error

var gzipMagic = []byte{0x1f, 0x8b}

// ReadRecords decodes one JSON record per line from r and hands each one to handle.
// Gzip-compressed input is detected and decompressed. Lines that fail to decode are
// logged and skipped. It returns the number of records handed to handle.
func ReadRecords(ctx context.Context, r io.Reader, handle RecordHandler) (int, error) {
	bufReader := bufio.NewReaderSize(r, 4*1024*1024) // 4MB buffer

	if magic, err := bufReader.Peek(len(gzipMagic)); err == nil && string(magic) == string(gzipMagic) {
		gzReader, err := gzip.NewReader(bufReader)
		if err != nil {
			return 0, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		bufReader = bufio.NewReaderSize(gzReader, 4*1024*1024)
	}

	recordCount := 0
	lineCount := 0

	for {
		if err := ctx.Err(); err != nil {
			return recordCount, err
		}

		line, err := bufReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				slog.Warn("Unexpected EOF reached, ending processing", "line", lineCount+1)
				return recordCount, nil
			}
			return recordCount, fmt.Errorf("read error at line %d: %w", lineCount+1, err)
		}
		eof := err != nil

		if strings.TrimSpace(line) != "" {
			lineCount++

			var record Record
			if err := json.Unmarshal([]byte(line), &record); err != nil {
				slog.Warn("Failed to parse JSON line, skipping", "line", lineCount, "error", err)
			} else {
				if err := handle(ctx, &record); err != nil {
					return recordCount, fmt.Errorf("cannot process record at line %d: %w", lineCount, err)
				}
				recordCount++
			}
		}

		if eof {
			return recordCount, nil
		}
	}
}
