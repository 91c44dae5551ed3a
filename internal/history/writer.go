// Package history persists round records so simulations can be inspected
// and replayed offline.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cardsim/blackjack/internal/game"
)

// Writer receives each completed round's record
type Writer interface {
	Append(rec *game.RoundRecord) error
	Close() error
}

// JSONLWriter appends one JSON document per line to a file. Lines are
// buffered; Close flushes.
type JSONLWriter struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
}

// NewJSONLWriter opens (or creates) the history file for appending,
// creating parent directories as needed.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}

	buf := bufio.NewWriter(file)
	return &JSONLWriter{
		file: file,
		buf:  buf,
		enc:  json.NewEncoder(buf),
	}, nil
}

// Append writes one record as a JSON line
func (w *JSONLWriter) Append(rec *game.RoundRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("append round %d: %w", rec.Round, err)
	}
	return nil
}

// Close flushes buffered records and closes the file
func (w *JSONLWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("flush history: %w", err)
	}
	return w.file.Close()
}

// NoOpWriter discards records. Used when no history output is configured.
type NoOpWriter struct{}

func (NoOpWriter) Append(*game.RoundRecord) error { return nil }
func (NoOpWriter) Close() error                   { return nil }

// Read loads every record from a JSONL history file
func Read(path string) ([]*game.RoundRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	var records []*game.RoundRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec game.RoundRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(records)+1, err)
		}
		records = append(records, &rec)
	}
	return records, nil
}

// WriteSummaryAtomic writes v as indented JSON via a temp file and rename,
// so a concurrent reader sees either the previous summary or the complete
// new one, never a partial write.
func WriteSummaryAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp summary: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write temp summary: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp summary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp summary: %w", err)
	}
	tmp = nil

	// Rename within the same directory is atomic on POSIX filesystems.
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename summary: %w", err)
	}
	return nil
}
