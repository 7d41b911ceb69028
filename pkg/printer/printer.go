package printer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink stores a rendered receipt and reports where it went.
type Sink interface {
	// Write stores content under name and returns its location.
	Write(name, content string) (string, error)
	// Ready reports whether the sink can currently accept writes.
	Ready() bool
}

// --- File Sink (writes UTF-8 text files under a directory) ---

type fileSink struct {
	dir string
}

// NewFileSink creates a sink that writes one file per receipt under dir.
// The directory is created on first write if absent.
func NewFileSink(dir string) Sink {
	return &fileSink{dir: dir}
}

func (s *fileSink) Write(name, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("printer: failed to create receipt directory %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("printer: failed to write receipt %s: %w", path, err)
	}
	return path, nil
}

func (s *fileSink) Ready() bool {
	info, err := os.Stat(s.dir)
	if os.IsNotExist(err) {
		return true
	}
	return err == nil && info.IsDir()
}

// --- Null Sink (discards receipts) ---

type nullSink struct{}

// NewNullSink creates a sink that discards everything it is given.
func NewNullSink() Sink {
	return &nullSink{}
}

func (s *nullSink) Write(name, content string) (string, error) {
	return "", nil
}

func (s *nullSink) Ready() bool {
	return false
}

// NewSinkFromConfig creates the appropriate Sink based on type.
//
//	sinkType: "file" or "none"
//	dir: receipt directory for file sinks (e.g. "receipts")
func NewSinkFromConfig(sinkType, dir string) (Sink, error) {
	switch sinkType {
	case "file", "":
		if dir == "" {
			return nil, fmt.Errorf("printer: directory is required for file receipts")
		}
		sink := NewFileSink(dir)
		if !sink.Ready() {
			return nil, fmt.Errorf("printer: receipt path %s is not a directory", dir)
		}
		return sink, nil
	case "none":
		return NewNullSink(), nil
	default:
		return nil, fmt.Errorf("printer: unknown receipt sink %q (use file or none)", sinkType)
	}
}
