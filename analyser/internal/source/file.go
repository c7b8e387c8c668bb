package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/osler/analysers/analyser/internal/aggregate"
)

type fileSource struct {
	dataPath   string
	expiryPath string
}

// Load reads the data file and, if configured, the expiry file.
func (s *fileSource) Load(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := readFile(s.dataPath)
	if err != nil {
		return nil, fmt.Errorf("source: data file: %w", err)
	}

	b := &Batch{Origin: s.dataPath, DataLines: data}
	if s.expiryPath == "" {
		return b, nil
	}

	expiry, err := readFile(s.expiryPath)
	if err != nil {
		slog.Warn("source: expiry file unreadable, continuing without expiry data",
			"path", s.expiryPath, "err", err)
		return b, nil
	}
	b.ExpiryLines = expiry
	return b, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return aggregate.ReadLines(f)
}
