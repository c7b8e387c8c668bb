package source

import (
	"context"
	"fmt"

	"github.com/osler/analysers/analyser/internal/config"
)

// Batch is the raw input of one load cycle.
type Batch struct {
	// Origin names where the lines came from, for logs.
	Origin string

	DataLines   []string
	ExpiryLines []string
}

// Source is the common interface implemented by every data source.
type Source interface {
	Load(ctx context.Context) (*Batch, error)
}

// New returns the appropriate Source for the given data configuration.
func New(cfg config.DataConfig) (Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		return &fileSource{dataPath: cfg.DataPath, expiryPath: cfg.ExpiryPath}, nil
	case config.SourceEmbedded, "":
		return &embeddedSource{}, nil
	default:
		return nil, fmt.Errorf("source: unsupported type %q", cfg.Source)
	}
}
