package source

import (
	"bytes"
	"context"
	"embed"
	"fmt"

	"github.com/osler/analysers/analyser/internal/aggregate"
)

//go:embed sample/data.csv sample/expiry.txt
var sampleFS embed.FS

type embeddedSource struct{}

// Load returns the built-in sample dataset.
func (s *embeddedSource) Load(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := readEmbedded("sample/data.csv")
	if err != nil {
		return nil, err
	}
	expiry, err := readEmbedded("sample/expiry.txt")
	if err != nil {
		return nil, err
	}
	return &Batch{Origin: "embedded", DataLines: data, ExpiryLines: expiry}, nil
}

func readEmbedded(name string) ([]string, error) {
	raw, err := sampleFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("source: embedded %s: %w", name, err)
	}
	return aggregate.ReadLines(bytes.NewReader(raw))
}
