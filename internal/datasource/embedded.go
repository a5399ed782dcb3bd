package datasource

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/mcoot/kmnx-league/internal/model"
)

//go:embed default.json
var defaultData []byte

// EmbeddedSource serves the sample league compiled into the binary.
// It is the last resort of the source chain and never fails.
type EmbeddedSource struct{}

var _ Source = EmbeddedSource{}

func (EmbeddedSource) Name() string {
	return "embedded"
}

func (EmbeddedSource) Load(_ context.Context) (*model.League, error) {
	return Decode(bytes.NewReader(defaultData))
}
