package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ExportRenderer writes address books in a machine readable format
type ExportRenderer struct {
	out    io.Writer
	format string
}

// NewExportRenderer creates a new export renderer
func NewExportRenderer(out io.Writer, format string) (*ExportRenderer, error) {
	switch format {
	case FormatYAML, FormatJSON:
	default:
		return nil, fmt.Errorf("unsupported export format %q (valid: %s, %s)", format, FormatYAML, FormatJSON)
	}
	return &ExportRenderer{out: out, format: format}, nil
}

// Render writes one document holding every exported network
func (r *ExportRenderer) Render(exports []*usecase.NetworkExport) error {
	if r.format == FormatJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(exports)
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(exports); err != nil {
		return err
	}
	return enc.Close()
}
