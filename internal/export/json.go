package export

import (
	"encoding/json"
	"io"

	"github.com/nunajera/portfolio-backend/internal"
)

// JSONExporter writes the cleaned messages as an indented array.
type JSONExporter struct{}

func (e *JSONExporter) Export(messages []internal.Message, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(clean(messages))
}

func (e *JSONExporter) Extension() string {
	return "json"
}
