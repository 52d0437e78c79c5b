package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nunajera/portfolio-backend/internal"
)

type YAMLExporter struct{}

func (e *YAMLExporter) Export(messages []internal.Message, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(clean(messages))
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
