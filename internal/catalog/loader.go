package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultDataset []byte

// Decode reads a YAML dataset.
func Decode(r io.Reader) (Dataset, error) {
	var ds Dataset

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("failed to decode catalog dataset: %w", err)
	}

	return ds, nil
}

// LoadFile reads a dataset from path. An empty path selects the dataset
// bundled with the binary.
func LoadFile(path string) (Dataset, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func Default() (Dataset, error) {
	return Decode(bytes.NewReader(defaultDataset))
}
