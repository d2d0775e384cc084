package repository

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tair/lightspace/internal/catalog/domain"
)

type catalogFile struct {
	Products []domain.Product `yaml:"products"`
}

// LoadCatalog decodes a YAML catalog document
func LoadCatalog(r io.Reader) (*StaticProductRepository, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalogFile
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("catalog has no products")
	}
	return NewStaticProductRepository(doc.Products)
}

// LoadCatalogFile reads a YAML catalog from disk. An empty path selects the
// built-in seed catalog.
func LoadCatalogFile(path string) (*StaticProductRepository, error) {
	if path == "" {
		return NewSeedProductRepository(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return LoadCatalog(f)
}
