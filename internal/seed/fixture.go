package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	models "mdvault/internal/domain/models/vault"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/vault.yaml
var defaultFixture []byte

// Fixture is a YAML list of documents to load into a store
type Fixture struct {
	Documents []FixtureDocument `yaml:"documents"`
}

// FixtureDocument is one seeded document. ID is optional; documents without
// one are numbered in file order.
type FixtureDocument struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Project  string   `yaml:"project"`
	Tags     []string `yaml:"tags"`
	FileName string   `yaml:"file_name"`
	FileType string   `yaml:"file_type"`
}

func (d FixtureDocument) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required, validation.Length(1, 500)),
	)
}

// Default returns the documents of the embedded demo fixture
func Default() ([]models.Document, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture file. An empty path loads the embedded fixture.
func Load(path string) ([]models.Document, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates fixture YAML
func Parse(data []byte) ([]models.Document, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	docs := make([]models.Document, 0, len(fixture.Documents))
	for i, fd := range fixture.Documents {
		if err := fd.Validate(); err != nil {
			return nil, fmt.Errorf("fixture document %d: %w", i+1, err)
		}

		id := fd.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		docs = append(docs, models.Document{
			ID:       id,
			Title:    fd.Title,
			Project:  models.ProjectPtr(strings.TrimSpace(fd.Project)),
			Tags:     fd.Tags,
			FileName: optional(fd.FileName),
			FileType: optional(fd.FileType),
		})
	}
	return docs, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
