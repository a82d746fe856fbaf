package persona

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

const catalogPathEnv = "PERSONA_CATALOG_PATH"

//go:embed catalog.yaml
var catalogFS embed.FS

type Profile struct {
	Name        string `yaml:"name" json:"name"`
	Style       string `yaml:"style" json:"style"`
	Description string `yaml:"description" json:"description"`
}

// StyleLine is the persona reference handed to generation prompts.
func (p Profile) StyleLine() string {
	if p.Style == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Style)
}

type Option struct {
	Value string `yaml:"value" json:"value"`
	Text  string `yaml:"text" json:"text"`
}

type Question struct {
	ID      int      `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Options []Option `yaml:"options" json:"options"`
}

// Catalog is the versioned quiz configuration: roster, questions and the
// answer weight table. It is immutable after Load.
type Catalog struct {
	Version          string                            `yaml:"version"`
	MinAnswers       int                               `yaml:"min_answers"`
	IndustryQuestion int                               `yaml:"industry_question"`
	DefaultIndustry  string                            `yaml:"default_industry"`
	Industries       map[string]string                 `yaml:"industries"`
	Personas         []Profile                         `yaml:"personas"`
	Questions        []Question                        `yaml:"questions"`
	Weights          map[int]map[string]map[string]int `yaml:"weights"`
}

var (
	catalogOnce  sync.Once
	catalogCache *Catalog
	catalogErr   error
)

// LoadCatalog parses the embedded catalog (or PERSONA_CATALOG_PATH) once.
// A broken catalog is a startup error; there is no built-in fallback table.
func LoadCatalog(log *logger.Logger) (*Catalog, error) {
	catalogOnce.Do(func() {
		data, src, err := readCatalog()
		if err != nil {
			catalogErr = fmt.Errorf("read persona catalog: %w", err)
			return
		}
		catalogCache, catalogErr = ParseCatalog(data)
		if catalogErr == nil && log != nil {
			log.Debug("persona catalog loaded",
				"source", src,
				"version", catalogCache.Version,
				"personas", len(catalogCache.Personas),
				"questions", len(catalogCache.Questions),
			)
		}
	})
	return catalogCache, catalogErr
}

func readCatalog() ([]byte, string, error) {
	if path := strings.TrimSpace(os.Getenv(catalogPathEnv)); path != "" {
		b, err := os.ReadFile(path)
		return b, path, err
	}
	b, err := catalogFS.ReadFile("catalog.yaml")
	return b, "embedded", err
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse persona catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid persona catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Personas) == 0 {
		return errors.New("no personas defined")
	}
	if c.MinAnswers < 0 {
		return fmt.Errorf("min_answers must be >= 0, got %d", c.MinAnswers)
	}
	names := make(map[string]bool, len(c.Personas))
	for _, p := range c.Personas {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return errors.New("persona name is required")
		}
		if names[name] {
			return fmt.Errorf("duplicate persona: %s", name)
		}
		names[name] = true
	}

	qids := make(map[int]bool, len(c.Questions))
	for _, q := range c.Questions {
		if qids[q.ID] {
			return fmt.Errorf("duplicate question id: %d", q.ID)
		}
		qids[q.ID] = true
		if len(q.Options) == 0 {
			return fmt.Errorf("question %d has no options", q.ID)
		}
	}

	for qid, letters := range c.Weights {
		for letter, scores := range letters {
			for name, w := range scores {
				if !names[name] {
					return fmt.Errorf("weight q%d/%s references unknown persona %q", qid, letter, name)
				}
				if w != 1 && w != 2 {
					return fmt.Errorf("weight q%d/%s/%s must be 1 or 2, got %d", qid, letter, name, w)
				}
			}
		}
	}
	if c.DefaultIndustry == "" {
		return errors.New("default_industry is required")
	}
	return nil
}

// Lookup returns the roster entry for name.
func (c *Catalog) Lookup(name string) (Profile, bool) {
	for _, p := range c.Personas {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}
