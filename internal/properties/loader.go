// Package properties loads property records from YAML, validates them and
// serves the sorted catalog used by pages and the API.
package properties

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"rental_site/internal/domain"
)

// Loader reads {dir}/*.yaml once and caches the catalog until Clear.
type Loader struct {
	dir string
	tag language.Tag

	mu     sync.Mutex
	cached *Catalog
}

func NewLoader(dir, locale string) *Loader {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Italian
	}
	return &Loader{dir: dir, tag: tag}
}

// Load returns the cached catalog, reading the directory on first use.
// Unreadable or unparseable files fall back to the legacy data set;
// a record missing required fields is an error.
func (l *Loader) Load() (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached != nil {
		return l.cached, nil
	}

	ps, err := l.readAll()
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return nil, err
	case err != nil:
		log.Warn().Err(err).Str("dir", l.dir).Msg("property files unavailable, using legacy data")
		ps = Legacy()
	case len(ps) == 0:
		log.Warn().Str("dir", l.dir).Msg("no property files found, using legacy data")
		ps = Legacy()
	}

	l.cached = NewCatalog(ps, l.tag)
	log.Info().Int("count", len(ps)).Int("published", l.cached.Count()).Msg("properties loaded")
	return l.cached, nil
}

// Clear drops the cached catalog.
func (l *Loader) Clear() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

func (l *Loader) readAll() ([]domain.Property, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read properties dir: %w", err)
	}
	var out []domain.Property
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isYAML(name) || strings.Contains(name, "_example") || strings.Contains(name, "_template") {
			continue
		}
		p, err := readFile(filepath.Join(l.dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func readFile(path string) (domain.Property, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Property{}, fmt.Errorf("read %s: %w", path, err)
	}
	var p domain.Property
	if err := yaml.Unmarshal(b, &p); err != nil {
		return domain.Property{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := Validate(&p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
