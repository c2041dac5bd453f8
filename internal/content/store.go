// Package content loads the localized text dictionary: one YAML file per
// locale and section, cached for the life of the Store.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"rental_site/internal/adapters/observability"
	"rental_site/internal/domain"
)

const DefaultLocale = "it"

// Sections known to the site templates.
var Sections = []string{"common", "homepage", "contact", "apartments", "services"}

// Locale describes a supported site language.
type Locale struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Flag  string `json:"flag"`
}

var locales = map[string]Locale{
	"it": {Code: "it", Label: "Italiano", Flag: "🇮🇹"},
	"en": {Code: "en", Label: "English", Flag: "🇬🇧"},
	"de": {Code: "de", Label: "Deutsch", Flag: "🇩🇪"},
}

// LocaleInfo returns display metadata for a locale code.
func LocaleInfo(code string) Locale {
	if l, ok := locales[code]; ok {
		return l
	}
	return Locale{Code: code, Label: code}
}

// Dict is a parsed section tree.
type Dict = map[string]any

type Store struct {
	root          string
	defaultLocale string
	supported     map[string]struct{}
	order         []string
	matcher       language.Matcher

	mu    sync.RWMutex
	cache map[string]Dict
}

// NewStore reads {root}/{locale}/{section}.yaml. An empty defaultLocale means "it".
func NewStore(root, defaultLocale string, supported []string) *Store {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	if len(supported) == 0 {
		supported = []string{"it", "en", "de"}
	}
	s := &Store{
		root:          root,
		defaultLocale: defaultLocale,
		supported:     make(map[string]struct{}, len(supported)),
		cache:         map[string]Dict{},
	}
	tags := make([]language.Tag, 0, len(supported))
	for _, l := range supported {
		s.supported[l] = struct{}{}
		s.order = append(s.order, l)
		tags = append(tags, language.Make(l))
	}
	s.matcher = language.NewMatcher(tags)
	return s
}

func (s *Store) DefaultLocale() string { return s.defaultLocale }

func (s *Store) IsSupported(locale string) bool {
	_, ok := s.supported[locale]
	return ok
}

// Get returns the section for locale, falling back once to the default locale
// when the file is missing. The result is shared and must not be modified.
func (s *Store) Get(section, locale string) (Dict, error) {
	key := locale + "/" + section

	s.mu.RLock()
	d, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		observability.ObserveCache("content", "hit")
		return d, nil
	}
	observability.ObserveCache("content", "miss")

	d, err := s.read(section, locale)
	if errors.Is(err, fs.ErrNotExist) {
		if locale != s.defaultLocale {
			log.Warn().Str("section", section).Str("locale", locale).
				Str("fallback", s.defaultLocale).Msg("content missing, using default locale")
			d, err := s.Get(section, s.defaultLocale)
			if err != nil {
				return nil, err
			}
			s.put(key, d)
			return d, nil
		}
		return nil, fmt.Errorf("%w: %s.yaml for locale %s", domain.ErrContentNotFound, section, locale)
	}
	if err != nil {
		return nil, err
	}

	return s.put(key, d), nil
}

// put stores d under key unless another reader got there first, and returns
// the cached value.
func (s *Store) put(key string, d Dict) Dict {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.cache[key]; ok {
		return prev
	}
	s.cache[key] = d
	observability.ObserveCache("content", "set")
	return d
}

func (s *Store) read(section, locale string) (Dict, error) {
	var b []byte
	var err error
	for _, ext := range []string{".yaml", ".yml"} {
		b, err = os.ReadFile(filepath.Join(s.root, locale, section+ext))
		if !errors.Is(err, fs.ErrNotExist) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	d := Dict{}
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse %s/%s: %w", locale, section, err)
	}
	return d, nil
}

// Multiple loads several sections for one locale concurrently.
func (s *Store) Multiple(ctx context.Context, sections []string, locale string) (map[string]Dict, error) {
	out := make([]Dict, len(sections))
	g, _ := errgroup.WithContext(ctx)
	for i, sec := range sections {
		i, sec := i, sec
		g.Go(func() error {
			d, err := s.Get(sec, locale)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	m := make(map[string]Dict, len(sections))
	for i, sec := range sections {
		m[sec] = out[i]
	}
	return m, nil
}

// Clear drops every cached section.
func (s *Store) Clear() {
	s.mu.Lock()
	s.cache = map[string]Dict{}
	s.mu.Unlock()
	observability.ObserveCache("content", "del")
}

// Translator returns a lookup bound to one section and locale. Without a
// fallback argument a missing path yields the path itself.
func (s *Store) Translator(section, locale string) func(path string, fallback ...string) string {
	d, err := s.Get(section, locale)
	if err != nil {
		log.Warn().Err(err).Str("section", section).Str("locale", locale).Msg("translator without content")
	}
	return func(path string, fallback ...string) string {
		def := path
		if len(fallback) > 0 {
			def = fallback[0]
		}
		return String(d, path, def)
	}
}
