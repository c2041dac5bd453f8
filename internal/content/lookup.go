package content

import (
	"net/http"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
)

// Value walks a dot path ("hero.title", "items.0.name") and returns fallback
// when any step is missing.
func Value(d Dict, path string, fallback any) any {
	var cur any = d
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return fallback
			}
			cur = v
		case []any:
			i, err := cast.ToIntE(part)
			if err != nil || i < 0 || i >= len(node) {
				return fallback
			}
			cur = node[i]
		default:
			return fallback
		}
	}
	if cur == nil {
		return fallback
	}
	return cur
}

// String is Value rendered as text; non-scalar values yield fallback.
func String(d Dict, path, fallback string) string {
	v := Value(d, path, nil)
	switch v.(type) {
	case nil, map[string]any, []any:
		return fallback
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fallback
	}
	return s
}

// LocaleFromRequest picks ?lang= first, then the first path segment, then the
// closest Accept-Language match, then the default locale.
func (s *Store) LocaleFromRequest(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l != "" && s.IsSupported(l) {
		return l
	}
	seg := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)[0]
	if seg != "" && s.IsSupported(seg) {
		return seg
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		if tags, _, err := language.ParseAcceptLanguage(al); err == nil && len(tags) > 0 {
			if _, i, conf := s.matcher.Match(tags...); conf != language.No {
				return s.order[i]
			}
		}
	}
	return s.defaultLocale
}
