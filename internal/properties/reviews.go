package properties

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"rental_site/internal/domain"
)

// LoadReviews reads a YAML list of reviews. A missing file yields none.
func LoadReviews(path string) ([]domain.Review, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", path).Msg("no reviews file")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reviews: %w", err)
	}
	var doc struct {
		Reviews []domain.Review `yaml:"reviews"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse reviews: %w", err)
	}
	for i, r := range doc.Reviews {
		if r.Username == "" || r.Text == "" {
			return nil, fmt.Errorf("review %d: username and text are required", i)
		}
		if r.Score < 0 || r.Score > 10 {
			return nil, fmt.Errorf("review %d: reviewScore %.1f out of range 0-10", i, r.Score)
		}
	}
	return doc.Reviews, nil
}

// Featured picks up to n reviews, preferring the given language and higher scores.
// n <= 0 means no limit.
func Featured(rs []domain.Review, locale string, n int) []domain.Review {
	out := append([]domain.Review(nil), rs...)
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := out[i].Language == locale, out[j].Language == locale
		if li != lj {
			return li
		}
		return out[i].Score > out[j].Score
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// AverageScore is the mean score, 0 for no reviews.
func AverageScore(rs []domain.Review) float64 {
	if len(rs) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rs {
		sum += r.Score
	}
	return sum / float64(len(rs))
}
