package domain

// Review is a curated guest review shown on the site.
type Review struct {
	Username string  `yaml:"username" json:"username"`
	Text     string  `yaml:"text" json:"text"`
	Score    float64 `yaml:"reviewScore" json:"reviewScore"` // out of 10
	Language string  `yaml:"language" json:"language,omitempty"`
	Property string  `yaml:"property" json:"property,omitempty"` // optional property slug
}
