package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Property is one rentable unit, authored as a YAML file and immutable once loaded.
type Property struct {
	ID               string   `yaml:"id" json:"id" validate:"required"`
	Slug             string   `yaml:"slug" json:"slug" validate:"required"`
	Name             string   `yaml:"name" json:"name" validate:"required"`
	Subtitle         string   `yaml:"subtitle" json:"subtitle,omitempty"`
	Description      string   `yaml:"description" json:"description" validate:"notblank"`
	ShortDescription string   `yaml:"shortDescription" json:"shortDescription,omitempty"`
	Published        *bool    `yaml:"published" json:"published"`
	Order            int      `yaml:"order" json:"order"`
	Capacity         Capacity `yaml:"capacity" json:"capacity"`
	Size             Size     `yaml:"size" json:"size"`
	Rooms            []Room   `yaml:"rooms" json:"rooms" validate:"min=1"`
	Images           ImageSet `yaml:"images" json:"images"`
	Features         []string `yaml:"features" json:"features"`
	Amenities        []string `yaml:"amenities" json:"amenities,omitempty"`
	IdealFor         []string `yaml:"idealFor" json:"idealFor,omitempty"`
	Pricing          *Pricing `yaml:"pricing" json:"pricing,omitempty"`
	SEO              *SEO     `yaml:"seo" json:"seo,omitempty"`
	Booking          *Booking `yaml:"booking" json:"booking,omitempty"`
}

// IsPublished treats a missing flag as published.
func (p Property) IsPublished() bool { return p.Published == nil || *p.Published }

// DisplayName is the name, or the id when the name is missing.
func (p Property) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// ChannelID is the channel-manager property id, 0 when unset.
func (p Property) ChannelID() int64 {
	if p.Booking == nil {
		return 0
	}
	return p.Booking.LodgifyID
}

type Capacity struct {
	Guests    int        `yaml:"guests" json:"guests" validate:"gt=0"`
	Bedrooms  FlexString `yaml:"bedrooms" json:"bedrooms"`
	Bathrooms FlexString `yaml:"bathrooms" json:"bathrooms"`
	Beds      *Beds      `yaml:"beds" json:"beds,omitempty"`
}

type Beds struct {
	Double int `yaml:"double" json:"double,omitempty"`
	Single int `yaml:"single" json:"single,omitempty"`
	Sofa   int `yaml:"sofa" json:"sofa,omitempty"`
	Bunk   int `yaml:"bunk" json:"bunk,omitempty"`
}

// Summary renders the bed configuration, e.g. "1 double, 2 single".
func (b Beds) Summary() string {
	var parts []string
	add := func(n int, label string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	add(b.Double, "double")
	add(b.Single, "single")
	add(b.Sofa, "sofa")
	add(b.Bunk, "bunk")
	return strings.Join(parts, ", ")
}

type Size struct {
	Value float64 `yaml:"value" json:"value" validate:"gt=0"`
	Unit  string  `yaml:"unit" json:"unit" validate:"omitempty,oneof=sqm sqft"`
}

func (s Size) String() string {
	unit := "m²"
	if s.Unit == "sqft" {
		unit = "ft²"
	}
	return cast.ToString(s.Value) + " " + unit
}

type Room struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Image       string   `yaml:"image" json:"image,omitempty"`
	Amenities   []string `yaml:"amenities" json:"amenities,omitempty"`
	Beds        string   `yaml:"beds" json:"beds,omitempty"`
}

type ImageSet struct {
	Hero      string  `yaml:"hero" json:"hero" validate:"required"`
	Thumbnail string  `yaml:"thumbnail" json:"thumbnail,omitempty"`
	Gallery   Gallery `yaml:"gallery" json:"gallery"`
}

// Gallery is either a folder name or an explicit list of files.
type Gallery struct {
	Folder string   `json:"folder,omitempty"`
	Files  []string `json:"files,omitempty"`
}

func (g *Gallery) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		g.Folder = n.Value
		return nil
	case yaml.SequenceNode:
		return n.Decode(&g.Files)
	default:
		return fmt.Errorf("gallery: expected string or list, got line %d", n.Line)
	}
}

type Pricing struct {
	Enabled        bool            `yaml:"enabled" json:"enabled"`
	Currency       string          `yaml:"currency" json:"currency,omitempty"`
	CurrencySymbol string          `yaml:"currencySymbol" json:"currencySymbol,omitempty"`
	StartingFrom   float64         `yaml:"startingFrom" json:"startingFrom,omitempty"`
	Periods        []PricingPeriod `yaml:"periods" json:"periods,omitempty"`
	Note           string          `yaml:"note" json:"note,omitempty"`
}

type PricingPeriod struct {
	Name          string  `yaml:"name" json:"name"`
	Dates         string  `yaml:"dates" json:"dates"`
	PricePerNight float64 `yaml:"pricePerNight" json:"pricePerNight"`
	MinimumStay   int     `yaml:"minimumStay" json:"minimumStay,omitempty"`
}

type SEO struct {
	Title       string `yaml:"title" json:"title,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	Image       string `yaml:"image" json:"image,omitempty"`
}

type Booking struct {
	LodgifyID int64 `yaml:"lodgifyId" json:"lodgifyId,omitempty"`
}

// FlexString accepts a YAML/JSON number or string ("2" or "2 double bedrooms").
type FlexString string

func (f *FlexString) UnmarshalYAML(n *yaml.Node) error {
	var raw any
	if err := n.Decode(&raw); err != nil {
		return err
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*f = FlexString(s)
	return nil
}

func (f *FlexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	*f = FlexString(s)
	return nil
}

func (f FlexString) String() string { return string(f) }
