package properties

import (
	"html/template"
	"path"
	"sort"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"rental_site/internal/domain"
)

// Sort orders by ascending Order, breaking ties by collated name.
func Sort(ps []domain.Property, tag language.Tag) {
	col := collate.New(tag, collate.Loose)
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Order != ps[j].Order {
			return ps[i].Order < ps[j].Order
		}
		return col.CompareString(ps[i].Name, ps[j].Name) < 0
	})
}

// Catalog is a sorted, read-only set of properties.
type Catalog struct {
	all    []domain.Property
	bySlug map[string]int
	byID   map[string]int
}

func NewCatalog(ps []domain.Property, tag language.Tag) *Catalog {
	all := append([]domain.Property(nil), ps...)
	Sort(all, tag)
	c := &Catalog{all: all, bySlug: map[string]int{}, byID: map[string]int{}}
	for i, p := range all {
		c.bySlug[p.Slug] = i
		c.byID[p.ID] = i
	}
	return c
}

// All includes unpublished properties.
func (c *Catalog) All() []domain.Property { return append([]domain.Property(nil), c.all...) }

func (c *Catalog) Published() []domain.Property {
	out := make([]domain.Property, 0, len(c.all))
	for _, p := range c.all {
		if p.IsPublished() {
			out = append(out, p)
		}
	}
	return out
}

// BySlug includes unpublished properties so direct links keep working.
func (c *Catalog) BySlug(slug string) (domain.Property, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return domain.Property{}, false
	}
	return c.all[i], true
}

func (c *Catalog) ByID(id string) (domain.Property, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Property{}, false
	}
	return c.all[i], true
}

// ByChannelID finds a property by its channel-manager id.
func (c *Catalog) ByChannelID(id int64) (domain.Property, bool) {
	for _, p := range c.all {
		if id != 0 && p.ChannelID() == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

// Slugs lists published slugs in display order.
func (c *Catalog) Slugs() []string {
	ps := c.Published()
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Slug
	}
	return out
}

func (c *Catalog) Count() int { return len(c.Published()) }

// IsSingleMode is true when exactly one property is published.
func (c *Catalog) IsSingleMode() bool { return c.Count() == 1 }

// Main is the first published property.
func (c *Catalog) Main() (domain.Property, bool) {
	ps := c.Published()
	if len(ps) == 0 {
		return domain.Property{}, false
	}
	return ps[0], true
}

// ImagePath is the asset path of an image file belonging to a property.
func ImagePath(p domain.Property, file string) string {
	return path.Join("images", p.Slug, file)
}

func HeroPath(p domain.Property) string { return ImagePath(p, p.Images.Hero) }

// ThumbnailPath falls back to the hero image.
func ThumbnailPath(p domain.Property) string {
	if p.Images.Thumbnail != "" {
		return ImagePath(p, p.Images.Thumbnail)
	}
	return HeroPath(p)
}

// GalleryFiles lists gallery images as asset paths. A folder gallery resolves
// to the room images plus the hero.
func GalleryFiles(p domain.Property) []string {
	g := p.Images.Gallery
	if len(g.Files) > 0 {
		out := make([]string, len(g.Files))
		for i, f := range g.Files {
			out[i] = ImagePath(p, f)
		}
		return out
	}
	out := []string{HeroPath(p)}
	for _, r := range p.Rooms {
		if r.Image != "" {
			out = append(out, ImagePath(p, r.Image))
		}
	}
	return out
}

// DescriptionHTML renders the Markdown description.
func DescriptionHTML(p domain.Property) template.HTML {
	return Markdown(p.Description)
}

// Markdown renders trusted author Markdown to HTML.
func Markdown(src string) template.HTML {
	return template.HTML(blackfriday.Run([]byte(src)))
}
