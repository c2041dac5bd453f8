package render

import (
	"rental_site/internal/domain"
	"rental_site/internal/siteconfig"
)

type Link struct {
	Text  string
	Href  string
	Links []Link
}

type LinkGroup struct {
	Title string
	Links []Link
}

// Nav is the header and footer navigation. Hrefs are unlocalized; templates
// pass them through url.
type Nav struct {
	Header    []Link
	Actions   []Link
	Footer    []LinkGroup
	Secondary []Link
	FootNote  string
}

// BuildNav derives navigation from the site config and published
// properties. t translates keys of the common section.
func BuildNav(site *siteconfig.Config, published []domain.Property, t func(key, fallback string) string) Nav {
	var propsLink Link
	var propLinks []Link
	for _, p := range published {
		propLinks = append(propLinks, Link{Text: p.DisplayName(), Href: PropertyPath(site, p)})
	}
	switch {
	case len(published) == 1:
		propsLink = Link{Text: t("nav.property", site.Properties.Labels.Singular), Href: propLinks[0].Href}
	default:
		sub := append(append([]Link(nil), propLinks...), Link{Text: t("nav.allProperties", "Tutti gli appartamenti"), Href: PropertiesPath(site)})
		propsLink = Link{Text: t("nav.properties", site.Properties.Labels.Plural), Href: PropertiesPath(site), Links: sub}
	}

	header := []Link{
		{Text: t("nav.home", "Home"), Href: "/"},
		{Text: t("nav.about", "Chi siamo"), Href: "/#chi-siamo"},
		propsLink,
		{Text: t("nav.services", "I nostri comfort"), Href: "/#comfort"},
	}
	if site.Features.Testimonials {
		header = append(header, Link{Text: t("nav.testimonials", "Testimonianze"), Href: "/#testimonianze"})
	}

	useful := []Link{
		{Text: t("nav.home", "Home"), Href: "/"},
		{Text: t("nav.about", "Chi siamo"), Href: "/#chi-siamo"},
		{Text: propsLink.Text, Href: PropertiesPath(site)},
		{Text: t("nav.services", "I nostri comfort"), Href: "/#comfort"},
	}
	if site.Features.Testimonials {
		useful = append(useful, Link{Text: t("nav.testimonials", "Testimonianze"), Href: "/#testimonianze"})
	}
	useful = append(useful, Link{Text: t("nav.contact", "Contatti"), Href: ContactPath})

	footer := []LinkGroup{{Title: t("footer.usefulLinks", "Link utili"), Links: useful}}
	if len(propLinks) > 1 {
		footer = append(footer, LinkGroup{Title: propsLink.Text, Links: propLinks})
	}

	var secondary []Link
	if site.Legal.CookiePolicyURL != "" {
		secondary = append(secondary, Link{Text: t("footer.cookies", "Cookies"), Href: site.Legal.CookiePolicyURL})
	}
	if site.Legal.PrivacyPolicyURL != "" {
		secondary = append(secondary, Link{Text: t("footer.privacy", "Privacy Policy"), Href: site.Legal.PrivacyPolicyURL})
	}
	if site.Contact.Email != "" {
		secondary = append(secondary, Link{Text: site.Contact.Email, Href: "mailto:" + site.Contact.Email})
	}

	return Nav{
		Header:    header,
		Actions:   []Link{{Text: t("nav.contact", "Contattaci"), Href: ContactPath}},
		Footer:    footer,
		Secondary: secondary,
		FootNote:  site.RegistrationCodes(),
	}
}
