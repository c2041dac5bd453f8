// Package siteconfig loads the site-wide YAML configuration: identity,
// contact details, integrations, SEO, feature flags and booking settings.
package siteconfig

type Config struct {
	Identity      Identity     `yaml:"identity"`
	Contact       Contact      `yaml:"contact"`
	Social        Social       `yaml:"social"`
	Legal         Legal        `yaml:"legal"`
	Integrations  Integrations `yaml:"integrations"`
	SEO           SEO          `yaml:"seo"`
	Features      Features     `yaml:"features"`
	URL           string       `yaml:"url" validate:"required"`
	BasePath      string       `yaml:"basePath"`
	TrailingSlash bool         `yaml:"trailingSlash"`
	Properties    Properties   `yaml:"properties"`
	Booking       Booking      `yaml:"booking"`
	Locales       Locales      `yaml:"locales"`
}

type Identity struct {
	Name    string `yaml:"name" validate:"required"`
	Tagline string `yaml:"tagline"`
	Logo    *Logo  `yaml:"logo"`
}

type Logo struct {
	Src     string `yaml:"src"`
	Alt     string `yaml:"alt"`
	UseText bool   `yaml:"useText"`
}

type Contact struct {
	Email       string       `yaml:"email" validate:"required"`
	Phone       string       `yaml:"phone"`
	WhatsApp    string       `yaml:"whatsapp"`
	Address     *Address     `yaml:"address" validate:"required"`
	Coordinates *Coordinates `yaml:"coordinates"`
}

type Address struct {
	Street     string `yaml:"street"`
	City       string `yaml:"city"`
	Region     string `yaml:"region"`
	PostalCode string `yaml:"postalCode"`
	Country    string `yaml:"country"`
}

type Coordinates struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type Social struct {
	Facebook    string `yaml:"facebook"`
	Instagram   string `yaml:"instagram"`
	TripAdvisor string `yaml:"tripadvisor"`
	Airbnb      string `yaml:"airbnb"`
	Booking     string `yaml:"booking"`
}

type Legal struct {
	CompanyName       string   `yaml:"companyName"`
	VATNumber         string   `yaml:"vatNumber"`
	RegistrationCodes []string `yaml:"registrationCodes"`
	PrivacyPolicyURL  string   `yaml:"privacyPolicyUrl"`
	CookiePolicyURL   string   `yaml:"cookiePolicyUrl"`
	TermsURL          string   `yaml:"termsUrl"`
	CopyrightYear     int      `yaml:"copyrightYear"`
}

type Integrations struct {
	ContactForm ContactForm `yaml:"contactForm"`
	Analytics   Analytics   `yaml:"analytics"`
	Maps        Maps        `yaml:"maps"`
}

// Contact form providers.
const (
	ProviderMailgun = "mailgun"
	ProviderSMTP    = "smtp"
	ProviderEmail   = "email" // alias of smtp
	ProviderWebhook = "webhook"
	ProviderNone    = "none"
)

type ContactForm struct {
	Enabled      bool   `yaml:"enabled"`
	Provider     string `yaml:"provider"`
	WebhookURL   string `yaml:"webhookUrl"`
	EmailTo      string `yaml:"emailTo"`
	EmailFrom    string `yaml:"emailFrom"`
	EmailSubject string `yaml:"emailSubject"`
}

type Analytics struct {
	GoogleAnalyticsID string `yaml:"googleAnalyticsId"`
	PlausibleDomain   string `yaml:"plausibleDomain"`
}

type Maps struct {
	Provider    string `yaml:"provider"` // google|openstreetmap|none
	APIKey      string `yaml:"apiKey"`
	DefaultZoom int    `yaml:"defaultZoom"`
}

type SEO struct {
	DefaultTitle  string `yaml:"defaultTitle" validate:"required"`
	TitleTemplate string `yaml:"titleTemplate"`
	Description   string `yaml:"description"`
	Language      string `yaml:"language"`
	TextDirection string `yaml:"textDirection"`
	OGImage       string `yaml:"ogImage"`
	TwitterHandle string `yaml:"twitterHandle"`
	NoIndex       bool   `yaml:"noIndex"`
}

type Features struct {
	Blog         bool `yaml:"blog"`
	Testimonials bool `yaml:"testimonials"`
	Pricing      bool `yaml:"pricing"`
	DarkMode     bool `yaml:"darkMode"`
}

type Properties struct {
	Mode     string `yaml:"mode" validate:"oneof=single multi"` // single|multi
	BasePath string `yaml:"basePath"`
	Labels   Labels `yaml:"labels"`
}

type Labels struct {
	Singular string `yaml:"singular"`
	Plural   string `yaml:"plural"`
}

// Booking drives the checkout and availability-search redirects.
type Booking struct {
	CheckoutBaseURL string `yaml:"checkoutBaseUrl"`
	AccountSlug     string `yaml:"accountSlug"`
	Language        string `yaml:"language"`
	Currency        string `yaml:"currency"`
	Ref             string `yaml:"ref"`
	SearchURL       string `yaml:"searchUrl"`
	MaxGuests       int    `yaml:"maxGuests"`
}

type Locales struct {
	Default   string   `yaml:"default"`
	Supported []string `yaml:"supported"`
}
