package models

// SiteContent holds the copy for the non-project sections of the page
type SiteContent struct {
	Hero    Hero      `yaml:"hero" json:"hero"`
	About   About     `yaml:"about" json:"about"`
	Contact Contact   `yaml:"contact" json:"contact"`
	Links   []Link    `yaml:"links" json:"links"`
	Nav     []NavItem `yaml:"nav" json:"nav"`
}

// Hero is the landing section
type Hero struct {
	Name    string `yaml:"name" json:"name"`
	Tagline string `yaml:"tagline" json:"tagline"`
	Actions []Link `yaml:"actions" json:"actions"`
}

// About is the biography section
type About struct {
	Heading    string   `yaml:"heading" json:"heading"`
	Paragraphs []string `yaml:"paragraphs" json:"paragraphs"`
	Skills     []string `yaml:"skills" json:"skills"`
}

// Contact is the contact section
type Contact struct {
	Heading string `yaml:"heading" json:"heading"`
	Email   string `yaml:"email" json:"email"`
	Message string `yaml:"message" json:"message"`
}

// NavItem is an in-page anchor shown in the fixed navigation
type NavItem struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// DefaultNav mirrors the page's section anchors
func DefaultNav() []NavItem {
	return []NavItem{
		{Label: "Home", Href: "#home"},
		{Label: "Projects", Href: "#projects"},
		{Label: "About", Href: "#about"},
		{Label: "Contact", Href: "#contact"},
	}
}
