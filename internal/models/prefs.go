package models

// Theme is the page color scheme
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Preferences are per-visitor display settings
type Preferences struct {
	ReducedMotion bool  `json:"reduced_motion"`
	Theme         Theme `json:"theme"`
}

// DefaultPreferences starts in dark mode with motion enabled
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeDark}
}

func (p *Preferences) ToggleReducedMotion() {
	p.ReducedMotion = !p.ReducedMotion
}

func (p *Preferences) ToggleTheme() {
	if p.Theme == ThemeDark {
		p.Theme = ThemeLight
		return
	}
	p.Theme = ThemeDark
}
