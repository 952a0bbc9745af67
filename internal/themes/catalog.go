package themes

import (
	"strings"

	"tapcard/internal/domain"
)

const defaultThemeID = "classic"

// DefaultThemeID is the theme applied to new drafts and unknown choices.
const DefaultThemeID = defaultThemeID

var builtInThemes = []domain.Theme{
	{ID: "classic", Name: "Classic paper", TextColor: "#2B2118", BackgroundColor: "#F6F1E7", PrimaryColor: "#C96F2B"},
	{ID: "noir", Name: "Noir studio", TextColor: "#E8ECF1", BackgroundColor: "#10141B", PrimaryColor: "#27D9E5"},
	{ID: "mono", Name: "Terminal mono", TextColor: "#C9F7C9", BackgroundColor: "#0A0F0A", PrimaryColor: "#39FF14"},
	{ID: "sunrise", Name: "Sunrise pop", TextColor: "#3A1F12", BackgroundColor: "#FFF3E4", PrimaryColor: "#FF6F59"},
	{ID: "forest", Name: "Evergreen modern", TextColor: "#1E2D24", BackgroundColor: "#F1F7F2", PrimaryColor: "#2F8F5B"},
	{ID: "slate", Name: "Slate serif", TextColor: "#22252B", BackgroundColor: "#EEF0F4", PrimaryColor: "#8A7FD6"},
	{ID: "ocean", Name: "Ocean depth", TextColor: "#DCEEF5", BackgroundColor: "#0B2239", PrimaryColor: "#54D6BE"},
	{ID: "pastel", Name: "Pastel cloud", TextColor: "#4A3F55", BackgroundColor: "#FBF4FB", PrimaryColor: "#F48FB1"},
	{ID: "brutalist", Name: "Brutalist mono", TextColor: "#000000", BackgroundColor: "#FFFFFF", PrimaryColor: "#FFD400"},
	{ID: "velvet", Name: "Velvet luxe", TextColor: "#F3E3C3", BackgroundColor: "#2C0F1A", PrimaryColor: "#D4AF37"},
}

// Options returns the built-in theme catalog.
func Options() []domain.Theme {
	out := make([]domain.Theme, len(builtInThemes))
	copy(out, builtInThemes)
	return out
}

// Default returns the default theme.
func Default() domain.Theme {
	return builtInThemes[0]
}

// ByID returns the theme for id, falling back to the default for unknown or
// empty choices.
func ByID(id string) domain.Theme {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, t := range builtInThemes {
		if t.ID == id {
			return t
		}
	}
	return Default()
}

// NormalizeChoice maps any input to a known theme id.
func NormalizeChoice(id string) string {
	return ByID(id).ID
}
