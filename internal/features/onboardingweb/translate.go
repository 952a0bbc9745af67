package onboardingweb

// messages maps validation message keys to operator-facing English text.
// The machine only ever emits keys, so unknown keys fall through unchanged.
var messages = map[string]string{
	"name_required":       "Full name is required",
	"name_too_short":      "Full name is too short",
	"name_too_long":       "Full name is too long",
	"name_letters_only":   "Full name may only contain letters and spaces",
	"name_need_two_words": "Enter both a first and last name",
	"platform_required":   "Platform name is required",
	"platform_too_long":   "Platform name is too long",
	"url_invalid":         "Enter a valid link URL",
	"too_many_links":      "Too many links",
	"picture_invalid":     "Select a valid picture",
	"theme_required":      "Choose a theme",
	"color_invalid":       "Theme colors must be hex values like #1A2B3C",
	"org_name_required":   "Organization name is required",
	"org_name_too_long":   "Organization name is too long",
	"too_many_members":    "Too many members",
	"email_invalid":       "Enter a valid email address",
	"role_invalid":        "Choose a valid member role",
	"status_invalid":      "Invalid member status",
	"email_duplicate":     "This member has already been added",
	"general":             "Something went wrong while saving your card",
}

// Translate resolves a message key to display text.
func Translate(key string) string {
	if text, ok := messages[key]; ok {
		return text
	}
	return key
}
