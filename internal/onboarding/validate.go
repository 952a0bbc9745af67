package onboarding

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"tapcard/internal/domain"
)

// Translate maps a stable message key to user-facing text. A nil Translate
// leaves the keys untouched.
type Translate func(key string) string

// Result reports the outcome of a validation pass. Errors is keyed by
// dot-joined field path (for example "links.0.url") and holds translated
// messages. Data carries the normalized draft when validation succeeded.
type Result struct {
	Valid  bool
	Errors map[string]string
	Data   Draft
}

// Message keys produced by the step validators.
const (
	msgNameRequired     = "name_required"
	msgNameTooShort     = "name_too_short"
	msgNameTooLong      = "name_too_long"
	msgNameLettersOnly  = "name_letters_only"
	msgNameNeedTwoWords = "name_need_two_words"
	msgPlatformRequired = "platform_required"
	msgPlatformTooLong  = "platform_too_long"
	msgURLInvalid       = "url_invalid"
	msgTooManyLinks     = "too_many_links"
	msgPictureInvalid   = "picture_invalid"
	msgThemeRequired    = "theme_required"
	msgColorInvalid     = "color_invalid"
	msgOrgNameRequired  = "org_name_required"
	msgOrgNameTooLong   = "org_name_too_long"
	msgTooManyMembers   = "too_many_members"
	msgEmailInvalid     = "email_invalid"
	msgRoleInvalid      = "role_invalid"
	msgStatusInvalid    = "status_invalid"
	msgEmailDuplicate   = "email_duplicate"
)

const (
	maxNameLen     = 100
	maxLinks       = 10
	maxPlatformLen = 50
	maxOrgNameLen  = 100
	maxOrgMembers  = 50
)

var (
	nameRe  = regexp.MustCompile(`^[\p{L} ]+$`)
	colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Validator applies the fixed per-step schemas. Only the error messages are
// configurable through the Translate function.
type Validator struct {
	tr Translate
}

// NewValidator returns a validator using tr for messages.
func NewValidator(tr Translate) Validator {
	return Validator{tr: tr}
}

func (v Validator) t(key string) string {
	if v.tr == nil {
		return key
	}
	return v.tr(key)
}

// Step validates only the schema for the given wizard step.
func (v Validator) Step(step int, d Draft) Result {
	errs := map[string]string{}
	out := d
	switch step {
	case StepFullName:
		out.FullName = v.checkFullName(d.FullName, errs)
	case StepLinks:
		out.Links = v.checkLinks(d.Links, errs)
	case StepPicture:
		v.checkPicture(d.ProfilePicture, errs)
	case StepTheme:
		v.checkTheme(d.Theme, errs)
	case StepOrganization:
		out.Organization = v.checkOrganization(d.Organization, errs)
	}
	return Result{Valid: len(errs) == 0, Errors: errs, Data: out}
}

// Complete validates the whole draft for final submission.
func (v Validator) Complete(d Draft) Result {
	errs := map[string]string{}
	out := d
	out.FullName = v.checkFullName(d.FullName, errs)
	out.Links = v.checkLinks(d.Links, errs)
	v.checkPicture(d.ProfilePicture, errs)
	v.checkTheme(d.Theme, errs)
	out.Organization = v.checkOrganization(d.Organization, errs)
	return Result{Valid: len(errs) == 0, Errors: errs, Data: out}
}

// checkFullName validates and returns the whitespace-normalized name.
func (v Validator) checkFullName(name string, errs map[string]string) string {
	normalized := strings.Join(strings.Fields(name), " ")
	switch {
	case normalized == "":
		errs["fullName"] = v.t(msgNameRequired)
	case utf8.RuneCountInString(normalized) < 2:
		errs["fullName"] = v.t(msgNameTooShort)
	case utf8.RuneCountInString(normalized) > maxNameLen:
		errs["fullName"] = v.t(msgNameTooLong)
	case !nameRe.MatchString(normalized):
		errs["fullName"] = v.t(msgNameLettersOnly)
	case len(strings.Fields(normalized)) < 2:
		errs["fullName"] = v.t(msgNameNeedTwoWords)
	}
	return normalized
}

// checkLinks validates each link and returns links with normalized URLs.
func (v Validator) checkLinks(links []domain.Link, errs map[string]string) []domain.Link {
	if len(links) > maxLinks {
		errs["links"] = v.t(msgTooManyLinks)
	}
	out := make([]domain.Link, len(links))
	for i, link := range links {
		out[i] = link
		platform := strings.TrimSpace(link.Platform)
		if platform == "" {
			errs[fmt.Sprintf("links.%d.platform", i)] = v.t(msgPlatformRequired)
		} else if utf8.RuneCountInString(platform) > maxPlatformLen {
			errs[fmt.Sprintf("links.%d.platform", i)] = v.t(msgPlatformTooLong)
		}
		normalized, ok := NormalizeURL(link.URL)
		if !ok {
			errs[fmt.Sprintf("links.%d.url", i)] = v.t(msgURLInvalid)
			continue
		}
		out[i].Platform = platform
		out[i].URL = normalized
	}
	return out
}

func (v Validator) checkPicture(picture string, errs map[string]string) {
	if strings.TrimSpace(picture) == "" {
		return
	}
	if _, ok := NormalizeURL(picture); !ok {
		errs["profilePicture"] = v.t(msgPictureInvalid)
	}
}

func (v Validator) checkTheme(theme domain.Theme, errs map[string]string) {
	if strings.TrimSpace(theme.ID) == "" || strings.TrimSpace(theme.Name) == "" {
		errs["theme"] = v.t(msgThemeRequired)
	}
	colors := map[string]string{
		"theme.textColor":       theme.TextColor,
		"theme.backgroundColor": theme.BackgroundColor,
		"theme.primaryColor":    theme.PrimaryColor,
	}
	for field, value := range colors {
		if !colorRe.MatchString(value) {
			errs[field] = v.t(msgColorInvalid)
		}
	}
}

// checkOrganization validates the optional organization and returns it with
// trimmed name and lower-cased member emails.
func (v Validator) checkOrganization(org *domain.Organization, errs map[string]string) *domain.Organization {
	if org == nil {
		return nil
	}
	out := &domain.Organization{Name: strings.TrimSpace(org.Name)}
	switch {
	case utf8.RuneCountInString(out.Name) < 2:
		errs["organization.name"] = v.t(msgOrgNameRequired)
	case utf8.RuneCountInString(out.Name) > maxOrgNameLen:
		errs["organization.name"] = v.t(msgOrgNameTooLong)
	}
	if len(org.Members) > maxOrgMembers {
		errs["organization.members"] = v.t(msgTooManyMembers)
	}
	seen := map[string]bool{}
	out.Members = make([]domain.OrgMember, len(org.Members))
	for i, member := range org.Members {
		email := strings.ToLower(strings.TrimSpace(member.Email))
		if !emailRe.MatchString(email) {
			errs[fmt.Sprintf("organization.members.%d.email", i)] = v.t(msgEmailInvalid)
		} else if seen[email] {
			errs[fmt.Sprintf("organization.members.%d.email", i)] = v.t(msgEmailDuplicate)
		}
		seen[email] = true
		if member.Role != domain.RoleAdmin && member.Role != domain.RoleMember {
			errs[fmt.Sprintf("organization.members.%d.role", i)] = v.t(msgRoleInvalid)
		}
		if member.Status != domain.MemberPending && member.Status != domain.MemberAccepted {
			errs[fmt.Sprintf("organization.members.%d.status", i)] = v.t(msgStatusInvalid)
		}
		out.Members[i] = domain.OrgMember{Email: email, Role: member.Role, Status: member.Status}
	}
	return out
}

// NormalizeURL prefixes https:// when no scheme is present and reports
// whether the result parses as an http(s) URL with a host.
func NormalizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}
	host := parsed.Hostname()
	if host == "" || strings.ContainsAny(host, " !") {
		return "", false
	}
	return parsed.String(), true
}

// ValidEmail reports whether email passes the member email schema.
func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.ToLower(strings.TrimSpace(email)))
}
