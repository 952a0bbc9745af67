package domain

import (
	"database/sql"
	"time"
)

// Profile is the public business card record served by handle.
type Profile struct {
	ID             string
	Handle         string
	FullName       string
	Headline       string
	Links          []Link
	Theme          Theme
	ProfilePicture string
	Organization   *Organization
	LockedFeatures []string
	PublishedAt    sql.NullTime
	UpdatedAt      time.Time
}

// Link is a platform + URL pair shown on the card.
type Link struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Theme holds the card color scheme.
type Theme struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TextColor       string `json:"text_color"`
	BackgroundColor string `json:"background_color"`
	PrimaryColor    string `json:"primary_color"`
}

// Organization groups members under a shared workspace name.
type Organization struct {
	Name    string      `json:"name"`
	Members []OrgMember `json:"members"`
}

// Member roles and statuses accepted by the organization schema.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"

	MemberPending  = "pending"
	MemberAccepted = "accepted"
)

// OrgMember is a single invited or accepted organization member.
type OrgMember struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// Account is the authenticated operator of this install.
type Account struct {
	ID           int
	Username     string
	Email        string
	Role         string
	PasswordHash string
	TOTPSecret   string
	UpdatedAt    time.Time
}

// Contact is an entry in the owner's address book, usually captured from an
// exchanged card.
type Contact struct {
	ID        string
	ProfileID string
	Name      string
	Email     string
	Phone     string
	Company   string
	Notes     string
	CreatedAt time.Time
}

// Lead is an inbound prospect captured from a card's contact form.
type Lead struct {
	ID        string
	ProfileID string
	Name      string
	Email     string
	Message   string
	Status    string
	CreatedAt time.Time
}

// Lead statuses.
const (
	LeadNew       = "new"
	LeadContacted = "contacted"
	LeadClosed    = "closed"
)

// ServiceOffering is a service advertised on the card.
type ServiceOffering struct {
	ID          string
	ProfileID   string
	Title       string
	Description string
	PriceCents  int64
	Position    int
	CreatedAt   time.Time
}

// ShopItem is a sellable item listed in the card's shop section.
type ShopItem struct {
	ID          string
	ProfileID   string
	Title       string
	ImageURL    string
	PriceCents  int64
	Currency    string
	ExternalURL string
	Position    int
	CreatedAt   time.Time
}

// Invite is a pending organization member invitation token.
type Invite struct {
	ID        int
	Token     string
	ProfileID string
	Email     string
	Role      string
	CreatedAt time.Time
	UsedAt    sql.NullTime
}

// AuditLog records a mutating action against the install.
type AuditLog struct {
	ID        int
	ActorID   sql.NullInt64
	Action    string
	Target    string
	Metadata  string
	CreatedAt time.Time
}

// ProfilePicture is an uploaded card image.
type ProfilePicture struct {
	ID        int64     `json:"id"`
	ProfileID string    `json:"profile_id"`
	Filename  string    `json:"filename"`
	AltText   string    `json:"alt_text"`
	CreatedAt time.Time `json:"created_at"`
}
