package contracts

import (
	"tapcard/internal/contracts/accounts"
	"tapcard/internal/contracts/audit"
	"tapcard/internal/contracts/contacts"
	"tapcard/internal/contracts/invites"
	"tapcard/internal/contracts/leads"
	"tapcard/internal/contracts/pictures"
	"tapcard/internal/contracts/profiles"
	"tapcard/internal/contracts/services"
	"tapcard/internal/contracts/settings"
	"tapcard/internal/contracts/shop"
)

// Repos groups feature-specific repositories for injection into services and handlers.
type Repos struct {
	Profiles profiles.Repository
	Contacts contacts.Repository
	Leads    leads.Repository
	Services services.Repository
	Shop     shop.Repository
	Settings settings.Repository
	Accounts accounts.Repository
	Invites  invites.Repository
	Audit    audit.Repository
	Pictures pictures.Repository
}
