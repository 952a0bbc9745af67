package sqlitestore

import (
	"context"
	"database/sql"

	"tapcard/internal/contracts"
	"tapcard/internal/domain"
)

// currentProfileKey is the settings key holding the durable current-profile
// pointer.
const currentProfileKey = "current_profile_id"

type repos struct {
	db *sql.DB
}

// NewRepos wires sqlite-backed repositories for the app layer.
func NewRepos(db *sql.DB) contracts.Repos {
	r := repos{db: db}
	return contracts.Repos{
		Profiles: r,
		Contacts: r,
		Leads:    r,
		Services: r,
		Shop:     r,
		Settings: r,
		Accounts: r,
		Invites:  r,
		Audit:    r,
		Pictures: r,
	}
}

// NewCurrentStore returns the durable current-profile pointer backed by the
// settings table.
func NewCurrentStore(db *sql.DB) CurrentStore {
	return CurrentStore{db: db}
}

// CurrentStore persists the selected profile id across restarts.
type CurrentStore struct {
	db *sql.DB
}

func (s CurrentStore) LoadCurrentProfile(ctx context.Context) (string, error) {
	value, _, err := GetSetting(ctx, s.db, currentProfileKey)
	return value, err
}

func (s CurrentStore) SaveCurrentProfile(ctx context.Context, id string) error {
	if id == "" {
		return DeleteSetting(ctx, s.db, currentProfileKey)
	}
	return SetSetting(ctx, s.db, currentProfileKey, id)
}

// ProfilesStore
func (r repos) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	return GetProfile(ctx, r.db, id)
}

func (r repos) GetProfileByHandle(ctx context.Context, handle string) (domain.Profile, error) {
	return GetProfileByHandle(ctx, r.db, handle)
}

func (r repos) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return ListProfiles(ctx, r.db)
}

func (r repos) CreateProfile(ctx context.Context, profile domain.Profile) error {
	return CreateProfile(ctx, r.db, profile)
}

func (r repos) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	return UpdateProfile(ctx, r.db, profile)
}

func (r repos) DeleteProfile(ctx context.Context, id string) error {
	return DeleteProfile(ctx, r.db, id)
}

func (r repos) CheckHandleCollision(ctx context.Context, handle, excludeID string) error {
	return CheckHandleCollision(ctx, r.db, handle, excludeID)
}

// ContactsStore
func (r repos) ListContacts(ctx context.Context, profileID string) ([]domain.Contact, error) {
	return ListContacts(ctx, r.db, profileID)
}

func (r repos) GetContact(ctx context.Context, profileID, id string) (domain.Contact, error) {
	return GetContact(ctx, r.db, profileID, id)
}

func (r repos) CreateContact(ctx context.Context, contact domain.Contact) error {
	return CreateContact(ctx, r.db, contact)
}

func (r repos) UpdateContact(ctx context.Context, contact domain.Contact) error {
	return UpdateContact(ctx, r.db, contact)
}

func (r repos) DeleteContact(ctx context.Context, profileID, id string) error {
	return DeleteContact(ctx, r.db, profileID, id)
}

// LeadsStore
func (r repos) ListLeads(ctx context.Context, profileID, status string) ([]domain.Lead, error) {
	return ListLeads(ctx, r.db, profileID, status)
}

func (r repos) GetLead(ctx context.Context, profileID, id string) (domain.Lead, error) {
	return GetLead(ctx, r.db, profileID, id)
}

func (r repos) CreateLead(ctx context.Context, lead domain.Lead) error {
	return CreateLead(ctx, r.db, lead)
}

func (r repos) UpdateLeadStatus(ctx context.Context, profileID, id, status string) error {
	return UpdateLeadStatus(ctx, r.db, profileID, id, status)
}

func (r repos) DeleteLead(ctx context.Context, profileID, id string) error {
	return DeleteLead(ctx, r.db, profileID, id)
}

// ServicesStore
func (r repos) ListServices(ctx context.Context, profileID string) ([]domain.ServiceOffering, error) {
	return ListServices(ctx, r.db, profileID)
}

func (r repos) GetService(ctx context.Context, profileID, id string) (domain.ServiceOffering, error) {
	return GetService(ctx, r.db, profileID, id)
}

func (r repos) CreateService(ctx context.Context, service domain.ServiceOffering) error {
	return CreateService(ctx, r.db, service)
}

func (r repos) UpdateService(ctx context.Context, service domain.ServiceOffering) error {
	return UpdateService(ctx, r.db, service)
}

func (r repos) DeleteService(ctx context.Context, profileID, id string) error {
	return DeleteService(ctx, r.db, profileID, id)
}

// ShopStore
func (r repos) ListShopItems(ctx context.Context, profileID string) ([]domain.ShopItem, error) {
	return ListShopItems(ctx, r.db, profileID)
}

func (r repos) GetShopItem(ctx context.Context, profileID, id string) (domain.ShopItem, error) {
	return GetShopItem(ctx, r.db, profileID, id)
}

func (r repos) CreateShopItem(ctx context.Context, item domain.ShopItem) error {
	return CreateShopItem(ctx, r.db, item)
}

func (r repos) UpdateShopItem(ctx context.Context, item domain.ShopItem) error {
	return UpdateShopItem(ctx, r.db, item)
}

func (r repos) DeleteShopItem(ctx context.Context, profileID, id string) error {
	return DeleteShopItem(ctx, r.db, profileID, id)
}

// SettingsStore
func (r repos) GetSetting(ctx context.Context, key string) (string, bool, error) {
	return GetSetting(ctx, r.db, key)
}

func (r repos) SetSetting(ctx context.Context, key, value string) error {
	return SetSetting(ctx, r.db, key, value)
}

func (r repos) DeleteSetting(ctx context.Context, key string) error {
	return DeleteSetting(ctx, r.db, key)
}

// AccountsStore
func (r repos) HasAccount(ctx context.Context) (bool, error) {
	return HasAccount(ctx, r.db)
}

func (r repos) GetAccountByID(ctx context.Context, id int) (domain.Account, error) {
	return GetAccountByID(ctx, r.db, id)
}

func (r repos) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	return GetAccountByUsername(ctx, r.db, username)
}

func (r repos) CreateAccount(ctx context.Context, account domain.Account) (int64, error) {
	return CreateAccount(ctx, r.db, account)
}

func (r repos) UpdateAccount(ctx context.Context, account domain.Account) error {
	return UpdateAccount(ctx, r.db, account)
}

// InvitesStore
func (r repos) CreateInvite(ctx context.Context, token, profileID, email, role string) error {
	return CreateInvite(ctx, r.db, token, profileID, email, role)
}

func (r repos) ListInvites(ctx context.Context, profileID string) ([]domain.Invite, error) {
	return ListInvites(ctx, r.db, profileID)
}

func (r repos) GetInviteByToken(ctx context.Context, token string) (domain.Invite, error) {
	return GetInviteByToken(ctx, r.db, token)
}

func (r repos) MarkInviteUsed(ctx context.Context, id int) error {
	return MarkInviteUsed(ctx, r.db, id)
}

func (r repos) DeleteInvite(ctx context.Context, id int) error {
	return DeleteInvite(ctx, r.db, id)
}

// AuditStore
func (r repos) WriteAuditLog(ctx context.Context, actorID int, action, target string, metadata map[string]string) error {
	return WriteAuditLog(ctx, r.db, actorID, action, target, metadata)
}

func (r repos) ListAuditLogs(ctx context.Context, limit, offset int) ([]domain.AuditLog, error) {
	return ListAuditLogs(ctx, r.db, limit, offset)
}

func (r repos) CountAuditLogs(ctx context.Context) (int, error) {
	return CountAuditLogs(ctx, r.db)
}

// PicturesStore
func (r repos) ListProfilePictures(ctx context.Context, profileID string) ([]domain.ProfilePicture, error) {
	return ListProfilePictures(ctx, r.db, profileID)
}

func (r repos) CreateProfilePicture(ctx context.Context, profileID, filename, alt string) (int64, error) {
	return CreateProfilePicture(ctx, r.db, profileID, filename, alt)
}

func (r repos) GetProfilePictureFilename(ctx context.Context, profileID string, pictureID int64) (string, error) {
	return GetProfilePictureFilename(ctx, r.db, profileID, pictureID)
}

func (r repos) UpdateProfilePictureAlt(ctx context.Context, profileID string, pictureID int64, alt string) error {
	return UpdateProfilePictureAlt(ctx, r.db, profileID, pictureID, alt)
}

func (r repos) DeleteProfilePicture(ctx context.Context, profileID string, pictureID int64) (string, error) {
	return DeleteProfilePicture(ctx, r.db, profileID, pictureID)
}
