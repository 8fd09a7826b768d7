package api

import "github.com/npslab/npsboard/internal/services"

// Store is the full persistence surface the API needs. Implementations:
// the in-memory store in this package and the SQLite store in internal/db.
// The method set is a superset of every service's narrow store interface,
// so a Store satisfies all of them directly.
type Store interface {
	// AddFirstUser inserts the admin only while the users table is empty,
	// returning services.ErrAdminExists otherwise. Implementations must
	// make the emptiness check atomic with the insert.
	AddFirstUser(u *services.User) error
	FindUserByUsername(username string) (*services.User, error)
	CountUsers() (int, error)

	InsertCampaign(c *services.Campaign) error
	GetCampaign(id string) (*services.Campaign, error)
	ListCampaigns() ([]*services.Campaign, error)
	UpdateCampaign(c *services.Campaign) (bool, error)
	// DeleteCampaign cascades to the campaign's responses.
	DeleteCampaign(id string) (bool, error)

	AddResponse(r *services.Response) error
	ListResponses() ([]*services.Response, error)
	ListResponsesByCampaign(campaignID string) ([]*services.Response, error)
	CountResponsesByCampaign(campaignID string) (int, error)
}

var _ Store = (*MemoryStore)(nil)

var (
	_ services.AuthStore     = Store(nil)
	_ services.CampaignStore = Store(nil)
	_ services.ResponseStore = Store(nil)
	_ services.StatsStore    = Store(nil)
	_ services.ExportStore   = Store(nil)
)
