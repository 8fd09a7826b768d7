package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/npslab/npsboard/internal/services"
)

// MemoryStore keeps everything in process memory behind a RWMutex. It backs
// local development runs and the handler tests; production uses the SQLite
// store.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]*services.User
	campaigns map[string]*services.Campaign
	responses []*services.Response
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     map[string]*services.User{},
		campaigns: map[string]*services.Campaign{},
		responses: []*services.Response{},
	}
}

func (s *MemoryStore) AddFirstUser(u *services.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.users) > 0 {
		return services.ErrAdminExists
	}
	copy := *u
	s.users[strings.ToLower(u.Username)] = &copy
	return nil
}

func (s *MemoryStore) FindUserByUsername(username string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[strings.ToLower(username)]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, nil
}

func (s *MemoryStore) CountUsers() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

func (s *MemoryStore) InsertCampaign(c *services.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *c
	s.campaigns[c.ID] = &copy
	return nil
}

func (s *MemoryStore) GetCampaign(id string) (*services.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.campaigns[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListCampaigns() ([]*services.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		copy := *c
		out = append(out, &copy)
	}
	// stable order for listings: oldest first, id as tiebreaker
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpdateCampaign(c *services.Campaign) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[c.ID]; !ok {
		return false, nil
	}
	copy := *c
	s.campaigns[c.ID] = &copy
	return true, nil
}

func (s *MemoryStore) DeleteCampaign(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[id]; !ok {
		return false, nil
	}
	delete(s.campaigns, id)
	kept := make([]*services.Response, 0, len(s.responses))
	for _, r := range s.responses {
		if r.CampaignID != id {
			kept = append(kept, r)
		}
	}
	s.responses = kept
	return true, nil
}

func (s *MemoryStore) AddResponse(r *services.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *r
	s.responses = append(s.responses, &copy)
	return nil
}

func (s *MemoryStore) ListResponses() ([]*services.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Response, 0, len(s.responses))
	for _, r := range s.responses {
		copy := *r
		out = append(out, &copy)
	}
	return out, nil
}

func (s *MemoryStore) ListResponsesByCampaign(campaignID string) ([]*services.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Response{}
	for _, r := range s.responses {
		if r.CampaignID == campaignID {
			copy := *r
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (s *MemoryStore) CountResponsesByCampaign(campaignID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.responses {
		if r.CampaignID == campaignID {
			n++
		}
	}
	return n, nil
}
