package services

type StatsStore interface {
	ListCampaigns() ([]*Campaign, error)
	ListResponses() ([]*Response, error)
	ListResponsesByCampaign(campaignID string) ([]*Response, error)
}

// StatsService computes NPS aggregates on demand. It keeps no state and no
// cache: response volumes are small and every call recomputes from the
// stored response set.
type StatsService struct {
	store StatsStore
}

// CampaignNPS is one row of the cross-campaign comparison.
type CampaignNPS struct {
	CampaignID     string `json:"campaignId"`
	Name           string `json:"name"`
	TotalResponses int    `json:"totalResponses"`
	NPSScore       int    `json:"npsScore"`
}

// Overview aggregates across all campaigns: overall stats, a full 0-10
// score histogram, and a per-campaign NPS comparison.
type Overview struct {
	Stats
	Histogram []int         `json:"histogram"`
	Campaigns []CampaignNPS `json:"campaigns"`
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// CampaignStats summarizes one campaign's responses. An unknown campaign
// yields zeroed stats rather than an error; the stats route defines no
// failure case.
func (s *StatsService) CampaignStats(campaignID string) (*Stats, error) {
	responses, err := s.store.ListResponsesByCampaign(campaignID)
	if err != nil {
		return nil, err
	}
	st := ComputeStats(scoresOf(responses))
	return &st, nil
}

func (s *StatsService) Overview() (*Overview, error) {
	responses, err := s.store.ListResponses()
	if err != nil {
		return nil, err
	}
	campaigns, err := s.store.ListCampaigns()
	if err != nil {
		return nil, err
	}
	byCampaign := make(map[string][]int, len(campaigns))
	all := make([]int, 0, len(responses))
	for _, r := range responses {
		all = append(all, r.Score)
		byCampaign[r.CampaignID] = append(byCampaign[r.CampaignID], r.Score)
	}
	rows := make([]CampaignNPS, 0, len(campaigns))
	for _, c := range campaigns {
		st := ComputeStats(byCampaign[c.ID])
		rows = append(rows, CampaignNPS{
			CampaignID:     c.ID,
			Name:           c.Name,
			TotalResponses: st.TotalResponses,
			NPSScore:       st.NPSScore,
		})
	}
	return &Overview{
		Stats:     ComputeStats(all),
		Histogram: Histogram(all),
		Campaigns: rows,
	}, nil
}

func scoresOf(responses []*Response) []int {
	scores := make([]int, 0, len(responses))
	for _, r := range responses {
		scores = append(scores, r.Score)
	}
	return scores
}
