package services

import (
	"encoding/json"
	"strings"
	"time"
)

type CampaignStore interface {
	InsertCampaign(c *Campaign) error
	GetCampaign(id string) (*Campaign, error)
	ListCampaigns() ([]*Campaign, error)
	// UpdateCampaign persists c, reporting false when no such campaign exists.
	UpdateCampaign(c *Campaign) (bool, error)
	// DeleteCampaign removes the campaign and, by cascade, its responses.
	DeleteCampaign(id string) (bool, error)
	CountResponsesByCampaign(campaignID string) (int, error)
}

type CampaignService struct {
	store         CampaignStore
	publicBaseURL string
	now           func() time.Time
	idGen         func(n int) string
}

type CreateCampaignInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	WelcomeText string     `json:"welcomeText"`
	Questions   []Question `json:"questions"`
}

// CampaignWithCount is the admin listing shape: the full record plus an
// aggregate response count, without response bodies.
type CampaignWithCount struct {
	Campaign
	ResponseCount int `json:"responseCount"`
}

func NewCampaignService(store CampaignStore, publicBaseURL string) *CampaignService {
	return &CampaignService{
		store:         store,
		publicBaseURL: publicBaseURL,
		now:           func() time.Time { return time.Now().UTC() },
		idGen:         shortID,
	}
}

// Create persists a new campaign. The id is generated up front so the
// derived qrCodeUrl is part of the single insert.
func (s *CampaignService) Create(in CreateCampaignInput) (*Campaign, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, NewInvalidError("name required")
	}
	questions, err := s.normalizeQuestions(in.Questions)
	if err != nil {
		return nil, err
	}
	c := &Campaign{
		ID:          s.idGen(8),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		WelcomeText: strings.TrimSpace(in.WelcomeText),
		IsActive:    true,
		Questions:   questions,
		CreatedAt:   s.now(),
	}
	c.QRCodeURL = s.campaignURL(c.ID)
	if err := s.store.InsertCampaign(c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns every campaign with its response count.
func (s *CampaignService) List() ([]*CampaignWithCount, error) {
	campaigns, err := s.store.ListCampaigns()
	if err != nil {
		return nil, err
	}
	out := make([]*CampaignWithCount, 0, len(campaigns))
	for _, c := range campaigns {
		n, err := s.store.CountResponsesByCampaign(c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &CampaignWithCount{Campaign: *c, ResponseCount: n})
	}
	return out, nil
}

func (s *CampaignService) Get(id string) (*Campaign, error) {
	c, err := s.store.GetCampaign(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, NewNotFoundError("campaign not found")
	}
	return c, nil
}

// GetPublic returns the survey-page view of a campaign. Inactive campaigns
// are never exposed, not even their questions.
func (s *CampaignService) GetPublic(id string) (*PublicCampaign, error) {
	c, err := s.store.GetCampaign(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, NewNotFoundError("campaign not found")
	}
	if !c.IsActive {
		return nil, NewForbiddenError("campaign is not active")
	}
	return &PublicCampaign{
		ID:          c.ID,
		Name:        c.Name,
		WelcomeText: c.WelcomeText,
		Questions:   c.Questions,
		IsActive:    c.IsActive,
	}, nil
}

// Update applies a partial update from a raw JSON object. Only recognized
// fields are touched; questions are re-validated like on create.
func (s *CampaignService) Update(id string, raw map[string]any) (*Campaign, error) {
	old, err := s.store.GetCampaign(id)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, NewNotFoundError("campaign not found")
	}
	updated := *old
	if v, ok := raw["name"].(string); ok {
		name := strings.TrimSpace(v)
		if name == "" {
			return nil, NewInvalidError("name cannot be blank")
		}
		updated.Name = name
	}
	if v, ok := raw["description"].(string); ok {
		updated.Description = strings.TrimSpace(v)
	}
	if v, ok := raw["welcomeText"].(string); ok {
		updated.WelcomeText = strings.TrimSpace(v)
	}
	if v, ok := raw["isActive"].(bool); ok {
		updated.IsActive = v
	}
	if v, ok := raw["questions"]; ok {
		questions, err := decodeQuestions(v)
		if err != nil {
			return nil, err
		}
		questions, err = s.normalizeQuestions(questions)
		if err != nil {
			return nil, err
		}
		updated.Questions = questions
	}
	ok, err := s.store.UpdateCampaign(&updated)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewNotFoundError("campaign not found")
	}
	return &updated, nil
}

func (s *CampaignService) Delete(id string) error {
	ok, err := s.store.DeleteCampaign(id)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError("campaign not found")
	}
	return nil
}

func (s *CampaignService) campaignURL(id string) string {
	return strings.TrimRight(s.publicBaseURL, "/") + "/campaign/" + id
}

// normalizeQuestions trims question text, fills missing ids, and rejects
// unknown types and duplicate ids. Slice order is preserved.
func (s *CampaignService) normalizeQuestions(questions []Question) ([]Question, error) {
	if len(questions) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(questions))
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			return nil, NewInvalidError("question text required")
		}
		if q.Type != QuestionTypeYesNo && q.Type != QuestionTypeText {
			return nil, NewInvalidError("question type must be yes-no or text")
		}
		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			q.ID = "q" + s.idGen(7)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, NewInvalidError("duplicate question id: " + q.ID)
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out, nil
}

func decodeQuestions(raw any) ([]Question, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, NewInvalidError("invalid questions payload")
	}
	var questions []Question
	if err := json.Unmarshal(b, &questions); err != nil {
		return nil, NewInvalidError("invalid questions payload")
	}
	return questions, nil
}
