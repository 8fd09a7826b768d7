package services

import (
	"strings"
	"time"
)

type ResponseStore interface {
	GetCampaign(id string) (*Campaign, error)
	ListCampaigns() ([]*Campaign, error)
	AddResponse(r *Response) error
	ListResponses() ([]*Response, error)
}

type ResponseService struct {
	store ResponseStore
	now   func() time.Time
	idGen func(n int) string
}

type SubmitInput struct {
	CampaignID string   `json:"campaignId"`
	Score      int      `json:"score"`
	Comment    string   `json:"comment"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Answers    []Answer `json:"answers"`
}

// CampaignRef is the embedded campaign summary on listed responses.
type CampaignRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ResponseWithCampaign struct {
	Response
	Campaign *CampaignRef `json:"campaign,omitempty"`
}

func NewResponseService(store ResponseStore) *ResponseService {
	return &ResponseService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

// Submit records one public survey submission. Scores outside 0-10 are
// rejected, answers must match the campaign's declared questions, and
// name/email are kept only when the respondent provided both.
func (s *ResponseService) Submit(in SubmitInput) (*Response, error) {
	if in.Score < 0 || in.Score > 10 {
		return nil, NewInvalidError("score must be between 0 and 10")
	}
	if strings.TrimSpace(in.CampaignID) == "" {
		return nil, NewInvalidError("campaignId required")
	}
	campaign, err := s.store.GetCampaign(in.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, NewNotFoundError("campaign not found")
	}
	answers, err := validateAnswers(campaign, in.Answers)
	if err != nil {
		return nil, err
	}
	r := &Response{
		ID:         s.idGen(12),
		CampaignID: campaign.ID,
		Score:      in.Score,
		Comment:    strings.TrimSpace(in.Comment),
		Answers:    answers,
		CreatedAt:  s.now(),
	}
	// Identification is all-or-nothing: a lone name or lone email is
	// dropped and the response stays anonymous.
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name != "" && email != "" {
		r.Name = name
		r.Email = email
	}
	if err := s.store.AddResponse(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListAll returns every response with its parent campaign summary embedded,
// for dashboard aggregation.
func (s *ResponseService) ListAll() ([]*ResponseWithCampaign, error) {
	responses, err := s.store.ListResponses()
	if err != nil {
		return nil, err
	}
	campaigns, err := s.store.ListCampaigns()
	if err != nil {
		return nil, err
	}
	refs := make(map[string]*CampaignRef, len(campaigns))
	for _, c := range campaigns {
		refs[c.ID] = &CampaignRef{ID: c.ID, Name: c.Name}
	}
	out := make([]*ResponseWithCampaign, 0, len(responses))
	for _, r := range responses {
		out = append(out, &ResponseWithCampaign{Response: *r, Campaign: refs[r.CampaignID]})
	}
	return out, nil
}

// validateAnswers checks each answer against the campaign's question list:
// the question must exist and the value kind must match its declared type.
func validateAnswers(campaign *Campaign, answers []Answer) ([]Answer, error) {
	if len(answers) == 0 {
		return nil, nil
	}
	byID := make(map[string]Question, len(campaign.Questions))
	for _, q := range campaign.Questions {
		byID[q.ID] = q
	}
	out := make([]Answer, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, NewInvalidError("unknown question id: " + a.QuestionID)
		}
		if !a.Value.MatchesQuestionType(q.Type) {
			return nil, NewInvalidError("answer for question " + q.ID + " does not match its type")
		}
		out = append(out, a)
	}
	return out, nil
}
