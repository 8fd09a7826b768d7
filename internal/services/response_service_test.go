package services

import (
	"testing"
	"time"
)

type responseStubStore struct {
	campaigns map[string]*Campaign
	responses []*Response
}

func newResponseStubStore() *responseStubStore {
	return &responseStubStore{campaigns: make(map[string]*Campaign)}
}

func (s *responseStubStore) GetCampaign(id string) (*Campaign, error) {
	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *responseStubStore) ListCampaigns() ([]*Campaign, error) {
	out := make([]*Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (s *responseStubStore) AddResponse(r *Response) error {
	cp := *r
	s.responses = append(s.responses, &cp)
	return nil
}

func (s *responseStubStore) ListResponses() ([]*Response, error) {
	out := make([]*Response, 0, len(s.responses))
	for _, r := range s.responses {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func seedCampaign(store *responseStubStore) *Campaign {
	c := &Campaign{
		ID:       "camp0001",
		Name:     "Checkout",
		IsActive: true,
		Questions: []Question{
			{ID: "q1", Text: "Would you return?", Type: QuestionTypeYesNo},
			{ID: "q2", Text: "Anything else?", Type: QuestionTypeText},
		},
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	store.campaigns[c.ID] = c
	return c
}

func TestResponseSubmit(t *testing.T) {
	store := newResponseStubStore()
	c := seedCampaign(store)
	svc := NewResponseService(store)

	r, err := svc.Submit(SubmitInput{
		CampaignID: c.ID,
		Score:      9,
		Comment:    "  great service  ",
		Name:       "Ada",
		Email:      "ada@example.com",
		Answers: []Answer{
			{QuestionID: "q1", Value: BoolAnswer(true)},
			{QuestionID: "q2", Value: TextAnswer("fast checkout")},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(r.ID) != 12 {
		t.Fatalf("unexpected response id %q", r.ID)
	}
	if r.Comment != "great service" {
		t.Fatalf("comment not trimmed: %q", r.Comment)
	}
	if r.Name != "Ada" || r.Email != "ada@example.com" {
		t.Fatalf("identification dropped: %+v", r)
	}
	if len(store.responses) != 1 {
		t.Fatalf("response not persisted")
	}
}

func TestResponseSubmitScoreBounds(t *testing.T) {
	store := newResponseStubStore()
	c := seedCampaign(store)
	svc := NewResponseService(store)

	for _, score := range []int{-1, 11, 15} {
		_, err := svc.Submit(SubmitInput{CampaignID: c.ID, Score: score})
		if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
			t.Fatalf("score %d: got %v, want invalid error", score, err)
		}
	}
	for _, score := range []int{0, 10} {
		if _, err := svc.Submit(SubmitInput{CampaignID: c.ID, Score: score}); err != nil {
			t.Fatalf("boundary score %d rejected: %v", score, err)
		}
	}
}

func TestResponseSubmitUnknownCampaign(t *testing.T) {
	svc := NewResponseService(newResponseStubStore())
	_, err := svc.Submit(SubmitInput{CampaignID: "missing", Score: 5})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestResponseSubmitAnswerValidation(t *testing.T) {
	store := newResponseStubStore()
	c := seedCampaign(store)
	svc := NewResponseService(store)

	_, err := svc.Submit(SubmitInput{
		CampaignID: c.ID,
		Score:      8,
		Answers:    []Answer{{QuestionID: "nope", Value: TextAnswer("x")}},
	})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("unknown question: got %v", err)
	}

	_, err = svc.Submit(SubmitInput{
		CampaignID: c.ID,
		Score:      8,
		Answers:    []Answer{{QuestionID: "q1", Value: TextAnswer("yes")}},
	})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("kind mismatch: got %v", err)
	}
}

func TestResponseSubmitAnonymizesPartialIdentity(t *testing.T) {
	store := newResponseStubStore()
	c := seedCampaign(store)
	svc := NewResponseService(store)

	cases := []struct{ name, email string }{
		{"Ada", ""},
		{"", "ada@example.com"},
		{"  ", "ada@example.com"},
	}
	for _, tc := range cases {
		r, err := svc.Submit(SubmitInput{CampaignID: c.ID, Score: 7, Name: tc.name, Email: tc.email})
		if err != nil {
			t.Fatalf("submit(%q, %q): %v", tc.name, tc.email, err)
		}
		if r.Name != "" || r.Email != "" {
			t.Fatalf("partial identity kept: name=%q email=%q", r.Name, r.Email)
		}
	}
}

func TestResponseListAllEmbedsCampaign(t *testing.T) {
	store := newResponseStubStore()
	c := seedCampaign(store)
	svc := NewResponseService(store)

	if _, err := svc.Submit(SubmitInput{CampaignID: c.ID, Score: 10}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	store.responses = append(store.responses, &Response{
		ID: "orphan000000", CampaignID: "gone", Score: 2,
	})

	list, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("want 2 responses, got %d", len(list))
	}
	if list[0].Campaign == nil || list[0].Campaign.Name != "Checkout" {
		t.Fatalf("campaign ref missing: %+v", list[0])
	}
	if list[1].Campaign != nil {
		t.Fatalf("orphan response must have nil campaign ref")
	}
}
