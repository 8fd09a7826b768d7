package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// User is the admin account. The platform has a single-admin model: the
// first registration creates the only user, and no flow updates or removes
// it afterwards.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	PassHash  []byte    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the subset of User returned to clients.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

const (
	QuestionTypeYesNo = "yes-no"
	QuestionTypeText  = "text"
)

// Question is a custom survey question attached to a campaign. Order within
// the campaign's slice is meaningful: it drives display and answer matching.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`
}

type Campaign struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	WelcomeText string     `json:"welcomeText,omitempty"`
	IsActive    bool       `json:"isActive"`
	Questions   []Question `json:"questions,omitempty"`
	QRCodeURL   string     `json:"qrCodeUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// PublicCampaign is what unauthenticated survey pages may see. It
// deliberately omits description and internal metadata.
type PublicCampaign struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	WelcomeText string     `json:"welcomeText,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
	IsActive    bool       `json:"isActive"`
}

type AnswerKind int

const (
	AnswerKindBool AnswerKind = iota + 1
	AnswerKindText
)

// AnswerValue is a closed variant: a yes/no answer or free text, never
// arbitrary JSON. On the wire it is the bare scalar (true, false, or a
// string), matching what survey forms submit.
type AnswerValue struct {
	Kind AnswerKind
	Bool bool
	Text string
}

func BoolAnswer(v bool) AnswerValue   { return AnswerValue{Kind: AnswerKindBool, Bool: v} }
func TextAnswer(v string) AnswerValue { return AnswerValue{Kind: AnswerKindText, Text: v} }

// MatchesQuestionType reports whether the value's kind is legal for the
// declared question type.
func (v AnswerValue) MatchesQuestionType(questionType string) bool {
	switch questionType {
	case QuestionTypeYesNo:
		return v.Kind == AnswerKindBool
	case QuestionTypeText:
		return v.Kind == AnswerKindText
	default:
		return false
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerKindBool:
		return json.Marshal(v.Bool)
	case AnswerKindText:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolAnswer(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextAnswer(s)
		return nil
	}
	return NewInvalidError("answer must be a string or a boolean")
}

// Answer pairs a campaign question with the respondent's value.
type Answer struct {
	QuestionID string      `json:"questionId"`
	Value      AnswerValue `json:"answer"`
}

// Response is a single survey submission. Name and email are present only
// when the respondent identified themselves with both; otherwise the
// response is anonymous.
type Response struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaignId"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Answers    []Answer  `json:"answers,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
