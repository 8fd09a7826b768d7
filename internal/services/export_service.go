package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"
)

type ExportStore interface {
	ListCampaigns() ([]*Campaign, error)
	ListResponses() ([]*Response, error)
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportRow is one CSV line of the response export.
type ExportRow struct {
	ID           string
	CampaignID   string
	CampaignName string
	Name         string
	Email        string
	Score        int
	Comment      string
	CreatedAt    time.Time
}

type ExportService struct {
	store ExportStore
}

func NewExportService(store ExportStore) *ExportService {
	return &ExportService{store: store}
}

// ExportCSV renders every response across all campaigns as a CSV download.
func (s *ExportService) ExportCSV() (*ExportResult, error) {
	responses, err := s.store.ListResponses()
	if err != nil {
		return nil, err
	}
	campaigns, err := s.store.ListCampaigns()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(campaigns))
	for _, c := range campaigns {
		names[c.ID] = c.Name
	}
	rows := make([]ExportRow, 0, len(responses))
	for _, r := range responses {
		rows = append(rows, ExportRow{
			ID:           r.ID,
			CampaignID:   r.CampaignID,
			CampaignName: names[r.CampaignID],
			Name:         r.Name,
			Email:        r.Email,
			Score:        r.Score,
			Comment:      r.Comment,
			CreatedAt:    r.CreatedAt,
		})
	}
	b, err := ExportResponsesCSV(rows)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    "responses.csv",
		ContentType: "text/csv",
		Data:        b,
	}, nil
}

// ExportResponsesCSV writes rows in the fixed export column order. Fields
// are escaped per RFC 4180 (embedded quotes doubled), missing optionals
// render as empty strings, timestamps as RFC 3339 UTC.
func ExportResponsesCSV(rows []ExportRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "campaignId", "campaignName", "name", "email", "score", "comment", "createdAt"})
	for _, r := range rows {
		rec := []string{
			r.ID,
			r.CampaignID,
			r.CampaignName,
			r.Name,
			r.Email,
			strconv.Itoa(r.Score),
			r.Comment,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
