package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/npslab/npsboard/internal/api"
	"github.com/npslab/npsboard/internal/services"
)

// SQLiteStore implements api.Store over a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ api.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func encodeJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeQuestions(ns sql.NullString) []services.Question {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out []services.Question
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		return nil
	}
	return out
}

func decodeAnswers(ns sql.NullString) []services.Answer {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out []services.Answer
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		return nil
	}
	return out
}

// AddFirstUser inserts the admin in one statement guarded by the emptiness
// of the users table, so concurrent registrations cannot both win.
func (s *SQLiteStore) AddFirstUser(u *services.User) error {
	res, err := s.db.Exec(
		`INSERT INTO users (id, username, pass_hash, role, created_at)
		 SELECT ?, ?, ?, ?, ?
		 WHERE NOT EXISTS (SELECT 1 FROM users)`,
		u.ID, u.Username, u.PassHash, u.Role, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert first user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return services.ErrAdminExists
	}
	return nil
}

func (s *SQLiteStore) FindUserByUsername(username string) (*services.User, error) {
	row := s.db.QueryRow(
		`SELECT id, username, pass_hash, role, created_at FROM users WHERE username = ?`,
		username,
	)
	var u services.User
	err := row.Scan(&u.ID, &u.Username, &u.PassHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *SQLiteStore) CountUsers() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) InsertCampaign(c *services.Campaign) error {
	questions, err := encodeJSON(jsonOrNil(c.Questions))
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO campaigns (id, name, description, welcome_text, is_active, questions, qr_code_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, toNullString(c.Description), toNullString(c.WelcomeText),
		boolToInt(c.IsActive), questions, toNullString(c.QRCodeURL), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetCampaign(id string) (*services.Campaign, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, welcome_text, is_active, questions, qr_code_url, created_at
		 FROM campaigns WHERE id = ?`, id,
	)
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) ListCampaigns() ([]*services.Campaign, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, welcome_text, is_active, questions, qr_code_url, created_at
		 FROM campaigns ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()
	var out []*services.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateCampaign(c *services.Campaign) (bool, error) {
	questions, err := encodeJSON(jsonOrNil(c.Questions))
	if err != nil {
		return false, fmt.Errorf("encode questions: %w", err)
	}
	res, err := s.db.Exec(
		`UPDATE campaigns
		 SET name = ?, description = ?, welcome_text = ?, is_active = ?, questions = ?, qr_code_url = ?
		 WHERE id = ?`,
		c.Name, toNullString(c.Description), toNullString(c.WelcomeText),
		boolToInt(c.IsActive), questions, toNullString(c.QRCodeURL), c.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) DeleteCampaign(id string) (bool, error) {
	// responses go with it via ON DELETE CASCADE
	res, err := s.db.Exec(`DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) AddResponse(r *services.Response) error {
	answers, err := encodeJSON(jsonOrNilAnswers(r.Answers))
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO responses (id, campaign_id, score, comment, name, email, answers, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CampaignID, r.Score, toNullString(r.Comment),
		toNullString(r.Name), toNullString(r.Email), answers, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListResponses() ([]*services.Response, error) {
	return s.queryResponses(
		`SELECT id, campaign_id, score, comment, name, email, answers, created_at
		 FROM responses ORDER BY created_at, id`,
	)
}

func (s *SQLiteStore) ListResponsesByCampaign(campaignID string) ([]*services.Response, error) {
	return s.queryResponses(
		`SELECT id, campaign_id, score, comment, name, email, answers, created_at
		 FROM responses WHERE campaign_id = ? ORDER BY created_at, id`,
		campaignID,
	)
}

func (s *SQLiteStore) CountResponsesByCampaign(campaignID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM responses WHERE campaign_id = ?`, campaignID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) queryResponses(query string, args ...any) ([]*services.Response, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()
	out := []*services.Response{}
	for rows.Next() {
		var (
			r                             services.Response
			comment, name, email, answers sql.NullString
			createdAt                     time.Time
		)
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.Score, &comment, &name, &email, &answers, &createdAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		r.Comment = fromNullString(comment)
		r.Name = fromNullString(name)
		r.Email = fromNullString(email)
		r.Answers = decodeAnswers(answers)
		r.CreatedAt = createdAt
		out = append(out, &r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*services.Campaign, error) {
	var (
		c                           services.Campaign
		description, welcome, qrURL sql.NullString
		questions                   sql.NullString
		isActive                    int
		createdAt                   time.Time
	)
	err := row.Scan(&c.ID, &c.Name, &description, &welcome, &isActive, &questions, &qrURL, &createdAt)
	if err != nil {
		return nil, err
	}
	c.Description = fromNullString(description)
	c.WelcomeText = fromNullString(welcome)
	c.IsActive = isActive != 0
	c.Questions = decodeQuestions(questions)
	c.QRCodeURL = fromNullString(qrURL)
	c.CreatedAt = createdAt
	return &c, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func jsonOrNil(qs []services.Question) any {
	if len(qs) == 0 {
		return nil
	}
	return qs
}

func jsonOrNilAnswers(as []services.Answer) any {
	if len(as) == 0 {
		return nil
	}
	return as
}
