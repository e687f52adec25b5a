package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Player is one row of a players export.
// Typed fields are parsed leniently; Fields keeps every column as exported.
type Player struct {
	ID                string
	Identifier        string
	ExternalUserID    string
	SessionCount      int
	Language          string
	Timezone          int
	GameVersion       string
	DeviceOS          string
	DeviceType        int
	DeviceModel       string
	AdID              string
	Tags              map[string]any
	LastActive        time.Time
	Playtime          int
	AmountSpent       float64
	CreatedAt         time.Time
	InvalidIdentifier bool
	BadgeCount        int
	Country           string

	Fields map[string]string
}

// PlayerReader decodes a players export, gzip-compressed or plain.
type PlayerReader struct {
	csv    *csv.Reader
	gz     *gzip.Reader
	header []string
}

// NewPlayerReader reads the header row of r.
func NewPlayerReader(r io.Reader) (*PlayerReader, error) {
	br := bufio.NewReader(r)
	pr := &PlayerReader{}

	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		pr.gz = gz
		pr.csv = csv.NewReader(gz)
	} else {
		pr.csv = csv.NewReader(br)
	}
	pr.csv.FieldsPerRecord = -1
	pr.csv.ReuseRecord = false

	header, err := pr.csv.Read()
	if err != nil {
		_ = pr.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	pr.header = header

	return pr, nil
}

// Header returns the column names.
func (pr *PlayerReader) Header() []string {
	return append([]string(nil), pr.header...)
}

// Next returns the next player or io.EOF.
func (pr *PlayerReader) Next() (Player, error) {
	record, err := pr.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Player{}, io.EOF
		}
		return Player{}, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	row := make(map[string]string, len(pr.header))
	for i, name := range pr.header {
		if i < len(record) {
			row[name] = record[i]
		}
	}
	return newPlayer(row), nil
}

// Close releases the gzip stream. It does not close the underlying reader.
func (pr *PlayerReader) Close() error {
	if pr.gz != nil {
		return pr.gz.Close()
	}
	return nil
}

// ReadPlayers decodes every row of r.
func ReadPlayers(r io.Reader) ([]Player, error) {
	pr, err := NewPlayerReader(r)
	if err != nil {
		return nil, err
	}
	defer pr.Close()

	var players []Player
	for {
		p, err := pr.Next()
		if errors.Is(err, io.EOF) {
			return players, nil
		}
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
}

func newPlayer(row map[string]string) Player {
	return Player{
		ID:                row["id"],
		Identifier:        row["identifier"],
		ExternalUserID:    row["external_user_id"],
		SessionCount:      atoi(row["session_count"]),
		Language:          row["language"],
		Timezone:          atoi(row["timezone"]),
		GameVersion:       row["game_version"],
		DeviceOS:          row["device_os"],
		DeviceType:        atoi(row["device_type"]),
		DeviceModel:       row["device_model"],
		AdID:              row["ad_id"],
		Tags:              parseTags(row["tags"]),
		LastActive:        parseTime(row["last_active"]),
		Playtime:          atoi(row["playtime"]),
		AmountSpent:       atof(row["amount_spent"]),
		CreatedAt:         parseTime(row["created_at"]),
		InvalidIdentifier: parseBool(row["invalid_identifier"]),
		BadgeCount:        atoi(row["badge_count"]),
		Country:           row["country"],
		Fields:            row,
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "1", "yes":
		return true
	}
	return false
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
}

// parseTime accepts the layouts seen in exports plus unix seconds.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC()
	}
	return time.Time{}
}

func parseTags(s string) map[string]any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var tags map[string]any
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil
	}
	return tags
}
