package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Lesson is a purchasable offering with finite capacity. Spaces is the
// authoritative remaining capacity as last known from the service; it is
// mutated only by a catalog refresh, never by cart operations.
type Lesson struct {
	ID       string
	Subject  string
	Location string
	Price    decimal.Decimal
	Spaces   int
}

type lessonJSON struct {
	ID       json.RawMessage `json:"id"`
	AltID    json.RawMessage `json:"_id"`
	Subject  string          `json:"subject"`
	Location string          `json:"location"`
	Price    decimal.Decimal `json:"price"`
	Spaces   int             `json:"spaces"`
}

// UnmarshalJSON normalizes the lesson identifier once at ingestion. The
// service may send either "_id" or "id", as a number or a string; "_id"
// wins when both are present.
func (l *Lesson) UnmarshalJSON(data []byte) error {
	var raw lessonJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id := normalizeID(raw.AltID)
	if id == "" {
		id = normalizeID(raw.ID)
	}

	l.ID = id
	l.Subject = raw.Subject
	l.Location = raw.Location
	l.Price = raw.Price
	l.Spaces = raw.Spaces
	if l.Spaces < 0 {
		l.Spaces = 0
	}
	return nil
}

// MarshalJSON always emits the normalized "id" field and the price as a
// plain JSON number.
func (l Lesson) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string      `json:"id"`
		Subject  string      `json:"subject"`
		Location string      `json:"location"`
		Price    json.Number `json:"price"`
		Spaces   int         `json:"spaces"`
	}{
		ID:       l.ID,
		Subject:  l.Subject,
		Location: l.Location,
		Price:    json.Number(l.Price.String()),
		Spaces:   l.Spaces,
	})
}

func normalizeID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	return s
}
