package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

var ErrInvalidCursor = errors.New("invalid pagination cursor")

// Cursor pins a position in a result set ordered by (sort key, id). The id
// tie-breaker keeps the ordering strictly monotonic, so rows with identical
// sort-key values are never skipped or duplicated across pages. Order names
// the sort column the cursor was minted against, so a token cannot be
// replayed against a differently ordered listing. Prev marks cursors that
// point at the preceding page.
type Cursor struct {
	Key   time.Time `json:"k"`
	ID    uint      `json:"id"`
	Order string    `json:"o"`
	Prev  bool      `json:"prev,omitempty"`
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// EncodeOrNil is a convenience for response shaping: nil stays nil.
func EncodeOrNil(c *Cursor) *string {
	if c == nil {
		return nil
	}

	token := c.Encode()
	return &token
}

func Decode(token string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)

	if err != nil {
		return nil, ErrInvalidCursor
	}

	var c Cursor

	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, ErrInvalidCursor
	}

	if c.ID == 0 || c.Key.IsZero() || c.Order == "" {
		return nil, ErrInvalidCursor
	}

	return &c, nil
}
