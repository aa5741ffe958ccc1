package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"rx-exchange/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	cursorVersion    = "v1"
)

// Cursor is an opaque keyset position: the created_at and id of the last
// listing on the previous page.
type Cursor struct {
	After string `json:"after,omitempty"`
}

// Microsecond precision matches the journal's timestamptz columns.
func cursorAfter(at time.Time, id uuid.UUID) *Cursor {
	raw := strings.Join([]string{cursorVersion, strconv.FormatInt(at.UnixMicro(), 10), id.String()}, ":")
	return &Cursor{After: base64.RawURLEncoding.EncodeToString([]byte(raw))}
}

func (c *Cursor) position() (time.Time, uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(c.After)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrapf(errs.ErrInvalidRequest, "cursor encoding: %v", err)
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 || parts[0] != cursorVersion {
		return time.Time{}, uuid.Nil, errs.Wrap(errs.ErrInvalidRequest, "unsupported cursor")
	}
	micros, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrapf(errs.ErrInvalidRequest, "cursor timestamp: %v", err)
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrapf(errs.ErrInvalidRequest, "cursor id: %v", err)
	}
	return time.UnixMicro(micros).UTC(), id, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
