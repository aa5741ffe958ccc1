//go:build unit

package pgconv

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, UUIDFromPgtype(UUIDToPgtype(id)))
	assert.Equal(t, uuid.Nil, UUIDFromPgtype(pgtype.UUID{}))
	assert.False(t, UUIDToPgtype(uuid.Nil).Valid)
	assert.Nil(t, UUIDPtrFromPgtype(pgtype.UUID{}))
	assert.Equal(t, id, *UUIDPtrFromPgtype(UUIDToPgtype(id)))
}

func TestTimeFromPgtype(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	at := time.Date(2026, 1, 10, 18, 0, 0, 0, tokyo)

	got := TimeFromPgtype(TimeToPgtype(at))
	assert.True(t, got.Equal(at))
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, TimeFromPgtype(pgtype.Timestamptz{}).IsZero())
	assert.False(t, TimeToPgtype(time.Time{}).Valid)
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(fmt.Errorf("load: %w", sql.ErrNoRows)))
	assert.False(t, IsNoRows(sql.ErrConnDone))
}
