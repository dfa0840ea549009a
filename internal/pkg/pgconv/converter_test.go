//go:build unit

package pgconv

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestStringPtrRoundTrip(t *testing.T) {
	assert.Nil(t, StringPtrFromPgtype(pgtype.Text{}))
	assert.False(t, StringPtrToPgtype(nil).Valid)

	s := "whiteboard"
	got := StringPtrFromPgtype(StringPtrToPgtype(&s))
	if assert.NotNil(t, got) {
		assert.Equal(t, s, *got)
	}
}

func TestTimeFromPgtypeNormalizesToUTC(t *testing.T) {
	local := time.Date(2024, 1, 1, 7, 0, 0, 0, time.FixedZone("BRT", -3*60*60))
	got := TimeFromPgtype(TimeToPgtype(local))

	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(local))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.False(t, IsNoRows(assert.AnError))
}
