package repositories

import (
	"testing"

	"github.com/golang-sql/civil"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgDateConversion(t *testing.T) {
	assert.False(t, toPgDate(nil).Valid)
	assert.Nil(t, fromPgDate(pgtype.Date{}))

	d := civil.Date{Year: 2024, Month: 2, Day: 29}
	pg := toPgDate(&d)
	require.True(t, pg.Valid)

	back := fromPgDate(pg)
	require.NotNil(t, back)
	assert.Equal(t, d, *back)
}
