package repositories

import (
	"time"

	"github.com/golang-sql/civil"
	"github.com/jackc/pgx/v5/pgtype"
)

func toPgDate(d *civil.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.In(time.UTC), Valid: true}
}

func fromPgDate(d pgtype.Date) *civil.Date {
	if !d.Valid {
		return nil
	}
	cd := civil.DateOf(d.Time)
	return &cd
}
