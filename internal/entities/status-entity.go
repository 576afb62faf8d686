package entities

import "time"

const (
	StatusCodeOperational    = "OPERATIONAL"
	StatusCodeNeedsRepair    = "NEEDS_REPAIR"
	StatusCodeDecommissioned = "DECOMMISSIONED"
)

type Status struct {
	ID        uint64    `db:"id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
