package model

import "time"

// Reservation statuses. UNIQUE (session_id, student_id) is enforced by the
// schema; writers go through the upsert in the reservation service.
const (
	StatusReserved = "reserved"
	StatusAttended = "attended"
	StatusNoShow   = "no_show"
	StatusCanceled = "canceled"
)

type Reservation struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	SessionID int64     `gorm:"column:session_id" json:"session_id"`
	StudentID int64     `gorm:"column:student_id" json:"student_id"`
	Status    string    `gorm:"column:status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusReserved, StatusAttended, StatusNoShow, StatusCanceled:
		return true
	}
	return false
}

// Explicit transition table for the accept/deny workflow. attended and
// no_show are recorded after the fact (reports) and cannot be undone by the
// invitation workflow; reserved and canceled flip freely and idempotently.
//
//	accept: (none) -> reserved, canceled -> reserved, reserved -> reserved
//	deny:   (none) -> (none),   reserved -> canceled, canceled -> canceled
func CanAccept(current string) bool {
	switch current {
	case "", StatusReserved, StatusCanceled:
		return true
	}
	return false
}

func CanDeny(current string) bool {
	switch current {
	case "", StatusReserved, StatusCanceled:
		return true
	}
	return false
}
