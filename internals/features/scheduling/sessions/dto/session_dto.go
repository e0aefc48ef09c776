package dto

import (
	"fmt"
	"strings"
	"time"

	"educlub_backend/internals/features/scheduling/sessions/model"
)

// ================== REQUEST ==================

type CreateSessionRequest struct {
	CourseCode         string  `json:"course_code"`
	CounterpartyUserID int64   `json:"counterparty_user_id"`
	ScheduledAt        string  `json:"scheduled_at"` // ISO 8601
	DurationMin        *int    `json:"duration_min"` // default 60
	Platform           string  `json:"platform"`     // default meet
	JoinURL            *string `json:"join_url"`     // optional override
	CreateReservation  *bool   `json:"create_reservation"` // default false: no reservation until the invitee accepts
	TutorIsActor       *bool   `json:"tutor_is_actor"`     // legacy alias for actor_is_host
	ActorIsHost        *bool   `json:"actor_is_host"`
}

// ScheduleInput is the validated, defaulted form handed to the scheduler.
type ScheduleInput struct {
	ActorID           int64
	CourseCode        string
	CounterpartyID    int64
	ScheduledAt       time.Time
	DurationMin       int
	Platform          string
	JoinURL           string
	CreateReservation bool
	ActorIsHost       bool
}

func (in *ScheduleInput) HostID() int64 {
	if in.ActorIsHost {
		return in.ActorID
	}
	return in.CounterpartyID
}

func (in *ScheduleInput) GuestID() int64 {
	if in.ActorIsHost {
		return in.CounterpartyID
	}
	return in.ActorID
}

// Normalize validates the request and applies defaults. The returned message
// names the offending field; nothing is persisted before this passes.
func (r *CreateSessionRequest) Normalize(actorID int64) (*ScheduleInput, string) {
	courseCode := strings.TrimSpace(r.CourseCode)
	if courseCode == "" {
		return nil, "course_code required"
	}

	if r.CounterpartyUserID <= 0 {
		return nil, "counterparty_user_id invalid"
	}
	if r.CounterpartyUserID == actorID {
		return nil, "counterparty_user_id must differ from the actor"
	}

	scheduledAt, err := time.Parse(time.RFC3339, strings.TrimSpace(r.ScheduledAt))
	if err != nil {
		return nil, "scheduled_at invalid"
	}

	durationMin := 60
	if r.DurationMin != nil {
		durationMin = *r.DurationMin
	}
	if durationMin < model.DurationMinMinutes || durationMin > model.DurationMaxMinutes {
		return nil, fmt.Sprintf("duration_min out of range (%d..%d)", model.DurationMinMinutes, model.DurationMaxMinutes)
	}

	platform := r.Platform
	if platform == "" {
		platform = model.PlatformMeet
	}
	if !model.IsValidPlatform(platform) {
		return nil, "platform invalid"
	}

	joinURL := ""
	if r.JoinURL != nil {
		joinURL = strings.TrimSpace(*r.JoinURL)
	}

	// actor_is_host wins; the legacy tutor_is_actor flag only applies when
	// actor_is_host is absent (default true).
	actorIsHost := true
	if r.ActorIsHost != nil {
		actorIsHost = *r.ActorIsHost
	} else if r.TutorIsActor != nil {
		actorIsHost = *r.TutorIsActor
	}

	return &ScheduleInput{
		ActorID:           actorID,
		CourseCode:        courseCode,
		CounterpartyID:    r.CounterpartyUserID,
		ScheduledAt:       scheduledAt,
		DurationMin:       durationMin,
		Platform:          platform,
		JoinURL:           joinURL,
		CreateReservation: r.CreateReservation != nil && *r.CreateReservation,
		ActorIsHost:       actorIsHost,
	}, ""
}

// ================== RESPONSE ==================

type SessionView struct {
	SessionID   int64     `json:"session_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	DurationMin int       `json:"duration_min"`
	Platform    string    `json:"platform"`
	JoinURL     string    `json:"join_url"`
	Status      string    `json:"status"`
	HostID      int64     `json:"host_id"`
	GuestID     int64     `json:"guest_id"`
}

type ScheduleResult struct {
	Session       SessionView
	ReservationID *int64
	Warning       string
}

// SessionListItem is one calendar row (caller as host or guest).
type SessionListItem struct {
	SessionID   int64     `gorm:"column:session_id" json:"session_id"`
	ScheduledAt time.Time `gorm:"column:scheduled_at" json:"scheduled_at"`
	DurationMin int       `gorm:"column:duration_min" json:"duration_min"`
	Platform    string    `gorm:"column:platform" json:"platform"`
	JoinURL     string    `gorm:"column:join_url" json:"join_url"`
	CourseCode  string    `gorm:"column:course_code" json:"course_code"`
	CourseName  string    `gorm:"column:course_name" json:"course_name"`
	Role        string    `gorm:"column:role" json:"role"`
}
