package model

import "time"

// Opportunity is a row of the opportunities table.
type Opportunity struct {
	ID             int64      `json:"id" db:"id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at" db:"updated_at"`
	Company        *string    `json:"company" db:"company"`
	Name           *string    `json:"name" db:"name"`
	ContactID      *string    `json:"contact_id" db:"contact_id"`
	Status         *string    `json:"status" db:"status"`
	GMBVerified    bool       `json:"gmb_verified" db:"gmb_verified"`
	Setter         *string    `json:"setter" db:"setter"`
	Closer         *string    `json:"closer" db:"closer"`
	MonthlyRevenue *string    `json:"monthly_revenue" db:"monthly_revenue"`
	Source         *string    `json:"source" db:"source"`
	Campaign       *string    `json:"campaign" db:"campaign"`
	AdSet          *string    `json:"ad_set" db:"ad_set"`
	Ad             *string    `json:"ad" db:"ad"`
	Upgrade        bool       `json:"upgrade" db:"upgrade"`
	Followup       bool       `json:"followup" db:"followup"`
}

// Appointment is a row of the appointments table.
type Appointment struct {
	ID              int64      `json:"id" db:"id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	Company         *string    `json:"company" db:"company"`
	Name            *string    `json:"name" db:"name"`
	ContactID       *string    `json:"contact_id" db:"contact_id"`
	Status          *string    `json:"status" db:"status"`
	AppointmentDate *time.Time `json:"appointment_date" db:"appointment_date"`
	Setter          *string    `json:"setter" db:"setter"`
	Closer          *string    `json:"closer" db:"closer"`
	Source          *string    `json:"source" db:"source"`
	Campaign        *string    `json:"campaign" db:"campaign"`
	AdSet           *string    `json:"adset" db:"adset"`
	Ad              *string    `json:"ad" db:"ad"`
}

// RevisionLog is a website revision task assigned to a VA.
type RevisionLog struct {
	ID         int64      `json:"id" db:"id"`
	CreatedAt  *time.Time `json:"created_at" db:"created_at"`
	TaskName   *string    `json:"task_name" db:"task_name"`
	TaskID     *string    `json:"task_id" db:"task_id"`
	Assignee   *string    `json:"assignee" db:"assignee"`
	FinishedAt *time.Time `json:"finished_at" db:"finished_at"`
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
