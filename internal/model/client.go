// Package model holds the row types read from the reporting tables.
// Nullable columns are pointers.
package model

import "time"

// Client is a row of the clients table.
type Client struct {
	ID                         int64      `json:"id" db:"id"`
	CreatedAt                  time.Time  `json:"created_at" db:"created_at"`
	ClientID                   *string    `json:"client_id" db:"client_id"`
	CompanyName                *string    `json:"company_name" db:"company_name"`
	Name                       *string    `json:"name" db:"name"`
	Email                      *string    `json:"email" db:"email"`
	Phone                      *string    `json:"phone" db:"phone"`
	Website                    *string    `json:"website" db:"website"`
	Referrer                   *string    `json:"referrer" db:"referrer"`
	Status                     *string    `json:"status" db:"status"`
	CSMName                    *string    `json:"csm_name" db:"csm_name"`
	DeliveryPerson             *string    `json:"delivery_person" db:"delivery_person"`
	StartedOn                  *time.Time `json:"started_on" db:"started_on"`
	FormCompleteTime           *time.Time `json:"form_complete_time" db:"form_complete_time"`
	OnboardingCallTime         *time.Time `json:"onboarding_call_time" db:"onboarding_call_time"`
	LaunchCallTime             *time.Time `json:"launch_call_time" db:"launch_call_time"`
	SiteDoneAt                 *time.Time `json:"site_done_at" db:"site_done_at"`
	LastMeaningfulActivityTime *time.Time `json:"last_meaningful_activity_time" db:"last_meaningful_activity_time"`
	ChurnedOn                  *time.Time `json:"churned_on" db:"churned_on"`
	TotalUsage                 *float64   `json:"total_usage" db:"total_usage"`
	InboundCalls               *float64   `json:"inbound_calls" db:"inbound_calls"`
	NewReviews                 *float64   `json:"new_reviews" db:"new_reviews"`
	NewWebsiteLeads            *float64   `json:"new_website_leads" db:"new_website_leads"`
	MinutesTo100Usage          *float64   `json:"minutes_to_100_usage" db:"minutes_to_100_usage"`
	MinutesToFirstValue        *float64   `json:"minutes_to_first_value" db:"minutes_to_first_value"`
}

// ClientFilter narrows ClientRepository.List. Empty fields do not filter.
type ClientFilter struct {
	Status  string
	CSMName string
}

// IsEmpty reports whether no filter was requested.
func (f ClientFilter) IsEmpty() bool {
	return f.Status == "" && f.CSMName == ""
}
