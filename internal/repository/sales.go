package repository

import (
	"context"

	"github.com/deppfellow/opsboard/internal/model"
)

const (
	opportunitiesTable = "opportunities"
	appointmentsTable  = "appointments"
)

type OpportunityRepository struct {
	db       DBTX
	pageSize int
}

func NewOpportunityRepository(db DBTX, pageSize int) *OpportunityRepository {
	return &OpportunityRepository{db: db, pageSize: pageSize}
}

func (r *OpportunityRepository) ListAll(ctx context.Context) ([]model.Opportunity, error) {
	return fetchPaged[model.Opportunity](ctx, r.db, opportunitiesTable, `
		SELECT id, created_at, updated_at, company, name, contact_id, status, gmb_verified,
			setter, closer, monthly_revenue, source, campaign, ad_set, ad, upgrade, followup
		FROM opportunities
		ORDER BY id`, r.pageSize)
}

type AppointmentRepository struct {
	db       DBTX
	pageSize int
}

func NewAppointmentRepository(db DBTX, pageSize int) *AppointmentRepository {
	return &AppointmentRepository{db: db, pageSize: pageSize}
}

func (r *AppointmentRepository) ListAll(ctx context.Context) ([]model.Appointment, error) {
	return fetchPaged[model.Appointment](ctx, r.db, appointmentsTable, `
		SELECT id, created_at, company, name, contact_id, status, appointment_date,
			setter, closer, source, campaign, adset, ad
		FROM appointments
		ORDER BY id`, r.pageSize)
}
