package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/opsboard/internal/model"
)

const clientsTable = "clients"

const clientColumns = `id, created_at, client_id, company_name, name, email, phone, website,
	referrer, status, csm_name, delivery_person, started_on, form_complete_time,
	onboarding_call_time, launch_call_time, site_done_at, last_meaningful_activity_time,
	churned_on, total_usage, inbound_calls, new_reviews, new_website_leads,
	minutes_to_100_usage, minutes_to_first_value`

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

// List returns every client matching the non-empty fields of filter,
// ordered by id.
func (r *ClientRepository) List(ctx context.Context, filter model.ClientFilter) ([]model.Client, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CSMName != "" {
		args = append(args, filter.CSMName)
		conds = append(conds, fmt.Sprintf("csm_name = $%d", len(args)))
	}

	query := "SELECT " + clientColumns + " FROM clients"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	return fetchAll[model.Client](ctx, r.db, clientsTable, query, args...)
}

// ListWithDeliveryPerson returns the clients assigned to a VA.
func (r *ClientRepository) ListWithDeliveryPerson(ctx context.Context) ([]model.Client, error) {
	query := "SELECT " + clientColumns + " FROM clients WHERE delivery_person IS NOT NULL ORDER BY id"
	return fetchAll[model.Client](ctx, r.db, clientsTable, query)
}

func (r *ClientRepository) DistinctStatuses(ctx context.Context) ([]string, error) {
	return fetchStrings(ctx, r.db, clientsTable, `
		SELECT DISTINCT status FROM clients
		WHERE status IS NOT NULL AND status <> ''
		ORDER BY status`)
}

func (r *ClientRepository) DistinctCSMNames(ctx context.Context) ([]string, error) {
	return fetchStrings(ctx, r.db, clientsTable, `
		SELECT DISTINCT csm_name FROM clients
		WHERE csm_name IS NOT NULL AND csm_name <> ''
		ORDER BY csm_name`)
}
