package repository

import (
	"context"

	"github.com/deppfellow/opsboard/internal/model"
)

const revisionLogsTable = "website_revision_logs"

type RevisionLogRepository struct {
	db DBTX
}

func NewRevisionLogRepository(db DBTX) *RevisionLogRepository {
	return &RevisionLogRepository{db: db}
}

func (r *RevisionLogRepository) ListAll(ctx context.Context) ([]model.RevisionLog, error) {
	return fetchAll[model.RevisionLog](ctx, r.db, revisionLogsTable, `
		SELECT id, created_at, task_name, task_id, assignee, finished_at
		FROM website_revision_logs
		ORDER BY id`)
}
