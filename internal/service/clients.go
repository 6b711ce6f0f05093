package service

import (
	"bytes"
	"context"

	"github.com/deppfellow/opsboard/internal/sqlerr"
	"github.com/deppfellow/opsboard/internal/table"
	"github.com/deppfellow/opsboard/internal/validation"
	"golang.org/x/sync/errgroup"
)

const clientsTitle = "Clients"

type ClientService struct {
	clients ClientReader
}

func NewClientService(clients ClientReader) *ClientService {
	return &ClientService{clients: clients}
}

// ClientFilterOptions feeds the status and CSM dropdowns.
type ClientFilterOptions struct {
	Statuses []string `json:"statuses"`
	CSMNames []string `json:"csm_names"`
}

// List filters in SQL, then searches and sorts in memory.
func (s *ClientService) List(ctx context.Context, q *validation.ClientListQuery) (*table.View, error) {
	clients, err := s.clients.List(ctx, q.Filter())
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	rows := table.Apply(clients, ClientColumns, q.TableQuery())
	view := table.NewView(clientsTitle, ClientColumns, rows)
	return &view, nil
}

func (s *ClientService) FilterOptions(ctx context.Context) (*ClientFilterOptions, error) {
	var opts ClientFilterOptions

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opts.Statuses, err = s.clients.DistinctStatuses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		opts.CSMNames, err = s.clients.DistinctCSMNames(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return &opts, nil
}

// ExportCSV renders the same view List returns as CSV.
func (s *ClientService) ExportCSV(ctx context.Context, q *validation.ClientListQuery) ([]byte, error) {
	view, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := view.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
