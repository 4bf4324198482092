package api

import (
	"context"
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

type mockSnapshotService struct {
	view   *driving.SnapshotView
	report *driving.PollReport
	err    error
	polls  int
}

var _ driving.SnapshotService = (*mockSnapshotService)(nil)

func (m *mockSnapshotService) Today(_ context.Context) (*driving.SnapshotView, error) {
	return m.view, m.err
}

func (m *mockSnapshotService) Poll(_ context.Context) (*driving.PollReport, error) {
	m.polls++
	return m.report, m.err
}

type mockSourceService struct {
	sources  []domain.Source
	statuses []driving.SourceStatus
	err      error
}

var _ driving.SourceService = (*mockSourceService)(nil)

func (m *mockSourceService) List() []domain.Source { return m.sources }

func (m *mockSourceService) Get(id string) (*domain.Source, error) {
	for i := range m.sources {
		if m.sources[i].ID == id {
			return &m.sources[i], nil
		}
	}
	return nil, domain.ErrUnknownSource
}

func (m *mockSourceService) Schedule() map[string]string {
	out := make(map[string]string, len(m.sources))
	for _, s := range m.sources {
		out[s.ID] = s.RawDrawTime
	}
	return out
}

func (m *mockSourceService) Status(_ context.Context) ([]driving.SourceStatus, error) {
	return m.statuses, m.err
}

type mockHistoryService struct {
	draws []domain.ArchivedDraw
	err   error
	asked domain.Date
}

var _ driving.HistoryService = (*mockHistoryService)(nil)

func (m *mockHistoryService) DrawsOn(_ context.Context, date domain.Date) ([]domain.ArchivedDraw, error) {
	m.asked = date
	return m.draws, m.err
}

func twoSources() *mockSourceService {
	return &mockSourceService{sources: []domain.Source{
		{ID: "ny", Name: "New York", RawDrawTime: "14:30", Valid: true},
		{ID: "fl", Name: "Florida", RawDrawTime: "13:30", Valid: true},
	}}
}

var testDay = domain.Date{Year: 2024, Month: time.March, Day: 1}
