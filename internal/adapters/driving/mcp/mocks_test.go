package mcp

import (
	"context"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

// mockSnapshotService is a mock implementation of driving.SnapshotService.
type mockSnapshotService struct {
	view   *driving.SnapshotView
	report *driving.PollReport
	err    error
}

func (m *mockSnapshotService) Today(_ context.Context) (*driving.SnapshotView, error) {
	return m.view, m.err
}

func (m *mockSnapshotService) Poll(_ context.Context) (*driving.PollReport, error) {
	return m.report, m.err
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.Source
}

func (m *mockSourceService) List() []domain.Source {
	return m.sources
}

func (m *mockSourceService) Get(id string) (*domain.Source, error) {
	for i := range m.sources {
		if m.sources[i].ID == id {
			return &m.sources[i], nil
		}
	}
	return nil, domain.ErrUnknownSource
}

func (m *mockSourceService) Schedule() map[string]string {
	out := make(map[string]string)
	for _, s := range m.sources {
		out[s.ID] = s.RawDrawTime
	}
	return out
}

func (m *mockSourceService) Status(_ context.Context) ([]driving.SourceStatus, error) {
	return nil, nil
}

var (
	_ driving.SnapshotService = (*mockSnapshotService)(nil)
	_ driving.SourceService   = (*mockSourceService)(nil)
)

func testSources() *mockSourceService {
	return &mockSourceService{sources: []domain.Source{
		{ID: "ny", Name: "New York", RawDrawTime: "14:30", URL: "https://example.com/ny", Valid: true},
		{ID: "bad", RawDrawTime: "25:00", Defect: "hour out of range"},
	}}
}
