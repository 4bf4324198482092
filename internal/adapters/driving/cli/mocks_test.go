package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

type mockSnapshotService struct {
	view    *driving.SnapshotView
	report  *driving.PollReport
	err     error
	pollErr error
}

func (m *mockSnapshotService) Today(_ context.Context) (*driving.SnapshotView, error) {
	return m.view, m.err
}

func (m *mockSnapshotService) Poll(_ context.Context) (*driving.PollReport, error) {
	return m.report, m.pollErr
}

type mockSourceService struct {
	sources  []domain.Source
	statuses []driving.SourceStatus
}

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
	out := make(map[string]string)
	for _, s := range m.sources {
		out[s.ID] = s.RawDrawTime
	}
	return out
}

func (m *mockSourceService) Status(_ context.Context) ([]driving.SourceStatus, error) {
	return m.statuses, nil
}

type mockHistoryService struct {
	draws []domain.ArchivedDraw
	err   error
	asked domain.Date
}

func (m *mockHistoryService) DrawsOn(_ context.Context, date domain.Date) ([]domain.ArchivedDraw, error) {
	m.asked = date
	return m.draws, m.err
}

type mockSettingsService struct {
	settings    domain.AppSettings
	set         map[string]any
	validateErr error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) Set(key string, value any) error {
	if m.set == nil {
		m.set = make(map[string]any)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

var (
	_ driving.SnapshotService = (*mockSnapshotService)(nil)
	_ driving.SourceService   = (*mockSourceService)(nil)
	_ driving.HistoryService  = (*mockHistoryService)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
)

var testDay = domain.Date{Year: 2024, Month: time.May, Day: 1}

func testServices() *Services {
	ny := domain.Source{ID: "ny", Name: "New York", RawDrawTime: "14:30", URL: "https://example.com/ny", Valid: true}
	bad := domain.Source{ID: "bad", RawDrawTime: "25:00", Defect: "hour out of range"}
	drawn := time.Date(2024, time.May, 1, 14, 30, 0, 0, time.UTC)

	return &Services{
		Snapshot: &mockSnapshotService{
			view: &driving.SnapshotView{
				AsOfDate:           testDay,
				Results:            map[string]domain.Payload{"ny": {"midday": {Numbers: "3-7-1", Date: drawn}}},
				SourcesConsidered:  []string{"ny", "bad"},
				SourcesWithResults: []string{"ny"},
			},
			report: &driving.PollReport{
				RunID:        "run-1",
				Eligible:     []string{"ny"},
				Outcomes:     map[string]domain.FetchOutcome{"ny": domain.Found(nil)},
				NewlySettled: []string{"ny"},
			},
		},
		Source: &mockSourceService{
			sources: []domain.Source{ny, bad},
			statuses: []driving.SourceStatus{
				{Source: ny, DrawAt: drawn, Settled: true, Search: &domain.ActiveSearch{Attempts: 2, LastAttempt: drawn}},
				{Source: bad},
			},
		},
		History:     &mockHistoryService{},
		Settings:    &mockSettingsService{settings: domain.DefaultAppSettings()},
		AppSettings: domain.DefaultAppSettings(),
		ConfigPath:  "/tmp/drawwatch/config.toml",
	}
}

// execute runs the root command with args against s.
func execute(t *testing.T, s *Services, args ...string) (string, error) {
	t.Helper()

	oldServices, oldOwns := services, ownsServices
	SetServices(s)
	t.Cleanup(func() {
		services, ownsServices = oldServices, oldOwns
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
