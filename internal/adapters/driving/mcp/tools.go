package mcp

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

// SnapshotInput is the input schema for the get_snapshot tool.
type SnapshotInput struct {
	Source string `json:"source,omitempty" jsonschema:"only return results for this source ID"`
}

// SnapshotOutput is the output schema for the get_snapshot tool.
type SnapshotOutput struct {
	AsOfDate           string       `json:"as_of_date"`
	Available          bool         `json:"available"`
	Results            []DrawOutput `json:"results"`
	SourcesConsidered  []string     `json:"sources_considered"`
	SourcesWithResults []string     `json:"sources_with_results"`
	CachedAt           string       `json:"cached_at,omitempty"`
	Stale              bool         `json:"stale"`
}

// DrawOutput is one sub-game result.
type DrawOutput struct {
	SourceID string `json:"source_id"`
	Subgame  string `json:"subgame"`
	Numbers  string `json:"numbers"`
	Date     string `json:"date"`
}

// PollInput is the input schema for the poll tool.
type PollInput struct{}

// PollOutput is the output schema for the poll tool.
type PollOutput struct {
	RunID        string            `json:"run_id"`
	Eligible     []string          `json:"eligible"`
	Outcomes     map[string]string `json:"outcomes"`
	NewlySettled []string          `json:"newly_settled"`
	Shared       bool              `json:"shared"`
	Error        string            `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_snapshot",
		Description: "Get today's lottery draw results, fetching from sources whose draw window is open",
	}, s.handleGetSnapshot)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "poll",
		Description: "Run a poll cycle now, regardless of cache freshness",
	}, s.handlePoll)
}

// handleGetSnapshot handles the get_snapshot tool invocation.
// No data at all is reported as available=false rather than a tool error.
func (s *Server) handleGetSnapshot(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SnapshotInput,
) (*mcp.CallToolResult, SnapshotOutput, error) {
	if input.Source != "" {
		if _, err := s.ports.Source.Get(input.Source); err != nil {
			return nil, SnapshotOutput{}, err
		}
	}

	view, err := s.ports.Snapshot.Today(ctx)
	if errors.Is(err, domain.ErrNoResults) {
		considered := make([]string, 0)
		for _, src := range s.ports.Source.List() {
			considered = append(considered, src.ID)
		}
		return nil, SnapshotOutput{
			Results:            []DrawOutput{},
			SourcesConsidered:  considered,
			SourcesWithResults: []string{},
		}, nil
	}
	if err != nil {
		return nil, SnapshotOutput{}, err
	}

	output := SnapshotOutput{
		AsOfDate:           view.AsOfDate.String(),
		Available:          true,
		Results:            []DrawOutput{},
		SourcesConsidered:  view.SourcesConsidered,
		SourcesWithResults: []string{},
		Stale:              view.Stale,
	}
	if !view.CachedAt.IsZero() {
		output.CachedAt = view.CachedAt.Format(time.RFC3339)
	}

	for _, id := range view.SourcesWithResults {
		if input.Source != "" && id != input.Source {
			continue
		}
		output.SourcesWithResults = append(output.SourcesWithResults, id)
		output.Results = append(output.Results, drawsOf(id, view.Results[id])...)
	}

	return nil, output, nil
}

// handlePoll handles the poll tool invocation.
func (s *Server) handlePoll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ PollInput,
) (*mcp.CallToolResult, PollOutput, error) {
	report, err := s.ports.Snapshot.Poll(ctx)
	if report == nil {
		if err == nil {
			err = errors.New("poll returned no report")
		}
		return nil, PollOutput{}, err
	}

	output := toPollOutput(report)
	if err != nil {
		output.Error = err.Error()
	}
	return nil, output, nil
}

func drawsOf(sourceID string, payload domain.Payload) []DrawOutput {
	names := make([]string, 0, len(payload))
	for name := range payload {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]DrawOutput, 0, len(names))
	for _, name := range names {
		d := payload[name]
		out = append(out, DrawOutput{
			SourceID: sourceID,
			Subgame:  name,
			Numbers:  d.Numbers,
			Date:     d.Date.Format(time.RFC3339),
		})
	}
	return out
}

func toPollOutput(r *driving.PollReport) PollOutput {
	out := PollOutput{
		RunID:        r.RunID,
		Eligible:     append([]string{}, r.Eligible...),
		Outcomes:     make(map[string]string, len(r.Outcomes)),
		NewlySettled: append([]string{}, r.NewlySettled...),
		Shared:       r.Shared,
	}
	for id, o := range r.Outcomes {
		out.Outcomes[id] = o.String()
	}
	return out
}
