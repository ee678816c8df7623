package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rmonroe/shotline/internal/contract"
	mcp_internal "github.com/rmonroe/shotline/internal/mcp"
	"github.com/rmonroe/shotline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher returns a canned CSV body, or an error when body is nil.
type stubFetcher struct {
	body []byte
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	if f.body == nil {
		return nil, errors.New("network unreachable")
	}
	return f.body, nil
}

// noopDatasetStore never has anything stored and drops saves.
type noopDatasetStore struct{}

func (s *noopDatasetStore) SaveIncidents([]schema.Incident, schema.CleanReport) error {
	return nil
}

func (s *noopDatasetStore) LoadIncidents() ([]schema.Incident, schema.CleanReport, bool, error) {
	return nil, schema.CleanReport{}, false, nil
}

func (s *noopDatasetStore) GetStatus() (schema.DatasetStatus, error) {
	return schema.DatasetStatus{Backend: schema.NoneBackend}, nil
}

func (s *noopDatasetStore) Close() error { return nil }

type noopRunStore struct{}

func (s *noopRunStore) RecordRun(map[string]any, *schema.RegressionResult) (int64, error) {
	return 0, nil
}

func (s *noopRunStore) GetStatus() (schema.RunStatus, error) {
	return schema.RunStatus{Backend: schema.NoneBackend}, nil
}

func (s *noopRunStore) Close() error { return nil }

type noopManager struct{}

func (m *noopManager) GetDatasetStore() contract.DatasetStore { return &noopDatasetStore{} }
func (m *noopManager) GetRunStore() contract.RunStore         { return &noopRunStore{} }

const testCSV = `INCIDENT_KEY,OCCUR_DATE,BORO,JURISDICTION_CODE,STATISTICAL_MURDER_FLAG,PERP_SEX,PERP_RACE,VIC_SEX,VIC_RACE
1,01/15/2018,BROOKLYN,0,true,M,BLACK,M,BLACK
2,03/20/2019,QUEENS,0,false,M,WHITE,F,WHITE
3,02/11/2019,BROOKLYN,2,true,U,UNKNOWN,M,BLACK
4,07/04/2020,MANHATTAN,0,false,F,BLACK,M,WHITE HISPANIC
5,05/09/2020,BROOKLYN,0,true,M,BLACK,M,BLACK
6,09/30/2020,STATEN ISLAND,1,false,M,WHITE,F,WHITE
`

func testConfig() *contract.Config {
	return &contract.Config{
		DatasetURL:  "https://example.com/rows.csv",
		ResultLimit: contract.DefaultResultLimit,
		Group:       schema.GroupBorough,
	}
}

func TestMCPServerHandlers(t *testing.T) {
	fetcher := &stubFetcher{body: []byte(testCSV)}
	s := mcp_internal.NewMCPServer(testConfig(), fetcher, &noopManager{})

	ctx := context.Background()

	t.Run("get_yearly_summary returns per-year totals", func(t *testing.T) {
		tool := s.GetTool("get_yearly_summary")
		require.NotNil(t, tool, "Tool get_yearly_summary should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_yearly_summary",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var summaries []schema.YearSummary
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &summaries))
		require.Len(t, summaries, 3)
		assert.Equal(t, 2018, summaries[0].Year)
		assert.Equal(t, 1, summaries[0].TotalIncidents)
		assert.Equal(t, 1, summaries[0].TotalDeaths)
		assert.Equal(t, 2020, summaries[2].Year)
		assert.Equal(t, 3, summaries[2].TotalIncidents)
	})

	t.Run("get_group_counts rejects invalid group", func(t *testing.T) {
		tool := s.GetTool("get_group_counts")
		require.NotNil(t, tool, "Tool get_group_counts should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_group_counts",
				Arguments: map[string]any{
					"group": "zipcode",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid group key")
	})

	t.Run("get_group_counts by borough", func(t *testing.T) {
		tool := s.GetTool("get_group_counts")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_group_counts",
				Arguments: map[string]any{
					"group": "borough",
					"limit": 2.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var counts []schema.GroupCount
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &counts))
		require.Len(t, counts, 2)
		assert.Equal(t, "BROOKLYN", counts[0].Label)
		assert.Equal(t, 3, counts[0].Count)
	})

	t.Run("get_group_counts defaults to configured group", func(t *testing.T) {
		cfg := testConfig()
		cfg.Group = schema.GroupVicSex
		configured := mcp_internal.NewMCPServer(cfg, fetcher, &noopManager{})
		tool := configured.GetTool("get_group_counts")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_group_counts",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var counts []schema.GroupCount
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &counts))
		require.Len(t, counts, 2)
		assert.Equal(t, "M", counts[0].Label)
		assert.Equal(t, 4, counts[0].Count)
		assert.Equal(t, "F", counts[1].Label)
	})

	t.Run("run_regression over three years", func(t *testing.T) {
		tool := s.GetTool("run_regression")
		require.NotNil(t, tool, "Tool run_regression should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "run_regression",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var result schema.RegressionResult
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
		assert.Equal(t, 3, result.N)
	})

	t.Run("get_clean_report reflects cleaning", func(t *testing.T) {
		tool := s.GetTool("get_clean_report")
		require.NotNil(t, tool, "Tool get_clean_report should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_clean_report",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var report schema.CleanReport
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &report))
		assert.Equal(t, 6, report.RowsRead)
		assert.Equal(t, 6, report.RowsKept)
	})

	t.Run("fetch failure surfaces as tool error", func(t *testing.T) {
		failing := mcp_internal.NewMCPServer(testConfig(), &stubFetcher{}, &noopManager{})
		tool := failing.GetTool("run_regression")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "run_regression",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}
