package core

import (
	"context"
	"errors"
	"testing"

	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeCSV = "INCIDENT_KEY,OCCUR_DATE,BORO,JURISDICTION_CODE,STATISTICAL_MURDER_FLAG,PERP_SEX,PERP_RACE,VIC_SEX,VIC_RACE\n" +
	"1,06/01/2018,QUEENS,0,false,M,BLACK,M,BLACK\n" +
	"2,07/01/2018,BRONX,0,true,M,BLACK,F,BLACK\n" +
	"3,06/01/2019,QUEENS,2,false,,,M,BLACK\n"

// fakeFetcher serves a canned CSV body and counts calls.
type fakeFetcher struct {
	body  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

// memStore is an in-memory DatasetStore/RunStore for orchestration tests.
type memStore struct {
	incidents []schema.Incident
	report    schema.CleanReport
	populated bool
	loadErr   error
	saves     int
}

func (m *memStore) SaveIncidents(incidents []schema.Incident, report schema.CleanReport) error {
	m.incidents = incidents
	m.report = report
	m.populated = true
	m.saves++
	return nil
}

func (m *memStore) LoadIncidents() ([]schema.Incident, schema.CleanReport, bool, error) {
	if m.loadErr != nil {
		return nil, schema.CleanReport{}, false, m.loadErr
	}
	return m.incidents, m.report, m.populated, nil
}

func (m *memStore) GetStatus() (schema.DatasetStatus, error) {
	return schema.DatasetStatus{Connected: true, TotalIncidents: len(m.incidents)}, nil
}

func (m *memStore) Close() error { return nil }

// memRunStore is an in-memory RunStore.
type memRunStore struct{ runs int }

func (m *memRunStore) RecordRun(_ map[string]any, _ *schema.RegressionResult) (int64, error) {
	m.runs++
	return int64(m.runs), nil
}

func (m *memRunStore) GetStatus() (schema.RunStatus, error) {
	return schema.RunStatus{Connected: true, TotalRuns: m.runs}, nil
}

func (m *memRunStore) Close() error { return nil }

type memManager struct {
	store    *memStore
	runStore memRunStore
}

func (m *memManager) GetDatasetStore() contract.DatasetStore { return m.store }
func (m *memManager) GetRunStore() contract.RunStore         { return &m.runStore }

func testConfig() *contract.Config {
	return &contract.Config{
		DatasetURL:   "http://example.test/data.csv",
		Output:       schema.TextOut,
		Precision:    1,
		ResultLimit:  contract.DefaultResultLimit,
		StoreBackend: schema.NoneBackend,
	}
}

// TestLoadDatasetFetchesAndPersists verifies the download path saves the
// cleaned rows to the store.
func TestLoadDatasetFetchesAndPersists(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte(fakeCSV)}
	mgr := &memManager{store: &memStore{}}

	incidents, report, err := loadDataset(context.Background(), testConfig(), fetcher, mgr)
	require.NoError(t, err)

	assert.Len(t, incidents, 3)
	assert.Equal(t, 3, report.RowsKept)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 1, mgr.store.saves)
}

// TestLoadDatasetPrefersStore verifies a populated store short-circuits
// the download.
func TestLoadDatasetPrefersStore(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("network should not be touched")}
	mgr := &memManager{store: &memStore{
		incidents: []schema.Incident{{IncidentKey: "cached"}},
		report:    schema.CleanReport{RowsKept: 1},
		populated: true,
	}}

	incidents, report, err := loadDataset(context.Background(), testConfig(), fetcher, mgr)
	require.NoError(t, err)

	assert.Len(t, incidents, 1)
	assert.Equal(t, "cached", incidents[0].IncidentKey)
	assert.Equal(t, 1, report.RowsKept)
	assert.Equal(t, 0, fetcher.calls)
}

// TestLoadDatasetRefreshBypassesStore verifies --refresh forces a download
// even with a populated store.
func TestLoadDatasetRefreshBypassesStore(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte(fakeCSV)}
	mgr := &memManager{store: &memStore{
		incidents: []schema.Incident{{IncidentKey: "stale"}},
		populated: true,
	}}

	cfg := testConfig()
	cfg.Refresh = true

	incidents, _, err := loadDataset(context.Background(), cfg, fetcher, mgr)
	require.NoError(t, err)

	assert.Len(t, incidents, 3)
	assert.Equal(t, 1, fetcher.calls)
}

// TestLoadDatasetStoreErrorFallsBack verifies a broken store degrades to a
// download instead of failing the run.
func TestLoadDatasetStoreErrorFallsBack(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte(fakeCSV)}
	mgr := &memManager{store: &memStore{loadErr: errors.New("disk on fire")}}

	incidents, _, err := loadDataset(context.Background(), testConfig(), fetcher, mgr)
	require.NoError(t, err)
	assert.Len(t, incidents, 3)
	assert.Equal(t, 1, fetcher.calls)
}

// TestLoadDatasetFetchFailureIsFatal verifies fetch failures abort the run.
func TestLoadDatasetFetchFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	mgr := &memManager{store: &memStore{}}

	_, _, err := loadDataset(context.Background(), testConfig(), fetcher, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

// TestGetRegressionEndToEnd runs load, aggregate and fit over the fake feed.
func TestGetRegressionEndToEnd(t *testing.T) {
	body := "INCIDENT_KEY,OCCUR_DATE,BORO,JURISDICTION_CODE,STATISTICAL_MURDER_FLAG,PERP_SEX,PERP_RACE,VIC_SEX,VIC_RACE\n"
	// Three years with incident counts 2, 3, 4 and deaths 1, 1, 2.
	rows := []struct {
		key, date, flag string
	}{
		{"1", "01/01/2017", "true"}, {"2", "02/01/2017", "false"},
		{"3", "01/01/2018", "true"}, {"4", "02/01/2018", "false"}, {"5", "03/01/2018", "false"},
		{"6", "01/01/2019", "true"}, {"7", "02/01/2019", "true"}, {"8", "03/01/2019", "false"}, {"9", "04/01/2019", "false"},
	}
	for _, r := range rows {
		body += r.key + "," + r.date + ",QUEENS,0," + r.flag + ",M,BLACK,M,BLACK\n"
	}

	fetcher := &fakeFetcher{body: []byte(body)}
	mgr := &memManager{store: &memStore{}}

	result, err := GetRegression(context.Background(), testConfig(), fetcher, mgr)
	require.NoError(t, err)

	assert.Equal(t, 3, result.N)
	assert.Greater(t, result.Slope, 0.0)
	assert.GreaterOrEqual(t, result.RSquared, 0.0)
}
