package collegecost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"collegecost-backend/lib/scorecard"
	"collegecost-backend/lib/snapshot"
	"collegecost-backend/lib/table"
	"collegecost-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func newFakeAPI(t *testing.T, requests *atomic.Int64) *httptest.Server {
	records := []scorecard.Record{
		{
			"id":                           float64(1),
			"school.name":                  "Amherst College",
			"school.state":                 "MA",
			"latest.cost.tuition.in_state": float64(66650),
		},
		{
			"id":                           float64(2),
			"school.name":                  "Boston University",
			"school.state":                 "MA",
			"latest.cost.tuition.in_state": nil,
		},
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		json.NewEncoder(w).Encode(scorecard.Page{
			Metadata: scorecard.Metadata{Total: len(records), PerPage: 100},
			Results:  records,
		})
	}))
}

func setupService(t *testing.T, baseURL string) Service {
	client, err := scorecard.NewClient(scorecard.ClientOptions{
		BaseURL: baseURL,
		APIKey:  "test-key",
	})
	require.NoError(t, err)

	return New(Options{
		Client: client,
		Store:  snapshot.NewStore(t.TempDir()),
	})
}

func TestGetCollegeDataFetchesThenCaches(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:collegecost")
	defer cleanup()

	var requests atomic.Int64
	server := newFakeAPI(t, &requests)
	defer server.Close()

	svc := setupService(t, server.URL)
	ctx := context.Background()

	tbl, err := svc.GetCollegeData(ctx, "MA")
	require.NoError(t, err)
	require.EqualValues(t, 1, requests.Load())
	require.Equal(t, 2, tbl.NumRows())
	// table comes back cleaned
	require.Equal(t, table.NumericSentinel, tbl.Value("tuition_in_state", 1))

	// a fresh snapshot means the second session never hits the network
	tbl, err = svc.GetCollegeData(ctx, "MA")
	require.NoError(t, err)
	require.EqualValues(t, 1, requests.Load())
	require.Equal(t, 2, tbl.NumRows())
}

func TestGetCollegeDataStaleFallback(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:collegecost")
	defer cleanup()

	var requests atomic.Int64
	server := newFakeAPI(t, &requests)

	svc := setupService(t, server.URL)
	ctx := context.Background()

	_, err := svc.GetCollegeData(ctx, "MA")
	require.NoError(t, err)

	// age the snapshot past the policy and take the API down
	backdateSnapshot(t, svc.store.Path("MA"), 25*time.Hour)
	server.Close()

	tbl, err := svc.GetCollegeData(ctx, "MA")
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumRows())
}

func TestGetCollegeDataNoSnapshotNoNetwork(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:collegecost")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := setupService(t, server.URL)

	_, err := svc.GetCollegeData(context.Background(), "MA")
	require.Error(t, err)
}

func TestRefreshIgnoresFreshSnapshot(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:collegecost")
	defer cleanup()

	var requests atomic.Int64
	server := newFakeAPI(t, &requests)
	defer server.Close()

	svc := setupService(t, server.URL)
	ctx := context.Background()

	_, err := svc.GetCollegeData(ctx, "MA")
	require.NoError(t, err)

	n, err := svc.Refresh(ctx, "MA")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.EqualValues(t, 2, requests.Load())
}

func TestSuggestSchool(t *testing.T) {
	tbl := table.New("school_name")
	for _, name := range []string{"Amherst College", "Boston University", "Harvard University"} {
		tbl.AppendRow(map[string]any{"school_name": name})
	}

	got, ok := SuggestSchool(tbl, "Amhurst Colege")
	require.True(t, ok)
	require.Equal(t, "Amherst College", got.Name)
	require.Greater(t, got.Similarity, 0.8)

	_, ok = SuggestSchool(table.New("school_name"), "anything")
	require.False(t, ok)
}

func TestEstimateDegreeCost(t *testing.T) {
	svc := New(Options{})

	est, err := svc.EstimateDegreeCost(EstimateInput{
		TuitionPerPeriod:     12000,
		ScholarshipPerPeriod: 2000,
		PeriodsRemaining:     4,
		AnnualRatePct:        5.0,
		TermYears:            10,
	})
	require.NoError(t, err)
	require.InDelta(t, 10000, est.NetPeriodCost, 1e-9)
	require.InDelta(t, 500, est.Projection.PeriodInterest, 1e-9)
	require.InDelta(t, 42000, est.Projection.TotalOwed, 1e-9)
	require.InDelta(t, 445.5, est.MonthlyPayment, 0.5)
}

func TestEstimateDegreeCostNoTerm(t *testing.T) {
	svc := New(Options{})

	est, err := svc.EstimateDegreeCost(EstimateInput{
		TuitionPerPeriod: 10000,
		PeriodsRemaining: 2,
		AnnualRatePct:    0,
	})
	require.NoError(t, err)
	require.InDelta(t, 20000, est.Projection.TotalOwed, 1e-9)
	require.Zero(t, est.MonthlyPayment)
}

func backdateSnapshot(t *testing.T, path string, age time.Duration) {
	old := time.Now().Add(-age)
	err := os.Chtimes(path, old, old)
	require.NoError(t, err)
}
