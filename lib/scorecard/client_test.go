package scorecard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"collegecost-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

// serves `total` fake schools split into pages of `per_page`.
func newFakeAPI(t *testing.T, total int, requests *atomic.Int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		require.NotEmpty(t, r.URL.Query().Get("api_key"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

		var results []Record
		for i := page * perPage; i < (page+1)*perPage && i < total; i++ {
			results = append(results, Record{
				"id":          float64(i),
				"school.name": fmt.Sprintf("School %d", i),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Page{
			Metadata: Metadata{Total: total, Page: page, PerPage: perPage},
			Results:  results,
		})
	}))
}

func TestGetAllSchoolsPaginationCompleteness(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scorecard")
	defer cleanup()

	var requests atomic.Int64
	server := newFakeAPI(t, 250, &requests)
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	batch, err := client.GetAllSchools(context.Background(), Query{
		State:   "MA",
		PerPage: 100,
	})
	require.NoError(t, err)

	// 250 records at 100 per page means exactly 3 requests
	require.EqualValues(t, 3, requests.Load())
	require.Equal(t, 250, batch.Total)
	require.Len(t, batch.Records, 250)

	// page order is preserved
	first := batch.Records[0].School()
	last := batch.Records[249].School()
	require.NotNil(t, first.Name)
	require.Equal(t, "School 0", *first.Name)
	require.NotNil(t, last.Name)
	require.Equal(t, "School 249", *last.Name)
}

func TestGetAllSchoolsMaxPages(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scorecard")
	defer cleanup()

	var requests atomic.Int64
	server := newFakeAPI(t, 250, &requests)
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	batch, err := client.GetAllSchools(context.Background(), Query{
		PerPage:  100,
		MaxPages: 2,
	})
	require.NoError(t, err)

	require.EqualValues(t, 2, requests.Load())
	require.Len(t, batch.Records, 200)
}

func TestGetAllSchoolsAbortsOnPageFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scorecard")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page >= 1 {
			http.Error(w, "upstream broke", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(Page{
			Metadata: Metadata{Total: 250, Page: 0, PerPage: 100},
			Results:  make([]Record, 100),
		})
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	batch, err := client.GetAllSchools(context.Background(), Query{PerPage: 100})
	require.Error(t, err)
	require.Nil(t, batch)
}

func TestGetAllSchoolsEmptyResult(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scorecard")
	defer cleanup()

	var requests atomic.Int64
	server := newFakeAPI(t, 0, &requests)
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	batch, err := client.GetAllSchools(context.Background(), Query{PerPage: 100})
	require.NoError(t, err)
	require.EqualValues(t, 1, requests.Load())
	require.Equal(t, 0, batch.Total)
	require.Empty(t, batch.Records)
}

func TestNewClientMissingConfig(t *testing.T) {
	_, err := NewClient(ClientOptions{})
	require.ErrorIs(t, err, ErrMissingConfig)

	_, err = NewClient(ClientOptions{BaseURL: "https://api.example.com"})
	require.ErrorIs(t, err, ErrMissingConfig)

	_, err = NewClient(ClientOptions{APIKey: "key"})
	require.ErrorIs(t, err, ErrMissingConfig)
}

func TestRecordSchoolTypedView(t *testing.T) {
	rec := Record{
		"id":                               float64(166027),
		"school.name":                      "Amherst College",
		"school.state":                     "MA",
		"latest.cost.tuition.in_state":     float64(66650),
		"latest.cost.tuition.out_of_state": float64(66650),
		"latest.completion.rate":           nil,
	}

	school := rec.School()
	require.NotNil(t, school.Name)
	require.Equal(t, "Amherst College", *school.Name)
	require.NotNil(t, school.TuitionInState)
	require.Equal(t, float64(66650), *school.TuitionInState)
	require.Nil(t, school.CompletionRate)
}
