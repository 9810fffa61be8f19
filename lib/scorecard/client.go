// Package scorecard is a client for the College Scorecard schools API.
// It fetches institution records page by page and hands back the raw
// result objects for the table layer to normalize.
package scorecard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"collegecost-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/scorecard")

// ErrMissingConfig means the base url or api key was absent. There is
// no point retrying a fetch until the environment is fixed.
var ErrMissingConfig = fmt.Errorf("missing api configuration: set SCORECARD_BASE_URL and SCORECARD_API_KEY")

const (
	EnvBaseURL = "SCORECARD_BASE_URL"
	EnvAPIKey  = "SCORECARD_API_KEY"
)

const DefaultPerPage = 100

type Client struct {
	http   *resty.Client
	apiKey string
}

type ClientOptions struct {
	BaseURL string
	APIKey  string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" || opts.APIKey == "" {
		return nil, ErrMissingConfig
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	telemetry.InstrumentResty(client, "scorecard/http")

	return &Client{
		http:   client,
		apiKey: opts.APIKey,
	}, nil
}

// NewClientFromEnv builds a client from SCORECARD_BASE_URL and
// SCORECARD_API_KEY.
func NewClientFromEnv() (*Client, error) {
	return NewClient(ClientOptions{
		BaseURL: os.Getenv(EnvBaseURL),
		APIKey:  os.Getenv(EnvAPIKey),
	})
}

// Query scopes a schools request.
type Query struct {
	// two-letter state code, e.g. "MA"
	State  string
	Fields []string
	// zero-indexed page, only meaningful for GetSchools
	Page    int
	PerPage int
	// cap on pages fetched by GetAllSchools, 0 means unbounded
	MaxPages int
}

func (q Query) perPage() int {
	if q.PerPage <= 0 {
		return DefaultPerPage
	}
	return q.PerPage
}

func (q Query) fields() []string {
	if len(q.Fields) == 0 {
		return DefaultFields
	}
	return q.Fields
}

type Metadata struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Page is one response page.
type Page struct {
	Metadata Metadata `json:"metadata"`
	Results  []Record `json:"results"`
}

// FetchBatch is the full record set for one state-scoped query plus
// the total the API claimed to hold.
type FetchBatch struct {
	Total   int
	Records []Record
}

// GetSchools fetches a single page.
func (c *Client) GetSchools(ctx context.Context, query Query) (*Page, error) {
	ctx, span := tracer.Start(ctx, "client:GetSchools")
	defer span.End()

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("page", strconv.Itoa(query.Page)).
		SetQueryParam("per_page", strconv.Itoa(query.perPage())).
		SetQueryParam("fields", strings.Join(query.fields(), ","))
	if query.State != "" {
		req.SetQueryParam("school.state", query.State)
	}

	res, err := req.Get("")
	if err != nil {
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("get schools page %d: %w", query.Page, err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return nil, fmt.Errorf("get schools page %d: %s", query.Page, res.Status())
	}

	var page Page
	err = json.Unmarshal(res.Body(), &page)
	if err != nil {
		span.SetStatus(codes.Error, "failed to decode response")
		return nil, fmt.Errorf("decode schools page %d: %w", query.Page, err)
	}
	return &page, nil
}

// GetAllSchools fetches every page for the query sequentially and
// concatenates the results in page order. A failed page aborts the
// whole batch: partial results are never returned, so a successful
// call always holds the complete record set the API reported.
func (c *Client) GetAllSchools(ctx context.Context, query Query) (*FetchBatch, error) {
	ctx, span := tracer.Start(ctx, "client:GetAllSchools")
	defer span.End()

	query.Page = 0
	first, err := c.GetSchools(ctx, query)
	if err != nil {
		span.SetStatus(codes.Error, "initial page failed")
		return nil, err
	}

	perPage := query.perPage()
	total := first.Metadata.Total
	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	if query.MaxPages > 0 && totalPages > query.MaxPages {
		totalPages = query.MaxPages
	}

	slog.DebugContext(ctx, "fetching schools",
		"state", query.State,
		"total", total,
		"total_pages", totalPages,
	)

	records := make([]Record, 0, total)
	records = append(records, first.Results...)

	for page := 1; page < totalPages; page++ {
		query.Page = page
		next, err := c.GetSchools(ctx, query)
		if err != nil {
			span.SetStatus(codes.Error, "page fetch failed")
			return nil, err
		}
		records = append(records, next.Results...)
		slog.DebugContext(ctx, "fetched page", "page", page+1, "of", totalPages)
	}

	return &FetchBatch{
		Total:   total,
		Records: records,
	}, nil
}
