package routing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/iziplay/isbn-api/pkg/database"
	"github.com/iziplay/isbn-api/pkg/isbn"
	"github.com/iziplay/isbn-api/pkg/sync"
)

// Store is the read side of the database used by the API.
type Store interface {
	SearchByISBN(ctx context.Context, v isbn.ISBN, limit, offset int) ([]database.Record, int64, error)
	GetCachedStats() *database.CachedStats
	ComputeAndCacheStats(ctx context.Context, force bool) (*database.CachedStats, error)
}

// Ingester starts ingestions and reports their progress.
type Ingester interface {
	Ingest(ctx context.Context, source string) (sync.Result, error)
	Stats() sync.IngestProgress
}

type Deps struct {
	Store    Store
	Ingester Ingester
}

type PlainOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type StatsOutput struct {
	Body database.CachedStats
}

type IngestStatsOutput struct {
	Body sync.IngestProgress
}

type ISBN struct {
	Value   string      `json:"value" doc:"Normalized ISBN, without hyphens or spaces"`
	Format  isbn.Format `json:"format" enum:"isbn10,isbn13" doc:"Format the value was recognized as"`
	Display string      `json:"display" doc:"Display value, e.g. \"ISBN: 9780596520687\""`
	ISBN10  string      `json:"isbn10,omitempty" doc:"ISBN-10 spelling, absent for 979-prefixed ISBN-13s"`
	ISBN13  string      `json:"isbn13" doc:"ISBN-13 spelling"`
}

func newISBN(v isbn.ISBN) ISBN {
	forms := v.Forms()
	return ISBN{
		Value:   v.Value(),
		Format:  v.Format(),
		Display: v.DisplayValue(),
		ISBN10:  forms[isbn.ISBN10],
		ISBN13:  forms[isbn.ISBN13],
	}
}

type RecognizeInput struct {
	Text string `query:"text" required:"true" doc:"Free text containing an ISBN"`
}

type RecognizeOutput struct {
	Body struct {
		ISBN
		Match   string `json:"match" doc:"Matched substring, separators included"`
		Labeled bool   `json:"labeled" doc:"Whether the value followed an ISBN label"`
	}
}

type ConvertInput struct {
	Text string `query:"text" required:"true" doc:"Free text containing an ISBN"`
	To   string `query:"to" required:"true" doc:"Target format: isbn10 or isbn13"`
}

type ConvertOutput struct {
	Body struct {
		Value  string      `json:"value"`
		Format isbn.Format `json:"format"`
	}
}

type SearchByISBNInput struct {
	Text   string `query:"text" required:"true" doc:"ISBN10 or ISBN13 code, possibly surrounded by text"`
	Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of results"`
	Offset int    `query:"offset" default:"0" minimum:"0" doc:"Offset for pagination"`
}

type SearchOutput struct {
	Body struct {
		ISBN    ISBN              `json:"isbn"`
		Total   int64             `json:"total"`
		Results []database.Record `json:"results"`
	}
}

type IngestInput struct {
	Body struct {
		Source string `json:"source" minLength:"1" doc:"Path or URL of a JSON lines metadata dump, optionally gzipped"`
	}
}

type IngestOutput struct {
	Body struct {
		Source string `json:"source"`
		Status string `json:"status"`
	}
}

// isbnError maps recognition errors to HTTP errors.
func isbnError(err error) error {
	var invalid *isbn.InvalidError
	switch {
	case errors.Is(err, isbn.ErrNotFound):
		return huma.Error404NotFound("no ISBN found in text")
	case errors.As(err, &invalid):
		return huma.Error422UnprocessableEntity(invalid.Error())
	default:
		return huma.Error500InternalServerError("failed to recognize ISBN", err)
	}
}

func Setup(api huma.API, deps Deps) {
	api.UseMiddleware(authMiddleware(api))

	huma.Register(api, huma.Operation{
		OperationID: "HealthCheck",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Description: "Check if the API is running",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, input *struct{}) (*PlainOutput, error) {
		return &PlainOutput{
			ContentType: "text/plain",
			Body:        []byte("OK"),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "RecognizeISBN",
		Method:      http.MethodGet,
		Path:        "/v1/isbn/recognize",
		Summary:     "Recognize an ISBN",
		Description: "Find the first ISBN10 or ISBN13 in a text and normalize it",
		Tags:        []string{"ISBN"},
	}, func(ctx context.Context, input *RecognizeInput) (*RecognizeOutput, error) {
		m, err := isbn.Recognize(input.Text)
		if err != nil {
			return nil, isbnError(err)
		}
		resp := &RecognizeOutput{}
		resp.Body.ISBN = newISBN(isbn.New(m.Text, m.Format))
		resp.Body.Match = m.Text
		resp.Body.Labeled = m.Labeled
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "ConvertISBN",
		Method:      http.MethodGet,
		Path:        "/v1/isbn/convert",
		Summary:     "Convert an ISBN",
		Description: "Find the first ISBN in a text and convert it to ISBN10 or ISBN13, recomputing the check digit",
		Tags:        []string{"ISBN"},
	}, func(ctx context.Context, input *ConvertInput) (*ConvertOutput, error) {
		to, err := isbn.ParseFormat(input.To)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		v, err := isbn.Build(input.Text)
		if err != nil {
			return nil, isbnError(err)
		}
		resp := &ConvertOutput{}
		resp.Body.Value = v.ConvertedTo(to)
		resp.Body.Format = to
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "SearchByISBN",
		Method:      http.MethodGet,
		Path:        "/v1/search/isbn",
		Summary:     "Search by ISBN",
		Description: "Search for records carrying the first ISBN found in the text, under either of its spellings",
		Tags:        []string{"Search"},
	}, func(ctx context.Context, input *SearchByISBNInput) (*SearchOutput, error) {
		v, err := isbn.Build(input.Text)
		if err != nil {
			return nil, isbnError(err)
		}
		records, total, err := deps.Store.SearchByISBN(ctx, v, input.Limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to search by ISBN", err)
		}
		resp := &SearchOutput{}
		resp.Body.ISBN = newISBN(v)
		resp.Body.Total = total
		resp.Body.Results = records
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "GetStatistics",
		Method:      http.MethodGet,
		Path:        "/v1/statistics",
		Summary:     "Get statistics",
		Description: "Get statistics about the indexed records",
		Tags:        []string{"Statistics"},
	}, func(ctx context.Context, input *struct{}) (*StatsOutput, error) {
		stats := deps.Store.GetCachedStats()
		if stats == nil {
			go func() {
				if _, err := deps.Store.ComputeAndCacheStats(context.Background(), false); err != nil {
					slog.Error("Failed to compute stats", "error", err)
				}
			}()
			return nil, huma.Error503ServiceUnavailable("ingestion in progress or stats are being computed, please retry later")
		}
		return &StatsOutput{
			Body: *stats,
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "GetIngestStatistics",
		Method:      http.MethodGet,
		Path:        "/v1/statistics/ingest",
		Summary:     "Get ingestion statistics",
		Description: "Get current ingestion progress",
		Tags:        []string{"Statistics"},
	}, func(ctx context.Context, input *struct{}) (*IngestStatsOutput, error) {
		return &IngestStatsOutput{
			Body: deps.Ingester.Stats(),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "StartIngest",
		Method:        http.MethodPost,
		Path:          "/v1/ingest",
		Summary:       "Start an ingestion",
		Description:   "Index the ISBNs of every record in a metadata dump, in the background",
		Tags:          []string{"Ingest"},
		DefaultStatus: http.StatusAccepted,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *IngestInput) (*IngestOutput, error) {
		if deps.Ingester.Stats().IsRunning {
			return nil, huma.Error409Conflict("an ingestion is already running")
		}

		source := input.Body.Source
		go func() {
			if _, err := deps.Ingester.Ingest(context.WithoutCancel(ctx), source); err != nil {
				slog.Error("Ingestion failed", "source", source, "error", err)
			}
		}()

		resp := &IngestOutput{}
		resp.Body.Source = source
		resp.Body.Status = "accepted"
		return resp, nil
	})
}
