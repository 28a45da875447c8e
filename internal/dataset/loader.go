package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/feLLpe04/Project3/internal/dimensions"
	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/mortality"
)

// DefaultSource is the dataset file name the dashboard looks for.
const DefaultSource = "merged_data.json"

// S3Config configures access to s3:// sources. Credentials come from the
// default AWS chain.
type S3Config struct {
	Region    string
	Endpoint  string
	PathStyle bool
}

type Config struct {
	// Source is a local path, an http(s) URL or an s3://bucket/key URL.
	Source string
	// Timeout bounds the retrieval. Zero means no limit.
	Timeout time.Duration
	S3      S3Config
}

// Dataset is the loaded, read-only record sequence and its dimensions.
type Dataset struct {
	Source     string
	Records    []mortality.Record
	Dimensions dimensions.Dimensions
	LoadedAt   time.Time
	Duration   time.Duration
}

// NewDataset wraps records and extracts their dimensions once.
func NewDataset(source string, records []mortality.Record) *Dataset {
	return &Dataset{
		Source:     source,
		Records:    records,
		Dimensions: dimensions.Extract(records),
		LoadedAt:   time.Now(),
	}
}

// Loader performs the one-shot dataset retrieval.
type Loader struct {
	config     Config
	httpClient *http.Client
	s3Client   objectGetter
	logger     *slog.Logger
}

func NewLoader(config Config, logger *slog.Logger) *Loader {
	if config.Source == "" {
		config.Source = DefaultSource
	}
	return &Loader{
		config:     config,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// Load retrieves and parses the dataset. Failures are *LoadError or
// *ParseError; there is no retry.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	if l.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.config.Timeout)
		defer cancel()
	}

	body, err := l.fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: l.config.Source, Err: err}
	}

	records, err := Parse(l.config.Source, body)
	if err != nil {
		return nil, err
	}

	ds := NewDataset(l.config.Source, records)
	ds.Duration = time.Since(start)

	logging.LogOperation(l.logger, "dataset_loaded",
		slog.String("source", ds.Source),
		slog.Int("records", len(ds.Records)),
		slog.Int("years", len(ds.Dimensions.Years)),
		slog.Int("causes", len(ds.Dimensions.Causes)),
		slog.Duration("duration", ds.Duration),
		slog.String("component", "dataset_loader"))

	return ds, nil
}

// Parse decodes a JSON array of records, reporting the first bad element.
func Parse(source string, body []byte) ([]mortality.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &ParseError{Source: source, Index: -1, Err: errors.New("empty body")}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, &ParseError{Source: source, Index: -1, Err: err}
	}
	if elements == nil {
		return nil, &ParseError{Source: source, Index: -1, Err: errors.New("body is not a JSON array")}
	}

	records := make([]mortality.Record, len(elements))
	for i, raw := range elements {
		if err := json.Unmarshal(raw, &records[i]); err != nil {
			return nil, &ParseError{Source: source, Index: i, Err: err}
		}
	}
	return records, nil
}
