package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/feLLpe04/Project3/internal/logging"
)

type sourceKind int

const (
	sourceFile sourceKind = iota
	sourceHTTP
	sourceS3
)

func kindOf(source string) sourceKind {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return sourceHTTP
	case strings.HasPrefix(source, "s3://"):
		return sourceS3
	default:
		return sourceFile
	}
}

// objectGetter is the slice of the S3 client the loader needs.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// fetch performs the single retrieval of the dataset body.
func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	source := l.config.Source
	switch kindOf(source) {
	case sourceHTTP:
		return l.fetchHTTP(ctx, source)
	case sourceS3:
		return l.fetchS3(ctx, source)
	default:
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local dataset file: %w", err)
		}
		return b, nil
	}
}

func (l *Loader) fetchHTTP(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading dataset: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, l.logger, "dataset_http_body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset response: %w", err)
	}
	return b, nil
}

func (l *Loader) fetchS3(ctx context.Context, source string) ([]byte, error) {
	bucket, key, err := parseS3URL(source)
	if err != nil {
		return nil, err
	}

	client := l.s3Client
	if client == nil {
		client, err = newS3Client(ctx, l.config.S3)
		if err != nil {
			return nil, fmt.Errorf("error configuring s3 client: %w", err)
		}
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return nil, fmt.Errorf("error fetching s3 object: %w", err)
	}
	defer logging.SafeCloseWithLogging(out.Body, l.logger, "dataset_s3_body")

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading s3 object: %w", err)
	}
	return b, nil
}

func parseS3URL(source string) (bucket, key string, err error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 url %q: %w", source, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 url %q: want s3://bucket/key", source)
	}
	return bucket, key, nil
}

func newS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
