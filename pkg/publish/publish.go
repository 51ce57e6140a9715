package publish

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/mathlive/pkg/markup"
	"github.com/vango-dev/mathlive/pkg/pipeline"
)

// ErrNoBucket is returned when a publisher has no bucket configured.
var ErrNoBucket = errors.New("publish: no bucket configured")

// ErrFailedResult is returned when asked to publish a failure.
var ErrFailedResult = errors.New("publish: result is a failure")

// PutObjectAPI is the part of the S3 client the publisher uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads snapshots to one bucket under a key prefix.
type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string

	now    func() time.Time
	logger *slog.Logger
}

// New creates a publisher using client.
func New(client PutObjectAPI, bucket, prefix string) *Publisher {
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
		logger: slog.Default().With("component", "publish"),
	}
}

// NewFromConfig creates a publisher with an S3 client built from the
// default AWS configuration chain. An empty region keeps the chain's region.
func NewFromConfig(ctx context.Context, bucket, prefix, region string) (*Publisher, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("publish: load aws config: %w", err)
	}

	return New(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// WithLogger sets the publisher's logger and returns the publisher.
func (p *Publisher) WithLogger(logger *slog.Logger) *Publisher {
	p.logger = logger.With("component", "publish")
	return p
}

// Receipt describes a published snapshot.
type Receipt struct {
	Bucket string
	Key    string
	ETag   string
}

// URI returns the s3:// URI of the snapshot.
func (r *Receipt) URI() string {
	return "s3://" + r.Bucket + "/" + r.Key
}

// Key returns the object key a result would be published under.
func (p *Publisher) Key(res pipeline.RenderResult, opts pipeline.RenderOptions) string {
	sum := sha256.Sum256([]byte(opts.String() + "\x00" + res.Source))
	return p.prefix + hex.EncodeToString(sum[:8]) + ".html"
}

// Publish uploads the snapshot of a successful result.
func (p *Publisher) Publish(ctx context.Context, res pipeline.RenderResult, opts pipeline.RenderOptions) (*Receipt, error) {
	if p.bucket == "" {
		return nil, ErrNoBucket
	}
	if !res.OK() {
		return nil, ErrFailedResult
	}

	var buf bytes.Buffer
	if err := markup.NewRenderer(markup.RendererConfig{}).RenderPage(&buf, Snapshot(res)); err != nil {
		return nil, fmt.Errorf("publish: render snapshot: %w", err)
	}

	key := p.Key(res, opts)
	out, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"source-length": strconv.Itoa(utf8.RuneCountInString(res.Source)),
			"strictness":    opts.Strictness.String(),
			"display-mode":  opts.DisplayMode.String(),
			"trust":         strconv.FormatBool(opts.Trust),
			"published-at":  p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("publish: s3 upload failed: %w", err)
	}

	receipt := &Receipt{Bucket: p.bucket, Key: key}
	if out != nil && out.ETag != nil {
		receipt.ETag = *out.ETag
	}

	p.logger.Info("snapshot published", "uri", receipt.URI(), "bytes", buf.Len())
	return receipt, nil
}

// Snapshot returns the standalone page for a successful result.
func Snapshot(res pipeline.RenderResult) markup.Page {
	return markup.Page{
		Title: res.Source,
		Styles: []string{
			"body { font-family: system-ui, sans-serif; margin: 2rem; } figure { font-size: 1.6rem; }",
		},
		Body: markup.El("figure",
			markup.Raw(string(res.Markup)),
			markup.El("figcaption", markup.El("code", res.Source)),
		),
	}
}
