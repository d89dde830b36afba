// Package archive stores chat transcripts in S3-compatible object
// storage. Transcripts are zstd-compressed JSON; archival is best-effort
// and never blocks a chat response.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/aimldept/deptbot-go/internal/logger"
)

// ErrObjectNotFound is returned when a transcript key does not exist.
var ErrObjectNotFound = errors.New("archive: object not found")

// Config holds object storage configuration.
type Config struct {
	Endpoint    string // S3-compatible endpoint URL
	AccessKeyID string
	SecretKey   string
	Bucket      string
	Prefix      string // key prefix, e.g. "transcripts"
}

// Archiver uploads session transcripts to object storage.
type Archiver struct {
	s3      *s3.Client
	bucket  string
	prefix  string
	encoder *zstd.Encoder
	log     *logger.Logger
}

// New creates an archiver. All connection fields are required.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Archiver, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, errors.New("archive: endpoint, credentials and bucket are required")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("archive: load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // required for non-AWS S3 implementations
	})

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("archive: create zstd encoder: %w", err)
	}

	return &Archiver{
		s3:      s3Client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		encoder: encoder,
		log:     log.WithModule("archive"),
	}, nil
}

// Store implements the transcript sink: it compresses the transcript and
// uploads it under a key derived from the session and upload time.
func (a *Archiver) Store(ctx context.Context, sessionID string, transcript []byte) error {
	key := a.transcriptKey(sessionID)
	compressed := a.encoder.EncodeAll(transcript, nil)

	_, err := a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(compressed),
		ContentType: aws.String("application/zstd"),
	})
	if err != nil {
		return fmt.Errorf("archive: upload %q: %w", key, err)
	}

	a.log.Debug("Transcript archived",
		"key", key,
		"raw_bytes", len(transcript),
		"compressed_bytes", len(compressed),
	)
	return nil
}

// Fetch downloads and decompresses a transcript by key.
func (a *Archiver) Fetch(ctx context.Context, key string) ([]byte, error) {
	result, err := a.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("archive: download %q: %w", key, err)
	}
	defer result.Body.Close()

	compressed, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("archive: read %q: %w", key, err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("archive: create zstd decoder: %w", err)
	}
	defer decoder.Close()

	transcript, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("archive: decompress %q: %w", key, err)
	}
	return transcript, nil
}

// transcriptKey builds a collision-free object key. The date segment
// keeps bucket listings browsable by day.
func (a *Archiver) transcriptKey(sessionID string) string {
	day := time.Now().UTC().Format("2006-01-02")
	name := fmt.Sprintf("%s/%s-%s.json.zst", day, sanitizeSegment(sessionID), uuid.New().String())
	if a.prefix == "" {
		return name
	}
	return a.prefix + "/" + name
}

// sanitizeSegment keeps session identifiers safe to embed in object keys.
func sanitizeSegment(s string) string {
	if s == "" {
		return "anonymous"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, s)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "404":
			return true
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	return false
}
