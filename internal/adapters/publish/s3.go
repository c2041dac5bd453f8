// Package publish uploads a built site tree to S3.
package publish

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"rental_site/internal/adapters/observability"
)

// PutObjectAPI is the slice of the S3 client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Publisher struct {
	client  PutObjectAPI
	bucket  string
	prefix  string
	workers int
}

func NewS3(client PutObjectAPI, bucket, prefix string, workers int) *S3Publisher {
	if workers <= 0 {
		workers = 8
	}
	return &S3Publisher{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/"), workers: workers}
}

// NewS3FromEnv uses the default AWS credential chain.
func NewS3FromEnv(ctx context.Context, region, bucket, prefix string, workers int) (*S3Publisher, error) {
	if bucket == "" {
		return nil, fmt.Errorf("publish bucket is required")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewS3(s3.NewFromConfig(cfg), bucket, prefix, workers), nil
}

// Publish uploads every regular file under dir and returns the count. The
// first failure cancels the remaining uploads.
func (p *S3Publisher) Publish(ctx context.Context, dir string) (int, error) {
	var files []string
	err := filepath.WalkDir(dir, func(fp string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, fp)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk %s: %w", dir, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, fp := range files {
		fp := fp
		g.Go(func() error { return p.upload(gctx, dir, fp) })
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	log.Info().Str("bucket", p.bucket).Str("prefix", p.prefix).Int("files", len(files)).Msg("site published")
	return len(files), nil
}

func (p *S3Publisher) upload(ctx context.Context, root, fp string) error {
	rel, err := filepath.Rel(root, fp)
	if err != nil {
		return err
	}
	key := path.Join(p.prefix, filepath.ToSlash(rel))

	f, err := os.Open(fp)
	if err != nil {
		return err
	}
	defer f.Close()

	began := time.Now()
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(key),
		Body:         f,
		ContentType:  aws.String(ContentType(fp)),
		CacheControl: aws.String(cacheControl(fp)),
	})
	status := 200
	if err != nil {
		status = 0
	}
	observability.ObserveExternal("s3", "put_object", status, time.Since(began))
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// ContentType guesses from the extension; unknown types are octet-stream.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".webp":
		return "image/webp"
	case ".json":
		return "application/json"
	case ".xml":
		return "application/xml"
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// HTML and translation bundles change every build; assets are long-lived.
func cacheControl(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".json", ".xml", ".txt":
		return "public, max-age=300"
	}
	return "public, max-age=31536000"
}
