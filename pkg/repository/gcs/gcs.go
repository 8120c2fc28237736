package gcs

import (
	"context"
	"errors"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/utils/safe"
	"google.golang.org/api/option"
)

// GCS stores each blob as the object <prefix>/<key>.json in one bucket.
// An object only becomes visible once its writer is closed successfully.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.KVStore = &GCS{}

type Option func(*config)

type config struct {
	prefix     string
	clientOpts []option.ClientOption
}

func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithEndpoint points the client at an emulator or private endpoint.
// Authentication is disabled for custom endpoints.
func WithEndpoint(endpoint string) Option {
	return func(c *config) {
		c.clientOpts = append(c.clientOpts,
			option.WithEndpoint(endpoint),
			option.WithoutAuthentication(),
		)
	}
}

func New(ctx context.Context, bucket string, opts ...Option) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := storage.NewClient(ctx, cfg.clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	return &GCS{
		client: client,
		bucket: bucket,
		prefix: cfg.prefix,
	}, nil
}

func (g *GCS) objectName(key string) string {
	return path.Join(g.prefix, key+".json")
}

func (g *GCS) Get(ctx context.Context, key string) ([]byte, error) {
	name := g.objectName(key)
	r, err := g.client.Bucket(g.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to open object", goerr.V("bucket", g.bucket), goerr.V("object", name))
	}
	defer safe.Close(ctx, r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read object", goerr.V("bucket", g.bucket), goerr.V("object", name))
	}
	return data, nil
}

func (g *GCS) Put(ctx context.Context, key string, data []byte) error {
	name := g.objectName(key)

	// Cancelling the context aborts the upload and keeps the previous
	// generation of the object.
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(wctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		cancel()
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object", goerr.V("bucket", g.bucket), goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object", goerr.V("bucket", g.bucket), goerr.V("object", name))
	}
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
