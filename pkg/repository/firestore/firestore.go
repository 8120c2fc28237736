package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore keeps one document per key in a single collection. The blob
// is stored as a string field so documents stay readable in the console.
type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.KVStore = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

type blobDoc struct {
	Data      string    `firestore:"data"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// New creates a client for projectID. An empty databaseID selects the
// default database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{client: client}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Firestore) collection() string {
	if f.collectionPrefix != "" {
		return f.collectionPrefix + "_blobs"
	}
	return "blobs"
}

func (f *Firestore) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := f.client.Collection(f.collection()).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get blob document", goerr.V("key", key))
	}

	var blob blobDoc
	if err := doc.DataTo(&blob); err != nil {
		return nil, goerr.Wrap(err, "failed to decode blob document", goerr.V("key", key))
	}
	return []byte(blob.Data), nil
}

func (f *Firestore) Put(ctx context.Context, key string, data []byte) error {
	_, err := f.client.Collection(f.collection()).Doc(key).Set(ctx, blobDoc{
		Data:      string(data),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to set blob document", goerr.V("key", key))
	}
	return nil
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
