package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/repository/file"
	"github.com/secmon-lab/casebook/pkg/repository/firestore"
	"github.com/secmon-lab/casebook/pkg/repository/gcs"
	"github.com/secmon-lab/casebook/pkg/repository/memory"
	"github.com/secmon-lab/casebook/pkg/repository/redis"
	"github.com/secmon-lab/casebook/pkg/repository/sqlite"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Storage backends
const (
	BackendMemory    = "memory"
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendRedis     = "redis"
	BackendFirestore = "firestore"
	BackendGCS       = "gcs"
)

// Storage holds CLI flags for the key-value storage backend
type Storage struct {
	backend string

	dir        string
	sqlitePath string

	redisURL    string
	redisPrefix string

	firestoreProject  string
	firestoreDatabase string
	firestorePrefix   string

	gcsBucket   string
	gcsPrefix   string
	gcsEndpoint string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage",
			Usage:       "Storage backend (memory, file, sqlite, redis, firestore, gcs)",
			Value:       BackendFile,
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_STORAGE"),
			Destination: &s.backend,
		},
		&cli.StringFlag{
			Name:        "storage-dir",
			Usage:       "Directory for the file backend",
			Value:       ".casebook",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_STORAGE_DIR"),
			Destination: &s.dir,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "Database file for the sqlite backend",
			Value:       "casebook.db",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_SQLITE_PATH"),
			Destination: &s.sqlitePath,
		},
		&cli.StringFlag{
			Name:        "redis-url",
			Usage:       "Redis URL for the redis backend (e.g. redis://localhost:6379/0)",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_REDIS_URL"),
			Destination: &s.redisURL,
		},
		&cli.StringFlag{
			Name:        "redis-key-prefix",
			Usage:       "Key prefix for the redis backend",
			Value:       "casebook:",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_REDIS_KEY_PREFIX"),
			Destination: &s.redisPrefix,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_FIRESTORE_PROJECT_ID"),
			Destination: &s.firestoreProject,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_FIRESTORE_DATABASE_ID"),
			Destination: &s.firestoreDatabase,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Collection name prefix for the firestore backend",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &s.firestorePrefix,
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Bucket name (required when using gcs backend)",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_GCS_BUCKET"),
			Destination: &s.gcsBucket,
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object name prefix for the gcs backend",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_GCS_PREFIX"),
			Destination: &s.gcsPrefix,
		},
		&cli.StringFlag{
			Name:        "gcs-endpoint",
			Usage:       "Custom endpoint for the gcs backend, e.g. an emulator",
			Category:    "Storage",
			Sources:     cli.EnvVars("CASEBOOK_GCS_ENDPOINT"),
			Destination: &s.gcsEndpoint,
		},
	}
}

// Backend returns the configured backend type
func (s *Storage) Backend() string {
	return s.backend
}

// LogAttrs returns log attributes for the storage configuration
func (s *Storage) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("backend", s.backend)}
	switch s.backend {
	case BackendFile:
		attrs = append(attrs, slog.String("dir", s.dir))
	case BackendSQLite:
		attrs = append(attrs, slog.String("path", s.sqlitePath))
	case BackendRedis:
		attrs = append(attrs, slog.String("key_prefix", s.redisPrefix))
	case BackendFirestore:
		attrs = append(attrs,
			slog.String("project_id", s.firestoreProject),
			slog.String("database_id", s.firestoreDatabase),
		)
	case BackendGCS:
		attrs = append(attrs,
			slog.String("bucket", s.gcsBucket),
			slog.String("prefix", s.gcsPrefix),
		)
	}
	return attrs
}

func requireParam(backend, name, value string) error {
	if value == "" {
		return goerr.Wrap(ErrMissingParameter, "parameter is required for backend",
			goerr.V(BackendKey, backend),
			goerr.V(ParameterKey, name),
		)
	}
	return nil
}

// Configure opens the configured backend. The caller is responsible for
// calling Close() on the returned store.
func (s *Storage) Configure(ctx context.Context) (interfaces.KVStore, error) {
	logger := logging.From(ctx)

	switch s.backend {
	case BackendMemory:
		logger.Warn("Using in-memory storage, data is lost on exit")
		return memory.New(), nil

	case BackendFile:
		if err := requireParam(s.backend, "storage-dir", s.dir); err != nil {
			return nil, err
		}
		store, err := file.New(s.dir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize file storage")
		}
		logger.Info("Using file storage", "dir", s.dir)
		return store, nil

	case BackendSQLite:
		if err := requireParam(s.backend, "sqlite-path", s.sqlitePath); err != nil {
			return nil, err
		}
		store, err := sqlite.New(ctx, s.sqlitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite storage")
		}
		logger.Info("Using sqlite storage", "path", s.sqlitePath)
		return store, nil

	case BackendRedis:
		if err := requireParam(s.backend, "redis-url", s.redisURL); err != nil {
			return nil, err
		}
		store, err := redis.New(ctx, s.redisURL, redis.WithKeyPrefix(s.redisPrefix))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize redis storage")
		}
		logger.Info("Using redis storage", "key_prefix", s.redisPrefix)
		return store, nil

	case BackendFirestore:
		if err := requireParam(s.backend, "firestore-project-id", s.firestoreProject); err != nil {
			return nil, err
		}
		store, err := firestore.New(ctx, s.firestoreProject, s.firestoreDatabase,
			firestore.WithCollectionPrefix(s.firestorePrefix))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore storage")
		}
		logger.Info("Using Firestore storage",
			"project_id", s.firestoreProject,
			"database_id", s.firestoreDatabase,
		)
		return store, nil

	case BackendGCS:
		if err := requireParam(s.backend, "gcs-bucket", s.gcsBucket); err != nil {
			return nil, err
		}
		opts := []gcs.Option{gcs.WithPrefix(s.gcsPrefix)}
		if s.gcsEndpoint != "" {
			opts = append(opts, gcs.WithEndpoint(s.gcsEndpoint))
		}
		store, err := gcs.New(ctx, s.gcsBucket, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize gcs storage")
		}
		logger.Info("Using Cloud Storage", "bucket", s.gcsBucket, "prefix", s.gcsPrefix)
		return store, nil

	default:
		return nil, goerr.Wrap(ErrUnknownBackend, "invalid storage backend", goerr.V(BackendKey, s.backend))
	}
}
