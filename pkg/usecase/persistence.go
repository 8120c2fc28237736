package usecase

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/utils/errutil"
)

// Load reads and decodes the value stored under key. An absent key yields
// fallback(). A read or decode failure is reported and also yields
// fallback(), so a corrupt blob never prevents startup.
func Load[T any](ctx context.Context, kv interfaces.KVStore, key string, fallback func() T) T {
	data, err := kv.Get(ctx, key)
	if err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to read stored value", goerr.V(StorageKeyKey, key)), "falling back to defaults")
		return fallback()
	}
	if data == nil {
		return fallback()
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to parse stored value", goerr.V(StorageKeyKey, key)), "falling back to defaults")
		return fallback()
	}
	return v
}

// Save encodes value and replaces whatever is stored under key
func Save[T any](ctx context.Context, kv interfaces.KVStore, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return goerr.Wrap(err, "failed to encode value", goerr.V(StorageKeyKey, key))
	}
	if err := kv.Put(ctx, key, data); err != nil {
		return goerr.Wrap(err, "failed to store value", goerr.V(StorageKeyKey, key))
	}
	return nil
}
