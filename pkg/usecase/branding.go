package usecase

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/utils/errutil"
)

// MaxLogoSize bounds imported logo files
const MaxLogoSize = 2 << 20

type BrandingUseCase struct {
	kv  interfaces.KVStore
	key string

	mu       sync.Mutex
	settings model.BrandingSettings
}

func newBrandingUseCase(ctx context.Context, kv interfaces.KVStore, key string, defaults model.BrandingSettings) *BrandingUseCase {
	return &BrandingUseCase{
		kv:  kv,
		key: key,
		settings: Load(ctx, kv, key, func() model.BrandingSettings {
			return defaults
		}),
	}
}

func (uc *BrandingUseCase) Get(ctx context.Context) model.BrandingSettings {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.settings
}

// Save replaces the settings wholesale and writes them through. A failed
// write is reported; the new settings stay in effect for this process.
func (uc *BrandingUseCase) Save(ctx context.Context, settings model.BrandingSettings) model.BrandingSettings {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.settings = settings
	if err := Save(context.WithoutCancel(ctx), uc.kv, uc.key, settings); err != nil {
		_ = errutil.Handle(ctx, err, "failed to persist branding settings")
	}
	return uc.settings
}

// ImportLogo reads an image and stores it as a data URI logo. An empty or
// generic contentType is sniffed from the content.
func (uc *BrandingUseCase) ImportLogo(ctx context.Context, r io.Reader, contentType string) (model.BrandingSettings, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxLogoSize+1))
	if err != nil {
		return model.BrandingSettings{}, goerr.Wrap(err, "failed to read logo")
	}
	if len(data) == 0 {
		return model.BrandingSettings{}, goerr.Wrap(ErrInvalidLogo, "logo is empty")
	}
	if len(data) > MaxLogoSize {
		return model.BrandingSettings{}, goerr.Wrap(ErrLogoTooLarge, "logo rejected", goerr.V("limit", MaxLogoSize))
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !strings.HasPrefix(contentType, "image/") {
		return model.BrandingSettings{}, goerr.Wrap(ErrInvalidLogo, "logo is not an image", goerr.V("content_type", contentType))
	}

	settings := uc.Get(ctx)
	settings.Logo = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return uc.Save(ctx, settings), nil
}
