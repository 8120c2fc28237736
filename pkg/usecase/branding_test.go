package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/usecase"
)

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestBrandingUseCase_Save(t *testing.T) {
	uc, kv := newTestUseCases(t, usecase.WithDefaultBranding(model.BrandingSettings{
		OrganizationName: "default org",
	}))
	ctx := context.Background()

	gt.Value(t, uc.Branding.Get(ctx).OrganizationName).Equal("default org")

	saved := uc.Branding.Save(ctx, model.BrandingSettings{
		Address:     "الرياض",
		ContactInfo: "0500000000",
	})
	gt.Value(t, saved.OrganizationName).Equal("")
	gt.Value(t, uc.Branding.Get(ctx).Address).Equal("الرياض")

	data, err := kv.Get(ctx, usecase.DefaultBrandingKey)
	gt.NoError(t, err).Required()
	var stored model.BrandingSettings
	gt.NoError(t, json.Unmarshal(data, &stored)).Required()
	gt.Value(t, stored).Equal(saved)
}

func TestBrandingUseCase_ImportLogo(t *testing.T) {
	t.Run("sniffs content type", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		uc.Branding.Save(ctx, model.BrandingSettings{OrganizationName: "org"})

		got, err := uc.Branding.ImportLogo(ctx, bytes.NewReader(pngPixel), "")
		gt.NoError(t, err).Required()
		gt.String(t, got.Logo).Contains("data:image/png;base64,")
		gt.Value(t, got.OrganizationName).Equal("org")
		gt.Value(t, uc.Branding.Get(ctx).Logo).Equal(got.Logo)
	})

	t.Run("uses given content type", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		got, err := uc.Branding.ImportLogo(context.Background(), strings.NewReader("<svg/>"), "image/svg+xml; charset=utf-8")
		gt.NoError(t, err).Required()
		gt.String(t, got.Logo).Contains("data:image/svg+xml;base64,")
	})

	t.Run("rejects non-image", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		_, err := uc.Branding.ImportLogo(context.Background(), strings.NewReader("hello"), "")
		gt.Error(t, err).Is(usecase.ErrInvalidLogo)
		gt.Value(t, uc.Branding.Get(context.Background()).Logo).Equal("")
	})

	t.Run("rejects empty", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		_, err := uc.Branding.ImportLogo(context.Background(), strings.NewReader(""), "image/png")
		gt.Error(t, err).Is(usecase.ErrInvalidLogo)
	})

	t.Run("rejects oversized", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		big := bytes.Repeat([]byte{0}, usecase.MaxLogoSize+1)
		_, err := uc.Branding.ImportLogo(context.Background(), bytes.NewReader(big), "image/png")
		gt.Error(t, err).Is(usecase.ErrLogoTooLarge)
	})
}
