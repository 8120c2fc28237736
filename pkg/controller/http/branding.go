package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/usecase"
	"github.com/secmon-lab/casebook/pkg/utils/safe"
)

func (s *Server) getBranding(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, s.uc.Branding.Get(r.Context()))
}

func (s *Server) saveBranding(w http.ResponseWriter, r *http.Request) {
	var settings model.BrandingSettings
	// Logos arrive inline as data URIs, so allow the logo limit plus
	// base64 overhead
	if err := decodeJSON(w, r, &settings, usecase.MaxLogoSize*2); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, s.uc.Branding.Save(r.Context(), settings))
}

// uploadLogo accepts a multipart form with the image in the "logo" field
func (s *Server) uploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxLogoSize+maxBodySize)

	file, header, err := r.FormFile("logo")
	if err != nil {
		handleError(ctx, w, goerr.Wrap(errInvalidBody, "logo file is required", goerr.V("cause", err.Error())))
		return
	}
	defer safe.Close(ctx, file)

	settings, err := s.uc.Branding.ImportLogo(ctx, file, header.Header.Get("Content-Type"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, settings)
}
