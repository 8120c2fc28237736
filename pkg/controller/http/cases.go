package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/service/report"
	"github.com/secmon-lab/casebook/pkg/usecase"
	"github.com/secmon-lab/casebook/pkg/utils/async"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
	"github.com/secmon-lab/casebook/pkg/utils/safe"
)

type outcomeResponse struct {
	Outcome types.Outcome     `json:"outcome"`
	Case    *model.CaseRecord `json:"case,omitempty"`
}

type summaryResponse struct {
	Summary *model.CaseSummary `json:"summary"`
	Case    *model.CaseRecord  `json:"case,omitempty"`
}

func caseIDParam(r *http.Request) types.CaseID {
	return types.CaseID(chi.URLParam(r, "caseID"))
}

func notFound(id types.CaseID) error {
	return goerr.Wrap(errCaseNotFound, "no such case", goerr.V(usecase.CaseIDKey, id))
}

// findOrNil returns a pointer to a copy of the case, or nil when absent
func (s *Server) findOrNil(ctx context.Context, id types.CaseID) *model.CaseRecord {
	rec, ok := s.uc.Case.Find(ctx, id)
	if !ok {
		return nil
	}
	return &rec
}

func (s *Server) listCases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records := usecase.Filter(s.uc.Case.List(r.Context()), q.Get("query"), q.Get("source"))
	writeJSON(r.Context(), w, http.StatusOK, records)
}

func (s *Server) createCase(w http.ResponseWriter, r *http.Request) {
	rec := s.uc.Case.Create(r.Context())
	writeJSON(r.Context(), w, http.StatusCreated, rec)
}

func (s *Server) getCase(w http.ResponseWriter, r *http.Request) {
	id := caseIDParam(r)
	rec, ok := s.uc.Case.Find(r.Context(), id)
	if !ok {
		handleError(r.Context(), w, notFound(id))
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, rec)
}

func (s *Server) deleteCase(w http.ResponseWriter, r *http.Request) {
	id := caseIDParam(r)
	if r.URL.Query().Get("confirm") != "true" {
		handleError(r.Context(), w, goerr.Wrap(errConfirmationRequired, "deletion not confirmed", goerr.V(usecase.CaseIDKey, id)))
		return
	}

	if outcome := s.uc.Case.Delete(r.Context(), id); !outcome.Found() {
		handleError(r.Context(), w, notFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := caseIDParam(r)

	section, err := types.ParseSectionKey(chi.URLParam(r, "section"))
	if err != nil {
		handleError(ctx, w, goerr.Wrap(model.ErrUnknownSection, err.Error()))
		return
	}

	var patch model.SectionPatch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&patch); err != nil {
		handleError(ctx, w, goerr.Wrap(errInvalidBody, "section patch must be a JSON object", goerr.V("cause", err.Error())))
		return
	}

	outcome, err := s.uc.Case.UpdateSection(ctx, id, section, patch)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	if !outcome.Found() {
		handleError(ctx, w, notFound(id))
		return
	}
	writeJSON(ctx, w, http.StatusOK, outcomeResponse{Outcome: outcome, Case: s.findOrNil(ctx, id)})
}

func (s *Server) refreshDerived(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := caseIDParam(r)

	outcome, err := s.uc.Case.RefreshDerived(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	if !outcome.Found() {
		handleError(ctx, w, notFound(id))
		return
	}
	writeJSON(ctx, w, http.StatusOK, outcomeResponse{Outcome: outcome, Case: s.findOrNil(ctx, id)})
}

func (s *Server) generateSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := caseIDParam(r)

	if !s.uc.Summary.Enabled() {
		handleError(ctx, w, goerr.Wrap(usecase.ErrSummarizerNotConfigured, "summary unavailable"))
		return
	}
	if _, ok := s.uc.Case.Find(ctx, id); !ok {
		handleError(ctx, w, notFound(id))
		return
	}

	if r.URL.Query().Get("async") == "true" {
		task := s.uc.Summary.Start(context.WithoutCancel(ctx), id)
		async.Dispatch(ctx, func(ctx context.Context) error {
			_, outcome, err := task.Wait(ctx)
			if err != nil {
				return err
			}
			logging.From(ctx).Info("case summary applied", "case_id", id, "outcome", outcome)
			return nil
		})
		writeJSON(ctx, w, http.StatusAccepted, outcomeResponse{Outcome: types.OutcomeUnchanged})
		return
	}

	summary, outcome, err := s.uc.Summary.Generate(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	if !outcome.Found() {
		handleError(ctx, w, notFound(id))
		return
	}
	writeJSON(ctx, w, http.StatusOK, summaryResponse{Summary: summary, Case: s.findOrNil(ctx, id)})
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := caseIDParam(r)

	rec, ok := s.uc.Case.Find(ctx, id)
	if !ok {
		handleError(ctx, w, notFound(id))
		return
	}
	rpt := report.Build(rec.Study, s.uc.Branding.Get(ctx), s.locale)

	switch format := r.URL.Query().Get("format"); format {
	case "", "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.RenderHTML(w, rpt); err != nil {
			handleError(ctx, w, err)
		}
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		safe.Write(ctx, w, []byte(report.RenderMarkdown(rpt)))
	case "json":
		writeJSON(ctx, w, http.StatusOK, rpt)
	default:
		handleError(ctx, w, goerr.Wrap(errInvalidBody, "unsupported report format", goerr.V("format", format)))
	}
}

func (s *Server) getCompletion(w http.ResponseWriter, r *http.Request) {
	id := caseIDParam(r)
	rec, ok := s.uc.Case.Find(r.Context(), id)
	if !ok {
		handleError(r.Context(), w, notFound(id))
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, rec.Study.Completion())
}

func (s *Server) getActive(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.uc.Case.Active(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, rec)
}

func (s *Server) selectActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID types.CaseID `json:"id"`
	}
	if err := decodeJSON(w, r, &req, maxBodySize); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	outcome := s.uc.Case.Select(r.Context(), req.ID)
	if !outcome.Found() {
		handleError(r.Context(), w, notFound(req.ID))
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, outcomeResponse{Outcome: outcome, Case: s.findOrNil(r.Context(), req.ID)})
}

func (s *Server) clearActive(w http.ResponseWriter, r *http.Request) {
	s.uc.Case.ClearActive(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, s.uc.Case.Dashboard(r.Context()))
}

func (s *Server) getSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, s.uc.Case.Suggestions(r.Context()))
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"saveStatus":     s.uc.Case.SaveStatus(),
		"summaryEnabled": s.uc.Summary.Enabled(),
	})
}
