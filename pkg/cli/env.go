package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/cli/config"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/service/summary"
	"github.com/secmon-lab/casebook/pkg/usecase"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// env bundles the configuration shared by every command that touches
// stored cases
type env struct {
	app     config.App
	storage config.Storage
	gemini  config.Gemini

	withGemini bool
}

func (e *env) flags() []cli.Flag {
	flags := append(e.app.Flags(), e.storage.Flags()...)
	if e.withGemini {
		flags = append(flags, e.gemini.Flags()...)
	}
	return flags
}

// session is an opened store with its use cases
type session struct {
	uc     *usecase.UseCases
	locale model.Locale
	store  interfaces.KVStore
}

func (s *session) Close(ctx context.Context) {
	s.uc.Close()
	if err := s.store.Close(); err != nil {
		logging.From(ctx).Error("failed to close storage", "error", err.Error())
	}
}

func (e *env) open(ctx context.Context) (*session, error) {
	appCfg, err := e.app.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load configuration")
	}

	store, err := e.storage.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize storage")
	}

	opts := appCfg.UseCaseOptions()
	if e.withGemini {
		llmClient, err := e.gemini.Configure(ctx)
		if err != nil {
			_ = store.Close()
			return nil, goerr.Wrap(err, "failed to configure Gemini")
		}
		if llmClient != nil {
			summarizer, err := summary.New(llmClient)
			if err != nil {
				_ = store.Close()
				return nil, goerr.Wrap(err, "failed to initialize summary service")
			}
			opts = append(opts, usecase.WithSummarizer(summarizer))
			logging.From(ctx).Info("Summary service enabled", "gemini", e.gemini.LogAttrs())
		} else {
			logging.From(ctx).Info("Gemini project not configured, summaries are disabled")
		}
	}

	return &session{
		uc:     usecase.New(ctx, store, opts...),
		locale: appCfg.Locale,
		store:  store,
	}, nil
}
