package summary

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

//go:embed prompt/summarize.md
var summarizePromptTmpl string

var summarizePrompt = template.Must(template.New("summarize").Parse(summarizePromptTmpl))

var (
	ErrEmptyResponse     = goerr.New("summary response is empty")
	ErrMalformedResponse = goerr.New("summary response is malformed")
)

// Response field names, shared by the schema and the decoder
const (
	fieldSummary           = "geminiSummary"
	fieldSpecialistOpinion = "specialistOpinion"
	fieldRecommendations   = "recommendations"
)

// client implements interfaces.Summarizer on top of a gollem LLM client
type client struct {
	llmClient gollem.LLMClient
}

var _ interfaces.Summarizer = &client{}

type Option func(*client)

func New(llmClient gollem.LLMClient, opts ...Option) (interfaces.Summarizer, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{llmClient: llmClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Summarize asks the model for a summary, a specialist opinion and
// recommendations for the study. Requests are not retried.
func (c *client) Summarize(ctx context.Context, study model.CaseStudy) (*model.CaseSummary, error) {
	prompt, err := buildPrompt(study)
	if err != nil {
		return nil, err
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}

	var text string
	if resp != nil {
		text = strings.Join(resp.Texts, "")
	}

	summary, err := parseResponse(text)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("case summary generated",
		"summary_len", len(summary.Summary),
		"opinion_len", len(summary.SpecialistOpinion),
		"recommendations_len", len(summary.Recommendations),
	)
	return summary, nil
}

type promptData struct {
	StudyJSON string
}

func buildPrompt(study model.CaseStudy) (string, error) {
	raw, err := json.MarshalIndent(study, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode case study")
	}

	var buf bytes.Buffer
	if err := summarizePrompt.Execute(&buf, promptData{StudyJSON: string(raw)}); err != nil {
		return "", goerr.Wrap(err, "failed to render summary prompt")
	}
	return buf.String(), nil
}

func buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "CaseSummaryResponse",
		Description: "Structured summary of a special education case study",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			fieldSummary: {
				Type:        gollem.TypeString,
				Description: "ملخص شامل للحالة بناءً على البيانات المقدمة. يجب أن يكون موجزًا ومركّزًا على النقاط الرئيسية.",
			},
			fieldSpecialistOpinion: {
				Type:        gollem.TypeString,
				Description: "رأي متخصص مبدئي حول الحالة، مع تحديد نقاط القوة والضعف المحتملة ومجالات الاهتمام الرئيسية.",
			},
			fieldRecommendations: {
				Type:        gollem.TypeString,
				Description: "قائمة بالتوصيات الأولية المقترحة. يمكن أن تشمل اقتراحات لتقييمات إضافية، تدخلات سلوكية، أو دعم أسري. يجب أن تكون على شكل نقاط.",
			},
		},
		Required: []string{fieldSummary, fieldSpecialistOpinion, fieldRecommendations},
	}
}

// parseResponse decodes the model output. Every field must be present as a
// string; blank values are accepted.
func parseResponse(text string) (*model.CaseSummary, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, goerr.Wrap(ErrEmptyResponse, "no text in LLM response")
	}

	// Some models wrap JSON output in a code fence
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var fields map[string]*string
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, "response is not a JSON object of strings",
			goerr.V("cause", err.Error()),
			goerr.V("response", text))
	}

	for _, name := range []string{fieldSummary, fieldSpecialistOpinion, fieldRecommendations} {
		if fields[name] == nil {
			return nil, goerr.Wrap(ErrMalformedResponse, "required field missing",
				goerr.V("field", name),
				goerr.V("response", text))
		}
	}

	return &model.CaseSummary{
		Summary:           *fields[fieldSummary],
		SpecialistOpinion: *fields[fieldSpecialistOpinion],
		Recommendations:   *fields[fieldRecommendations],
	}, nil
}
