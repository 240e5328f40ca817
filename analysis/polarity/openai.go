package polarity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

const polarityPrompt = `You rate the sentiment of a single chat message.
Return a polarity score between -1 (strongly negative) and 1 (strongly positive).
0 means neutral. Judge only the emotional tone of the text itself.
Return only JSON matching the schema.`

type polarityResponse struct {
	Polarity float64 `json:"polarity" jsonschema_description:"Sentiment polarity in [-1, 1]"`
}

var polaritySchema = generateSchema[polarityResponse]()

// OpenAIScorer scores messages with an OpenAI model constrained to a strict
// JSON schema. The model is treated as a pure function of the text; nothing
// is cached between calls.
type OpenAIScorer struct {
	client *openai.Client
	model  string
}

// NewOpenAIScorer wraps client/model as a Scorer.
func NewOpenAIScorer(client *openai.Client, model string) *OpenAIScorer {
	return &OpenAIScorer{client: client, model: model}
}

// Score asks the model for a polarity rating of text, clamped to [-1, 1].
// Empty text scores 0 without a call.
func (s *OpenAIScorer) Score(ctx context.Context, text string) (float64, error) {
	if s.client == nil {
		return 0, errors.New("OpenAIScorer: client is nil")
	}
	if s.model == "" {
		return 0, errors.New("OpenAIScorer: model is empty")
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "MessagePolarity",
			Schema:      polaritySchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Polarity score JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           s.model,
		MaxOutputTokens: openai.Int(50),
		Instructions:    openai.String(polarityPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := callWithRetry(ctx, s.client, params)
	if err != nil {
		return 0, fmt.Errorf("OpenAIScorer: %w", err)
	}

	var out polarityResponse
	if err := decodeModelJSON(resp.OutputText(), &out); err != nil {
		return 0, fmt.Errorf("OpenAIScorer: unmarshal polarity: %w", err)
	}
	return clamp(out.Polarity, -1, 1), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func callWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaits := []time.Duration{65 * time.Second, 100 * time.Second, 135 * time.Second}
	serverErrorWaits := []time.Duration{5 * time.Second, 30 * time.Second, 60 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Responses.New(ctx, params)
		if err == nil {
			return resp, nil
		}

		var wait time.Duration
		switch {
		case isRateLimitError(err):
			wait = rateLimitWaits[attempt]
		case isServerError(err):
			wait = serverErrorWaits[attempt]
		default:
			return nil, err
		}
		if attempt == maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("failed after %d attempts due to OpenAI API issues", maxRetries)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "500") ||
		strings.Contains(s, "internal server error") ||
		strings.Contains(s, "server_error")
}

// decodeModelJSON unmarshals JSON from a model response, tolerating output
// that wraps the JSON object in extra text or whitespace.
func decodeModelJSON(outputText string, v any) error {
	s := strings.TrimSpace(outputText)
	if s == "" {
		return errors.New("empty model output")
	}

	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object found in model output (len=%d)", len(s))
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to unmarshal extracted JSON: %w", err)
	}
	return nil
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	ensureStrictSchema(m)
	return m
}

// ensureStrictSchema makes the reflected schema acceptable to the strict
// structured-output mode: objects forbid additional properties and list
// every property as required.
func ensureStrictSchema(schema map[string]interface{}) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]interface{}); ok {
			var required []string
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		for _, p := range props {
			if pm, ok := p.(map[string]interface{}); ok {
				ensureStrictSchema(pm)
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		ensureStrictSchema(items)
	}
}
