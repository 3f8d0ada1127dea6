package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// OpenAIClient runs the same conversation through the OpenAI Responses API.
// System messages become the request instructions.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
}

func NewOpenAIClient(baseURL, model string, temperature float64, timeout time.Duration) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, credential string, messages []Message) (string, error) {
	var instructions []string
	items := make([]responses.ResponseInputItemUnionParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			instructions = append(instructions, m.Content)
		case RoleAssistant:
			items = append(items, responses.ResponseInputItemParamOfMessage(m.Content, responses.EasyInputMessageRoleAssistant))
		default:
			items = append(items, responses.ResponseInputItemParamOfMessage(m.Content, responses.EasyInputMessageRoleUser))
		}
	}

	params := responses.ResponseNewParams{
		Model:       c.model,
		Temperature: openai.Float(c.temperature),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: items,
		},
	}
	if len(instructions) > 0 {
		params.Instructions = openai.String(strings.Join(instructions, "\n\n"))
	}

	resp, err := c.client.Responses.New(ctx, params, option.WithAPIKey(credential))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &TransportError{StatusCode: apiErr.StatusCode, Message: apiErr.Message, Err: err}
		}
		return "", &TransportError{Message: "api call", Err: err}
	}

	return resp.OutputText(), nil
}
