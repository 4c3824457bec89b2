package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// ModelRequest is one prompt plus the tools the model may call.
type ModelRequest struct {
	Instructions string
	Prompt       string
	Tools        *ToolRegistry
}

type ToolCall struct {
	Name      string
	Arguments string
}

// ModelReply is the model's text and the tool calls it asked for, in order.
type ModelReply struct {
	Text      string
	ToolCalls []ToolCall
}

// ModelClient is the language-model boundary. OpenAIClient is the production
// implementation; tests substitute a fake.
type ModelClient interface {
	Respond(ctx context.Context, req ModelRequest) (ModelReply, error)
}

const assistantTemperature = 0.3

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = shared.ChatModelGPT4o
	}
	return &OpenAIClient{client: &client, model: model}
}

func (c *OpenAIClient) Respond(ctx context.Context, req ModelRequest) (ModelReply, error) {
	params := responses.ResponseNewParams{
		Model:        shared.ResponsesModel(c.model),
		Instructions: openai.String(req.Instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(req.Prompt),
		},
		Temperature: openai.Float(assistantTemperature),
	}
	if req.Tools != nil {
		params.Tools = req.Tools.ToOpenAITools()
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return ModelReply{}, fmt.Errorf("openai responses error: %w", err)
	}

	reply := ModelReply{Text: resp.OutputText()}
	for _, item := range resp.Output {
		if item.Type != "function_call" {
			continue
		}
		call := item.AsFunctionCall()
		reply.ToolCalls = append(reply.ToolCalls, ToolCall{Name: call.Name, Arguments: call.Arguments})
	}
	return reply, nil
}
