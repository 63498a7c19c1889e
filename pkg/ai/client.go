package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"dicesim/pkg/config"
	"dicesim/pkg/report"
	"dicesim/pkg/simulation"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY is not set")

// ErrEmptyReply is returned when the model answers without choices.
var ErrEmptyReply = errors.New("chat completion returned no choices")

// systemPrompt 解读卡方检验结果的系统提示
const systemPrompt = "You are a statistician reviewing a dice simulation. " +
	"You receive the observed and expected counts of every sum and a Pearson Chi-Squared " +
	"statistic with its degrees of freedom. In at most four sentences, tell the reader " +
	"whether the observed rolls look consistent with fair dice and why. " +
	"Do not compute a p-value; compare the statistic with the degrees of freedom instead."

// Client 封装 OpenAI 兼容客户端
type Client struct {
	api   *openai.Client
	model string
}

// New builds a client from cfg.
func New(cfg config.AI) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	logrus.Infof("AI Client initialized with Model: %s, BaseURL: %s", cfg.Model, oc.BaseURL)
	return &Client{
		api:   openai.NewClientWithConfig(oc),
		model: cfg.Model,
	}, nil
}

// ChatRequest 发送对话请求
func (c *Client) ChatRequest(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.api.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
		},
	)
	if err != nil {
		logrus.Errorf("ChatCompletion error: %v", err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

// Interpret asks the model to explain res in plain words.
func (c *Client) Interpret(ctx context.Context, res *simulation.Result) (string, error) {
	return c.ChatRequest(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: "Sum | Expected | Observed\n" + report.Compact(res)},
	})
}
