package ai

import (
	"context"
	"errors"
	"time"

	"github.com/abadojack/whatlanggo"
	openai "github.com/sashabaranov/go-openai"

	"github.com/carena-app/backend/pkg/metrics"
)

// Completer produces an answer for a user question, optionally grounded on
// attached images.
type Completer interface {
	Complete(ctx context.Context, language, question string, imageURLs []string) (string, error)
}

const systemPromptEN = "You are a health information assistant for a cancer patient community. " +
	"Answer only questions related to health, treatment, daily care and wellbeing. " +
	"If a question is outside the health domain, politely decline. " +
	"Never present your answer as a medical diagnosis; recommend consulting a doctor for clinical decisions."

const systemPromptKO = "당신은 암 환우 커뮤니티의 건강 정보 도우미입니다. " +
	"건강, 치료, 일상 관리와 관련된 질문에만 답변하세요. " +
	"건강과 무관한 질문에는 정중히 답변을 거절하세요. " +
	"답변을 의학적 진단으로 제시하지 말고, 임상적 판단은 의사와 상담하도록 권하세요."

// DetectLanguage picks the system-prompt language for a question
func DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if info.Lang == whatlanggo.Kor {
		return "ko"
	}
	return "en"
}

// Client wraps the OpenAI chat-completion API
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key not provided")
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (c *Client) Complete(ctx context.Context, language, question string, imageURLs []string) (string, error) {
	system := systemPromptEN
	if language == "ko" {
		system = systemPromptKO
	}

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: question},
	}
	for _, url := range imageURLs {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: url},
		})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	})
	if err != nil {
		metrics.RecordCompletionLatency("error", time.Since(start))
		return "", err
	}
	metrics.RecordCompletionLatency("success", time.Since(start))

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
