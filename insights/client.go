// Package insights generates seller-facing texts (market reports and
// product-safety notices) over an OpenAI-compatible chat API. It is a
// stateless formatter: no retries, no caching, one call per request.
package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultBaseURL = "https://api.perplexity.ai"
	defaultModel   = "sonar-pro"
)

// Client is the insights API client
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates an insights client. baseURL and model default to
// the Perplexity research endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *Client) chat(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// MarketReport produces a bestseller analysis for a sales period and
// category. An empty or catch-all category widens the research to the
// whole market.
func (c *Client) MarketReport(ctx context.Context, period, category string) (string, error) {
	topic := "general market bestsellers"
	focus := "Search the entire Polish e-commerce market."
	if !isCatchAll(category) {
		topic = "Category: " + category
		focus = "Focus exclusively on the niche: " + category + "."
	}

	today := time.Now().Format("02.01.2006")
	prompt := fmt.Sprintf(`You are an e-commerce expert. Today is %s.
Analyzed period: %s.
CATEGORY: %s.
%s

FORMATTING RULES (IMPORTANT):
1. Use ONLY Discord Markdown.
2. NEVER use HTML tags such as <br>, <b>, <table>.
3. Use bullet lists instead of tables.

REPORT STRUCTURE:
For each of 5-6 products write:
**[PRODUCT NAME]**
• Price: [range]
• Sales window: [dates]
• Potential: [one line on why it is worth selling]

Finish with a section: WHAT TO AVOID.`, today, period, topic, focus)

	out, err := c.chat(ctx,
		"You are an e-commerce analyst. Be concrete, avoid HTML, use bullet lists.",
		prompt, 0.2, 2000)
	if err != nil {
		return "", err
	}
	return CleanText(out), nil
}

// SafetyNotice drafts a GPSR-style product safety text: official
// register, sections for safety, children and disposal.
func (c *Client) SafetyNotice(ctx context.Context, product string) (string, error) {
	prompt := fmt.Sprintf("Write a GPSR compliance text for: %s. "+
		"Official register, sections: Safety, Children, Disposal. Plain text without HTML.", product)

	out, err := c.chat(ctx, "You draft product compliance texts for marketplace listings.", prompt, 0.3, 4000)
	if err != nil {
		return "", err
	}
	return CleanText(out), nil
}

func isCatchAll(category string) bool {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "", "wszystko", "all", "ogólne", "top", "hity":
		return true
	}
	return false
}

// CleanText strips the HTML tags models sneak in despite instructions
// and normalizes them to Discord markdown.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"<br>", "\n",
		"<br/>", "\n",
		"<br />", "\n",
		"<b>", "**",
		"</b>", "**",
	)
	return strings.TrimSpace(replacer.Replace(text))
}
