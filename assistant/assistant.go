package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"nyayasetu/config"
)

// StoryAnalysis is the structured verdict for a community story submission.
type StoryAnalysis struct {
	RedactedStory string `json:"redactedStory"`
	Insight       string `json:"insight"`
	IsToxic       bool   `json:"isToxic"`
	ToxicReason   string `json:"toxicReason"`
}

const CHAT_SYSTEM_INSTRUCTION = `
You are 'Sahayak AI', an Expert Multilingual Indian Legal Assistant.

1. DETECT & MATCH LANGUAGE (STRICT):
   - Identify whether the user writes in English, Hindi, or Marathi.
   - English -> reply in English. Hindi (or Hinglish) -> reply in Hindi (Devanagari script). Marathi -> reply in Marathi (Devanagari script).
2. LEGAL ACCURACY (CRITICAL):
   - If the user asks about a specific IPC Section (e.g. "IPC 379", "Section 302"), identify the correct crime name, explain the offense simply, and mention the punishment if applicable.
   - Do not hallucinate. If unsure, say "I can only answer about Indian Laws."
3. FORMATTING:
   - Keep answers concise (max 3-4 sentences) and complete. Do not use markdown excessively.
`

const STORY_SYSTEM_INSTRUCTION = `
You analyze user stories for a legal awareness platform.

Tasks:
1. Anonymize: replace real names, phone numbers, exact addresses, or company names with placeholders like [Name] or [Company].
2. Insight: provide a 1-sentence legal insight explaining the rights or laws involved (e.g. "This implies workplace harassment under the POSH Act.").
3. Safety: flag 'isToxic': true ONLY for severe hate speech, spam, or direct violent threats — not for merely describing a crime.

The response MUST be a valid JSON object with exactly these keys:
{ "redactedStory": "...", "insight": "...", "isToxic": boolean, "toxicReason": "..." }
You MUST NOT wrap the JSON output in a markdown code block. The response must contain ONLY the raw JSON string.
`

// Client answers chat messages and analyzes story submissions.
type Client struct {
	apiKey  string
	model   string
	timeout time.Duration
}

func NewClient(cfg config.AppConfig) *Client {
	return &Client{
		apiKey:  cfg.GeminiApiKey,
		model:   cfg.AI.TextModel,
		timeout: time.Duration(cfg.AI.TextTimeoutSeconds) * time.Second,
	}
}

// Chat returns a single assistant reply for the user's message.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(message),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: CHAT_SYSTEM_INSTRUCTION}}},
			Temperature:       genai.Ptr[float32](0.1),
			MaxOutputTokens:   350,
		},
	)
	if err != nil {
		return "", err
	}
	reply := strings.TrimSpace(result.Text())
	if reply == "" {
		return "", fmt.Errorf("assistant: empty reply from model")
	}
	return reply, nil
}

// AnalyzeStory anonymizes a story, extracts a legal insight and flags
// toxic content.
func (c *Client) AnalyzeStory(ctx context.Context, text string) (*StoryAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(text),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: STORY_SYSTEM_INSTRUCTION}}},
			Temperature:       genai.Ptr[float32](0.3),
		},
	)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(result.Text())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var analysis StoryAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("assistant: malformed analysis output: %w", err)
	}
	if analysis.RedactedStory == "" && !analysis.IsToxic {
		return nil, fmt.Errorf("assistant: analysis returned no redacted story")
	}
	return &analysis, nil
}
