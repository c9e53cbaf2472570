package synthesizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"nyayasetu/config"
	"nyayasetu/feeder"
)

// CaseStudy is the structured daily law produced from the day's headlines.
type CaseStudy struct {
	Title        string `json:"title"`
	Highlights   string `json:"highlights"`
	Summary      string `json:"summary"`
	WhyItMatters string `json:"whyItMatters"`
	SourceLink   string `json:"sourceLink"`
}

const SYSTEM_INSTRUCTION = `
You are a Legal Expert for an educational app. Your goal is to teach citizens about Indian Laws using real-world news.
You will be given a numbered list of news headlines, each with its link.

INSTRUCTIONS:
1. Select: Pick the ONE story that best illustrates a specific crime, a court verdict, or a violation of rights.
   - PRIORITIZE: Court judgments, Police FIRs, Consumer Rights issues, or Crimes (Murder, Fraud, Negligence).
   - IGNORE: Cricket/Sports (unless court-related), Celebrity gossip, or Political party statements.
2. Analyze:
   - Identify the specific Indian Laws, IPC Sections, or Acts that apply to this case (even if the headline does not explicitly name them, YOU must infer them based on the crime).
   - Identify the Mistake/Violation: who broke the law and how.
3. Respond with a valid JSON object with exactly these keys:
   - "title": a catchy legal title (e.g. "Criminal Negligence in Noida Techie Death" instead of just "Techie Dies").
   - "highlights": the specific laws involved (e.g. "Section 304A IPC (Negligence), Section 34 IPC").
   - "summary": a brief description of the incident focusing on the facts.
   - "whyItMatters": the legal lesson — what mistake was made and what the law says about it.
   - "sourceLink": the link of the selected story, copied verbatim from the list.
You MUST NOT wrap the JSON output in a markdown code block (e.g. ` + "```json ... ```" + `). The response must contain ONLY the raw JSON string.
`

// Client talks to the text-generation service.
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

// Model returns the configured model name, for attribution on records.
func (c *Client) Model() string { return c.model }

// Synthesize sends the candidate headlines to the model and parses one
// structured case study. The returned sourceLink must be one of the
// candidate links; anything else fails the call. There is no retry here —
// each fresh retrieval attempt is the retry.
func (c *Client) Synthesize(ctx context.Context, candidates []feeder.NewsItem) (*CaseStudy, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("synthesizer: empty candidate list")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Here are the latest news headlines from India:\n")
	for i, item := range candidates {
		fmt.Fprintf(&b, "%d. %s (Link: %s)\n", i+1, item.Title, item.Link)
	}

	result, err := client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(b.String()),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
			Temperature:       genai.Ptr[float32](0.4),
		},
	)
	if err != nil {
		return nil, err
	}

	raw := stripCodeFence(result.Text())
	var cs CaseStudy
	if err := json.Unmarshal([]byte(raw), &cs); err != nil {
		return nil, fmt.Errorf("synthesizer: malformed model output: %w", err)
	}
	if cs.Title == "" || cs.Summary == "" {
		return nil, fmt.Errorf("synthesizer: model output missing required fields")
	}

	found := false
	for _, item := range candidates {
		if item.Link == cs.SourceLink {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("synthesizer: source link %q is not among the supplied candidates", cs.SourceLink)
	}

	return &cs, nil
}

// stripCodeFence tolerates models that fence JSON despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
