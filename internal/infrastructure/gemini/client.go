package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
	"golang.org/x/time/rate"
)

// Client calls the Gemini generateContent API to classify visible skin
// concerns in a facial image. It implements domain.ConcernClassifier.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Gemini API client.
func NewClient(apiKey, baseURL, model string) *Client {
	// Free tier allows 15 requests per minute; 0.25/sec keeps us under it.
	limiter := rate.NewLimiter(rate.Limit(0.25), 2)

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug enables request/response logging.
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// Request/response shapes for the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeImage sends the image with a prompt listing the known concerns and
// decodes the structured text reply into an AnalysisResult. An unparseable
// reply degrades to an empty result; a failed call surfaces as
// ErrClassifierUnavailable.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, mimeType string, knownConcerns []string) (*domain.AnalysisResult, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: buildPrompt(knownConcerns)},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[GEMINI] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrClassifierUnavailable, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	text := responseText(genResp)
	if c.debug {
		log.Printf("[GEMINI] Analysis reply: %q", text)
	}

	return parseAnalysis(text, knownConcerns), nil
}

// buildPrompt asks for the structured reply format parseAnalysis expects.
func buildPrompt(knownConcerns []string) string {
	return fmt.Sprintf(`Analyze this facial image and identify skin concerns from the following list: %s.
Provide a structured analysis in the following format:
Skin Type: [oily, dry, combination or normal]

Primary Concerns:
- [List main visible skin concerns]

Secondary Concerns:
- [List potential or less visible concerns]

Do not change the font.`, strings.Join(knownConcerns, ", "))
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// parseAnalysis extracts the skin type line and the bulleted concern names
// from the model's text reply. Only concerns from the known list are kept,
// matched case-insensitively against each bullet; each concern is reported
// once even when it shows up under both Primary and Secondary.
func parseAnalysis(text string, knownConcerns []string) *domain.AnalysisResult {
	result := &domain.AnalysisResult{}
	seen := make(map[string]bool, len(knownConcerns))

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if after, ok := strings.CutPrefix(line, "Skin Type:"); ok {
			result.SkinType = strings.ToLower(strings.Trim(strings.TrimSpace(after), "[]"))
			continue
		}

		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
			continue
		}
		entry := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "-* ")))
		if entry == "" || strings.HasPrefix(entry, "none") {
			continue
		}

		for _, name := range knownConcerns {
			if seen[name] {
				continue
			}
			if strings.Contains(entry, strings.ToLower(name)) {
				seen[name] = true
				result.Concerns = append(result.Concerns, domain.ConcernRef{Name: name})
			}
		}
	}

	return result
}
