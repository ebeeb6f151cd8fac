// Package salary asks an OpenAI chat model for a rough annual salary
// figure for a listing. Best effort: any failure degrades to a zero
// estimate rather than an error the UI has to handle.
package salary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	completionsURL = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"

	// Low temperature and a tiny completion: we only want a number.
	temperature = 0.1
	maxTokens   = 10
)

// Estimate is one salary evaluation result. Fee is the agency cut.
type Estimate struct {
	Salary   float64 `json:"salary"`
	Fee      float64 `json:"fee"`
	Currency string  `json:"currency"`
}

type Estimator struct {
	apiKey     string
	model      string
	feePercent float64
	baseURL    string
	hc         *http.Client
}

// New builds an estimator. model may be empty; feePercent is the
// agency fee in percent (typically 25).
func New(apiKey, model string, feePercent float64) *Estimator {
	if model == "" {
		model = defaultModel
	}
	return &Estimator{
		apiKey:     apiKey,
		model:      model,
		feePercent: feePercent,
		baseURL:    completionsURL,
		hc:         &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Evaluate asks for an annual EUR estimate for the given title and
// company in Paris.
func (e *Estimator) Evaluate(ctx context.Context, title, company string) (Estimate, error) {
	prompt := fmt.Sprintf(
		"Je suis en France. Estime le salaire annuel en euros pour un poste de '%s' chez '%s' à Paris, France. Donne seulement le montant numérique sans texte. Par exemple: 45000",
		title, company,
	)

	reqBody := chatRequest{
		Model:       e.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return zero(), fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return zero(), fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.hc.Do(req)
	if err != nil {
		return zero(), fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero(), fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return zero(), fmt.Errorf("openai API returned status %d: %s", resp.StatusCode, string(body))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return zero(), fmt.Errorf("decode response: %w", err)
	}
	if cr.Error != nil {
		return zero(), fmt.Errorf("API error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return zero(), fmt.Errorf("no choices returned")
	}

	sal, err := ParseAmount(cr.Choices[0].Message.Content)
	if err != nil {
		return zero(), err
	}

	return Estimate{
		Salary:   sal,
		Fee:      sal * e.feePercent / 100,
		Currency: "EUR",
	}, nil
}

// ParseAmount strips everything but digits and the decimal point from
// a model reply and parses what's left.
func ParseAmount(s string) (float64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric salary in reply %q", strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse salary %q: %w", cleaned, err)
	}
	return v, nil
}

func zero() Estimate {
	return Estimate{Currency: "EUR"}
}
