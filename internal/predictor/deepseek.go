package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avolkov/footpred/internal/pkg/config"
	"github.com/avolkov/footpred/internal/pkg/models"
)

// DeepSeekClient cross-checks a rule verdict against the DeepSeek chat API.
// Any failure (network, timeout, unexpected payload) means "score
// unavailable" and must never fail the batch; callers log and move on.
type DeepSeekClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewDeepSeekClient(cfg *config.DeepSeekConfig) *DeepSeekClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DeepSeekClient{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

const systemPrompt = "You are a sport prediction expert. Always respond with a single digit: " +
	"1 for Team A win, 3 for Team B win, 0 for draw."

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CrossCheck asks the model for a verdict under the named strategy's rules.
func (c *DeepSeekClient) CrossCheck(ctx context.Context, m *models.Match, strategy string) (models.Outcome, error) {
	prompt, err := buildPrompt(m, strategy)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(chatRequest{
		Model: "deepseek-chat",
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   10,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("deepseek returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode deepseek response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("deepseek response has no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	for _, r := range content {
		switch r {
		case '1':
			return models.OutcomeHomeWin, nil
		case '3':
			return models.OutcomeAwayWin, nil
		case '0':
			return models.OutcomeDraw, nil
		}
	}
	return "", fmt.Errorf("unexpected deepseek response format: %q", content)
}

func buildPrompt(m *models.Match, strategy string) (string, error) {
	teamA, teamB := m.TeamA.Name, m.TeamB.Name
	switch strategy {
	case StrategyBaseline:
		return fmt.Sprintf(`Match: %s vs %s
Probabilities: %s %.1f%%, %s %.1f%%
Draw probability: %.1f%%

Rules:
- If %s probability is significantly higher (difference > 15%%) -> 1
- If %s probability is significantly higher (difference > 15%%) -> 3
- If probabilities are close (difference <= 15%%) -> 0

Output: single digit (1, 3, or 0)`,
			teamA, teamB,
			teamA, m.ProbA*100, teamB, m.ProbB*100, m.DrawProb*100,
			teamA, teamB), nil
	case StrategyProfitable:
		return fmt.Sprintf(`Match: %s vs %s
Actual Probabilities: %s %.1f%%, %s %.1f%%
Odds: %s %.2f, %s %.2f
Implied Probabilities from Odds: %s %.2f%%, %s %.2f%%

Rules:
- If actual probability > implied probability by at least 10%% -> that team is undervalued
- If %s is undervalued -> 1
- If %s is undervalued -> 3
- If neither team is significantly undervalued -> 0

Output: single digit (1, 3, or 0)`,
			teamA, teamB,
			teamA, m.ProbA*100, teamB, m.ProbB*100,
			teamA, m.OddsA, teamB, m.OddsB,
			teamA, m.ImpliedProbA()*100, teamB, m.ImpliedProbB()*100,
			teamA, teamB), nil
	case StrategyBalanced:
		return fmt.Sprintf(`Match: %s vs %s
Actual Probabilities: %s %.1f%%, %s %.1f%%
Odds: %s %.2f, %s %.2f
Implied Probabilities: %s %.2f%%, %s %.2f%%

Rules:
- Combine actual probability and odds alignment
- If %s has high actual probability (>45%%) AND good odds value -> 1
- If %s has high actual probability (>45%%) AND good odds value -> 3
- If probabilities and odds don't align clearly -> 0

Output: single digit (1, 3, or 0)`,
			teamA, teamB,
			teamA, m.ProbA*100, teamB, m.ProbB*100,
			teamA, m.OddsA, teamB, m.OddsB,
			teamA, m.ImpliedProbA()*100, teamB, m.ImpliedProbB()*100,
			teamA, teamB), nil
	default:
		return "", fmt.Errorf("unknown strategy: %s", strategy)
	}
}
