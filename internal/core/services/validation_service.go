package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
)

const validationPrompt = `You are a banking compliance assistant. You are shown a supporting document uploaded for a pending banking operation. Decide whether the document justifies the operation.

Operation details: %s

Respond with a JSON object only, no other text:
{"status": "APPROVE" | "REJECT" | "NEED_HUMAN_REVIEW", "reasoning": "<short explanation>", "confidence": <0.0-1.0>}`

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// aiDocumentValidator calls an OpenAI-compatible chat completion endpoint to
// judge a document against an operation summary.
type aiDocumentValidator struct {
	client   *http.Client
	endpoint string
	apiKey   string
	model    string
}

// NewAIDocumentValidator creates a document validator backed by an
// OpenAI-compatible API.
func NewAIDocumentValidator(endpoint string, apiKey string, model string, timeout time.Duration) portssvc.DocumentValidatorSvc {
	return &aiDocumentValidator{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
	}
}

// Ensure aiDocumentValidator implements the portssvc.DocumentValidatorSvc interface
var _ portssvc.DocumentValidatorSvc = (*aiDocumentValidator)(nil)

// needHumanReview is the degraded verdict used whenever the collaborator
// cannot produce a trustworthy answer.
func needHumanReview(reason string) domain.ValidationResult {
	return domain.ValidationResult{
		Status:     domain.ValidationNeedHumanReview,
		Reasoning:  reason,
		Confidence: 0,
	}
}

// ValidateDocument sends the document and operation summary to the model and
// parses its verdict. Every transport, API and parse failure degrades to
// NEED_HUMAN_REVIEW so a flaky collaborator can never finalize or break an
// operation.
func (v *aiDocumentValidator) ValidateDocument(ctx context.Context, document []byte, contentType string, operationDetails string) (domain.ValidationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if v.endpoint == "" {
		return needHumanReview("document validation is not configured"), nil
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(document))
	reqBody := chatCompletionRequest{
		Model: v.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []chatContent{
					{Type: "text", Text: fmt.Sprintf(validationPrompt, operationDetails)},
					{Type: "image_url", ImageURL: &chatImageURL{URL: dataURL}},
				},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return needHumanReview("failed to build validation request"), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(payload))
	if err != nil {
		return needHumanReview("failed to build validation request"), nil
	}
	req.Header.Set("Content-Type", "application/json")
	if v.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		logger.Warn("Validation request failed", slog.String("error", err.Error()))
		return needHumanReview("validation service unreachable"), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return needHumanReview("failed to read validation response"), nil
	}
	if resp.StatusCode != http.StatusOK {
		logger.Warn("Validation service returned non-OK status",
			slog.Int("status_code", resp.StatusCode),
		)
		return needHumanReview(fmt.Sprintf("validation service returned status %d", resp.StatusCode)), nil
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil || len(completion.Choices) == 0 {
		return needHumanReview("unexpected validation response shape"), nil
	}

	verdict, ok := parseVerdict(completion.Choices[0].Message.Content)
	if !ok {
		logger.Warn("Validation verdict unparseable",
			slog.String("content", completion.Choices[0].Message.Content),
		)
		return needHumanReview("validation verdict could not be parsed"), nil
	}
	return verdict, nil
}

// parseVerdict extracts the JSON verdict from the model's reply. Models often
// wrap JSON in markdown code fences, so those are stripped first.
func parseVerdict(content string) (domain.ValidationResult, bool) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var result domain.ValidationResult
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return domain.ValidationResult{}, false
	}

	switch result.Status {
	case domain.ValidationApprove, domain.ValidationReject, domain.ValidationNeedHumanReview:
		return result, true
	}
	return domain.ValidationResult{}, false
}
