package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	"github.com/albaraka/albaraka-digital-backend/internal/core/services"
)

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func TestValidateDocument_ApproveVerdict(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatReply(`{"status": "APPROVE", "reasoning": "invoice matches amount", "confidence": 0.93}`)))
	}))
	defer server.Close()

	v := services.NewAIDocumentValidator(server.URL, "test-key", "test-model", 5*time.Second)

	result, err := v.ValidateDocument(context.Background(), []byte("fake image"), "image/png", "Operation Type: WITHDRAWAL, Amount: 15000, Description: rent")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationApprove, result.Status)
	assert.Equal(t, "invoice matches amount", result.Reasoning)
	assert.InDelta(t, 0.93, result.Confidence, 1e-9)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestValidateDocument_FencedJSONVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := "```json\n{\"status\": \"REJECT\", \"reasoning\": \"document unrelated\", \"confidence\": 0.88}\n```"
		_, _ = w.Write([]byte(chatReply(content)))
	}))
	defer server.Close()

	v := services.NewAIDocumentValidator(server.URL, "", "test-model", 5*time.Second)

	result, err := v.ValidateDocument(context.Background(), []byte("doc"), "application/pdf", "details")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationReject, result.Status)
}

func TestValidateDocument_UnparseableVerdictDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatReply("I think this looks fine, approved!")))
	}))
	defer server.Close()

	v := services.NewAIDocumentValidator(server.URL, "", "test-model", 5*time.Second)

	result, err := v.ValidateDocument(context.Background(), []byte("doc"), "image/jpeg", "details")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationNeedHumanReview, result.Status)
	assert.Zero(t, result.Confidence)
}

func TestValidateDocument_UnknownStatusDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatReply(`{"status": "MAYBE", "reasoning": "unsure", "confidence": 0.5}`)))
	}))
	defer server.Close()

	v := services.NewAIDocumentValidator(server.URL, "", "test-model", 5*time.Second)

	result, err := v.ValidateDocument(context.Background(), []byte("doc"), "image/jpeg", "details")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationNeedHumanReview, result.Status)
}

func TestValidateDocument_ServerErrorDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	v := services.NewAIDocumentValidator(server.URL, "", "test-model", 5*time.Second)

	result, err := v.ValidateDocument(context.Background(), []byte("doc"), "image/png", "details")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationNeedHumanReview, result.Status)
}

func TestValidateDocument_UnreachableEndpointDegrades(t *testing.T) {
	v := services.NewAIDocumentValidator("http://127.0.0.1:1", "", "test-model", time.Second)

	result, err := v.ValidateDocument(context.Background(), []byte("doc"), "image/png", "details")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationNeedHumanReview, result.Status)
}

func TestValidateDocument_NotConfiguredDegrades(t *testing.T) {
	v := services.NewAIDocumentValidator("", "", "test-model", time.Second)

	result, err := v.ValidateDocument(context.Background(), []byte("doc"), "image/png", "details")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationNeedHumanReview, result.Status)
}
