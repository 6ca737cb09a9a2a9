package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// sendTextResponse covers the message identifier aliases seen across
// provider versions.
type sendTextResponse struct {
	MessageID string `json:"messageId"`
	ID        string `json:"id"`
	Key       struct {
		ID string `json:"id"`
	} `json:"key"`
}

type sendErrorResponse struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
}

// SendText posts a single text message through the named instance. Non-2xx
// responses and transport failures come back as *Error; classification into
// instance-class failures is the caller's job via IsInstanceError.
func (c *Client) SendText(ctx context.Context, endpoint, credential, instance, number, text string) (*SendResult, error) {
	if c == nil || c.http == nil {
		return nil, &Error{Message: "provider client is not initialized"}
	}

	response, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("apikey", credential).
		SetBody(sendTextRequest{Number: number, Text: text}).
		Post(providerURL(endpoint, "message", "sendText", instance))
	if err != nil {
		return nil, &Error{Message: "provider request failed", Cause: err}
	}
	if response == nil {
		return nil, &Error{Message: "provider returned empty response"}
	}

	statusCode := response.StatusCode()
	body := strings.TrimSpace(response.String())

	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return &SendResult{
			StatusCode: statusCode,
			Body:       body,
			MessageID:  extractMessageID(response.Body()),
		}, nil
	}

	return nil, &Error{
		StatusCode: statusCode,
		Message:    extractErrorMessage(response.Body(), body),
		Body:       body,
	}
}

func extractMessageID(body []byte) string {
	var parsed sendTextResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return firstNonEmpty(parsed.Key.ID, parsed.MessageID, parsed.ID)
}

// extractErrorMessage pulls a human-readable error out of a provider failure
// body, trying "message", then "error", then the raw body.
func extractErrorMessage(body []byte, raw string) string {
	var parsed sendErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg := decodeErrorField(parsed.Message); msg != "" {
			return msg
		}
		if msg := decodeErrorField(parsed.Error); msg != "" {
			return msg
		}
	}
	return raw
}

// decodeErrorField accepts the string and string-array shapes the provider
// uses for error fields.
func decodeErrorField(field json.RawMessage) string {
	if len(field) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(field, &single); err == nil {
		return strings.TrimSpace(single)
	}

	var many []string
	if err := json.Unmarshal(field, &many); err == nil {
		return strings.TrimSpace(strings.Join(many, "; "))
	}

	return ""
}
