package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSendTextSuccess(t *testing.T) {
	t.Parallel()

	var gotBody sendTextRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/message/sendText/otp-1" {
			t.Errorf("path = %s, want /message/sendText/otp-1", r.URL.Path)
		}
		if r.Header.Get("apikey") != "K" {
			t.Errorf("apikey header = %q, want %q", r.Header.Get("apikey"), "K")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		_, _ = w.Write([]byte(`{"key":{"id":"abc"}}`))
	}))
	defer server.Close()

	client := NewClient(2 * time.Second)

	result, err := client.SendText(context.Background(), server.URL, "K", "otp-1", "5511999999999", "hi")
	if err != nil {
		t.Fatalf("SendText() error = %v", err)
	}

	if result.MessageID != "abc" {
		t.Fatalf("MessageID = %q, want %q", result.MessageID, "abc")
	}
	if result.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want %d", result.StatusCode, http.StatusOK)
	}
	if gotBody.Number != "5511999999999" {
		t.Fatalf("request.number = %q, want %q", gotBody.Number, "5511999999999")
	}
	if gotBody.Text != "hi" {
		t.Fatalf("request.text = %q, want %q", gotBody.Text, "hi")
	}
}

func TestSendTextMessageIDAliases(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		body string
		want string
	}{
		{name: "nested key id", body: `{"key":{"id":"k-1"}}`, want: "k-1"},
		{name: "messageId field", body: `{"messageId":"m-1"}`, want: "m-1"},
		{name: "plain id field", body: `{"id":"i-1"}`, want: "i-1"},
		{name: "no identifier", body: `{"ok":true}`, want: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := extractMessageID([]byte(tc.body)); got != tc.want {
				t.Fatalf("extractMessageID(%s) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

func TestSendTextErrorClassification(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name             string
		statusCode       int
		body             string
		wantMessage      string
		wantInstanceErr  bool
		wantTransportErr bool
	}{
		{
			name:            "404 is an instance error regardless of body",
			statusCode:      http.StatusNotFound,
			body:            `{"message":"route missing"}`,
			wantMessage:     "route missing",
			wantInstanceErr: true,
		},
		{
			name:            "instance keyword in message",
			statusCode:      http.StatusBadRequest,
			body:            `{"error":"Nenhuma instância encontrada"}`,
			wantMessage:     "Nenhuma instância encontrada",
			wantInstanceErr: true,
		},
		{
			name:            "plain rejection is not an instance error",
			statusCode:      http.StatusBadRequest,
			body:            `{"message":"number is blocked"}`,
			wantMessage:     "number is blocked",
			wantInstanceErr: false,
		},
		{
			name:            "message array shape",
			statusCode:      http.StatusBadRequest,
			body:            `{"message":["text too long","try again"]}`,
			wantMessage:     "text too long; try again",
			wantInstanceErr: false,
		},
		{
			name:            "non-json body falls back to raw",
			statusCode:      http.StatusBadGateway,
			body:            "upstream exploded",
			wantMessage:     "upstream exploded",
			wantInstanceErr: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(2 * time.Second)

			_, err := client.SendText(context.Background(), server.URL, "K", "otp-1", "5511999999999", "hi")
			if err == nil {
				t.Fatal("expected error")
			}

			var providerErr *Error
			if !errors.As(err, &providerErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if providerErr.StatusCode != tc.statusCode {
				t.Fatalf("StatusCode = %d, want %d", providerErr.StatusCode, tc.statusCode)
			}
			if providerErr.Message != tc.wantMessage {
				t.Fatalf("Message = %q, want %q", providerErr.Message, tc.wantMessage)
			}
			if got := IsInstanceError(err); got != tc.wantInstanceErr {
				t.Fatalf("IsInstanceError() = %v, want %v", got, tc.wantInstanceErr)
			}
			if IsTransportError(err) {
				t.Fatal("IsTransportError() = true for an HTTP-level failure")
			}
		})
	}
}

func TestSendTextTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(time.Second)

	_, err := client.SendText(context.Background(), server.URL, "K", "otp-1", "5511999999999", "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTransportError(err) {
		t.Fatalf("IsTransportError() = false, want true for %v", err)
	}
	if IsInstanceError(err) {
		t.Fatal("IsInstanceError() = true for a transport failure")
	}
}
