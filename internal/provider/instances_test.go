package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
)

func TestFetchInstancesArrayAndMapShapesNormalizeIdentically(t *testing.T) {
	t.Parallel()

	arrayBody := `[
		{"instance":{"instanceName":"barber-main","state":"open","ownerJid":"5511911110000@s.whatsapp.net"}},
		{"instance":{"instanceName":"otp-1","state":"close"}}
	]`
	mapBody := `{
		"a": {"instance":{"instanceName":"barber-main","state":"open","ownerJid":"5511911110000@s.whatsapp.net"}},
		"b": {"instance":{"instanceName":"otp-1","state":"close"}}
	}`

	want := []domain.InstanceInfo{
		{Name: "barber-main", State: "open", OwnerIdentity: "5511911110000@s.whatsapp.net"},
		{Name: "otp-1", State: "close"},
	}

	for name, body := range map[string]string{"array": arrayBody, "map": mapBody} {
		got := decodeInstanceList([]byte(body))
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s shape normalized to %+v, want %+v", name, got, want)
		}
	}
}

func TestFetchInstancesFlatEntriesAndAliases(t *testing.T) {
	t.Parallel()

	body := `[
		{"name":"legacy","connectionStatus":"open"},
		{"instanceName":"status-alias","status":"connecting"},
		{"unrelated":true},
		"garbage"
	]`

	got := decodeInstanceList([]byte(body))
	want := []domain.InstanceInfo{
		{Name: "legacy", State: "open"},
		{Name: "status-alias", State: "connecting"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("decodeInstanceList() = %+v, want %+v", got, want)
	}
}

func TestFetchInstancesRequestAndFailureHandling(t *testing.T) {
	t.Parallel()

	t.Run("sends credential header", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/instance/fetchInstances" {
				t.Errorf("path = %s, want /instance/fetchInstances", r.URL.Path)
			}
			if r.Header.Get("apikey") != "secret-key" {
				t.Errorf("apikey header = %q", r.Header.Get("apikey"))
			}
			_, _ = w.Write([]byte(`[{"instance":{"instanceName":"barber-main","state":"open"}}]`))
		}))
		defer server.Close()

		client := NewClient(2 * time.Second)

		got := client.FetchInstances(context.Background(), server.URL, "secret-key")
		if len(got) != 1 || got[0].Name != "barber-main" {
			t.Fatalf("FetchInstances() = %+v", got)
		}
	})

	t.Run("http failure yields empty list", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(2 * time.Second)

		if got := client.FetchInstances(context.Background(), server.URL, "k"); len(got) != 0 {
			t.Fatalf("FetchInstances() = %+v, want empty", got)
		}
	})

	t.Run("transport failure yields empty list", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(time.Second)

		if got := client.FetchInstances(context.Background(), server.URL, "k"); len(got) != 0 {
			t.Fatalf("FetchInstances() = %+v, want empty", got)
		}
	})
}
