package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
)

// instanceDescriptor covers the field aliases seen across provider versions
// for a single inventory entry.
type instanceDescriptor struct {
	InstanceName     string `json:"instanceName"`
	Name             string `json:"name"`
	State            string `json:"state"`
	ConnectionStatus string `json:"connectionStatus"`
	Status           string `json:"status"`
	OwnerJid         string `json:"ownerJid"`
}

// instanceEnvelope covers entries that nest the descriptor under "instance".
type instanceEnvelope struct {
	Instance *instanceDescriptor `json:"instance"`
}

// FetchInstances lists all instances on the account. The provider response
// may be a JSON array or a map keyed by arbitrary strings; both are
// normalized into a flat list. Malformed entries are skipped and any HTTP or
// transport failure yields an empty list, because callers use the inventory
// as a best-effort fallback source only.
func (c *Client) FetchInstances(ctx context.Context, endpoint, credential string) []domain.InstanceInfo {
	if c == nil || c.http == nil {
		return nil
	}

	response, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", credential).
		Get(providerURL(endpoint, "instance", "fetchInstances"))
	if err != nil || response == nil {
		return nil
	}

	statusCode := response.StatusCode()
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return nil
	}

	return decodeInstanceList(response.Body())
}

// decodeInstanceList accepts either an array of instance entries or a map of
// entries. Map keys are sorted so the two shapes normalize identically.
func decodeInstanceList(body []byte) []domain.InstanceInfo {
	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(body, &keyed); err != nil {
			return nil
		}

		keys := make([]string, 0, len(keyed))
		for key := range keyed {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		entries = make([]json.RawMessage, 0, len(keyed))
		for _, key := range keys {
			entries = append(entries, keyed[key])
		}
	}

	instances := make([]domain.InstanceInfo, 0, len(entries))
	for _, entry := range entries {
		if info, ok := decodeInstanceEntry(entry); ok {
			instances = append(instances, info)
		}
	}
	return instances
}

func decodeInstanceEntry(entry json.RawMessage) (domain.InstanceInfo, bool) {
	descriptor := instanceDescriptor{}

	var envelope instanceEnvelope
	if err := json.Unmarshal(entry, &envelope); err == nil && envelope.Instance != nil {
		descriptor = *envelope.Instance
	} else if err := json.Unmarshal(entry, &descriptor); err != nil {
		return domain.InstanceInfo{}, false
	}

	name := firstNonEmpty(descriptor.InstanceName, descriptor.Name)
	if name == "" {
		return domain.InstanceInfo{}, false
	}

	return domain.InstanceInfo{
		Name:          name,
		State:         firstNonEmpty(descriptor.State, descriptor.ConnectionStatus, descriptor.Status),
		OwnerIdentity: descriptor.OwnerJid,
	}, true
}
