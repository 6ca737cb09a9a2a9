package provider

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
)

// connectionStateResponse covers the two shapes the provider returns for the
// connection-state query: fields at the top level or nested under "instance".
type connectionStateResponse struct {
	State    string `json:"state"`
	OwnerJid string `json:"ownerJid"`
	Instance struct {
		State    string `json:"state"`
		OwnerJid string `json:"ownerJid"`
	} `json:"instance"`
}

// ConnectionState probes one instance and derives a coarse health verdict.
// It never returns an error: transport failures and unexpected responses
// degrade to a disconnected verdict.
func (c *Client) ConnectionState(ctx context.Context, endpoint, credential, instance string) domain.HealthVerdict {
	if c == nil || c.http == nil {
		return domain.HealthVerdict{State: domain.StateError}
	}

	response, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", credential).
		Get(providerURL(endpoint, "instance", "connectionState", instance))
	if err != nil || response == nil {
		return domain.HealthVerdict{State: domain.StateError}
	}

	statusCode := response.StatusCode()
	if statusCode == http.StatusNotFound {
		return domain.HealthVerdict{State: domain.StateNotFound}
	}
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return domain.HealthVerdict{State: domain.StateError}
	}

	var parsed connectionStateResponse
	if err := json.Unmarshal(response.Body(), &parsed); err != nil {
		return domain.HealthVerdict{State: domain.StateError}
	}

	state := firstNonEmpty(parsed.State, parsed.Instance.State)
	ownerIdentity := firstNonEmpty(parsed.OwnerJid, parsed.Instance.OwnerJid)

	return domain.HealthVerdict{
		Connected:     state == domain.StateOpen,
		State:         state,
		OwnerIdentity: ownerIdentity,
		OwnerPhone:    domain.OwnerPhoneFromIdentity(ownerIdentity),
	}
}
