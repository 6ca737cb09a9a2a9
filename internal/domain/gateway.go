package domain

import "strings"

// ProviderName identifies the outbound messaging provider backing the gateway.
const ProviderName = "evolution"

// Instance connection states as reported by the provider, plus the
// synthetic states the prober derives for unreachable instances.
const (
	StateOpen       = "open"
	StateConnecting = "connecting"
	StateNotFound   = "not_found"
	StateError      = "error"
)

// SourceTier tells which configuration layer produced a resolved config.
type SourceTier string

const (
	SourceTierTenant SourceTier = "tenant"
	SourceTierGlobal SourceTier = "global"
)

func (t SourceTier) String() string { return string(t) }

// ResolvedConfig is the triple needed to talk to one provider instance.
// It is reconstructed per call and never persisted.
type ResolvedConfig struct {
	EndpointURL   string
	CredentialKey string
	InstanceName  string
	SourceTier    SourceTier
	TenantID      string
}

// Complete reports whether all three connection fields are populated.
// A partial config is treated as absent by the resolver.
func (c *ResolvedConfig) Complete() bool {
	if c == nil {
		return false
	}
	return c.EndpointURL != "" && c.CredentialKey != "" && c.InstanceName != ""
}

// HealthVerdict is the live connection status of a single instance.
type HealthVerdict struct {
	Connected     bool
	State         string
	OwnerIdentity string
	OwnerPhone    string
}

// InstanceInfo is one entry of the provider's instance inventory.
type InstanceInfo struct {
	Name          string
	State         string
	OwnerIdentity string
}

func (i InstanceInfo) IsOpen() bool { return i.State == StateOpen }

// ErrorClass categorizes a failed send.
type ErrorClass string

const (
	// ErrorClassInstance means the provider reported the named instance as
	// missing or invalid. This is the only class eligible for fallback.
	ErrorClassInstance ErrorClass = "instance-error"
	// ErrorClassSendFailed means the provider was reached but rejected the send.
	ErrorClassSendFailed ErrorClass = "send-failed"
	// ErrorClassException means the provider could not be reached at all.
	ErrorClassException ErrorClass = "exception"
	// ErrorClassNoConfig means nothing was resolvable and the provider was
	// never contacted.
	ErrorClassNoConfig ErrorClass = "no-config"
)

func (e ErrorClass) String() string { return string(e) }

// SendOutcome is the result of a single send attempt (or of a short-circuited
// attempt that never reached the provider).
type SendOutcome struct {
	Success      bool
	MessageID    string
	ErrorMessage string
	ErrorClass   ErrorClass
	InstanceUsed string
	SourceTier   SourceTier
}

// GlobalConfig is the deployment-wide gateway configuration. DefaultInstance
// comes from its own settings key and may be empty even when the endpoint and
// credential are present.
type GlobalConfig struct {
	EndpointURL     string
	CredentialKey   string
	DefaultInstance string
}

// TenantConfig is a tenant's gateway override. EndpointURL and CredentialKey
// are optional and inherit field-by-field from GlobalConfig when empty.
type TenantConfig struct {
	TenantID      string
	EndpointURL   string
	CredentialKey string
	InstanceName  string
	IsActive      bool
}

// OwnerPhoneFromIdentity extracts the phone portion of a provider owner
// identity, which has the shape "<phone>@<host>".
func OwnerPhoneFromIdentity(identity string) string {
	if identity == "" {
		return ""
	}
	if at := strings.Index(identity, "@"); at >= 0 {
		return identity[:at]
	}
	return identity
}
