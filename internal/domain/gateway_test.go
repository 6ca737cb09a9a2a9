package domain

import "testing"

func TestResolvedConfigComplete(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cfg  *ResolvedConfig
		want bool
	}{
		{name: "nil config", cfg: nil, want: false},
		{
			name: "all fields present",
			cfg:  &ResolvedConfig{EndpointURL: "https://p.example", CredentialKey: "K", InstanceName: "main"},
			want: true,
		},
		{
			name: "missing credential",
			cfg:  &ResolvedConfig{EndpointURL: "https://p.example", InstanceName: "main"},
			want: false,
		},
		{
			name: "missing instance",
			cfg:  &ResolvedConfig{EndpointURL: "https://p.example", CredentialKey: "K"},
			want: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.cfg.Complete(); got != tc.want {
				t.Fatalf("Complete() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOwnerPhoneFromIdentity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		identity string
		want     string
	}{
		{identity: "5511999999999@s.whatsapp.net", want: "5511999999999"},
		{identity: "5511999999999", want: "5511999999999"},
		{identity: "", want: ""},
		{identity: "@host", want: ""},
	}

	for _, tc := range testCases {
		if got := OwnerPhoneFromIdentity(tc.identity); got != tc.want {
			t.Fatalf("OwnerPhoneFromIdentity(%q) = %q, want %q", tc.identity, got, tc.want)
		}
	}
}

func TestDeliveryRecordValidate(t *testing.T) {
	t.Parallel()

	valid := &DeliveryRecord{RecipientAddress: "5511999999999", Status: DeliverySent, Provider: ProviderName}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	missingRecipient := &DeliveryRecord{Status: DeliveryFailed}
	if err := missingRecipient.Validate(); err == nil {
		t.Fatal("expected validation error for missing recipient")
	}

	badStatus := &DeliveryRecord{RecipientAddress: "5511999999999", Status: DeliveryStatus("queued")}
	if err := badStatus.Validate(); err == nil {
		t.Fatal("expected validation error for invalid status")
	}
}
