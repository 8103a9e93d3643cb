package image

import "time"

// DefaultURLExpiry is the presigned URL lifetime used when none is configured.
const DefaultURLExpiry = time.Hour

const (
	ProvisioningEager = "eager"
	ProvisioningLazy  = "lazy"
)

// Config holds configuration for the profile-image service.
type Config struct {
	// Provisioning selects when the bucket is ensured: eager ensures it at
	// service construction, lazy before every store.
	Provisioning string `mapstructure:"provisioning" default:"eager"`
	// URLExpirySeconds is the default lifetime of presigned URLs in seconds.
	URLExpirySeconds int `mapstructure:"url_expiry_seconds" default:"3600"`
}

// IsValidProvisioning checks if the configured provisioning policy is valid.
func (c Config) IsValidProvisioning() bool {
	switch c.Provisioning {
	case ProvisioningEager, ProvisioningLazy:
		return true
	default:
		return false
	}
}
