package image

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidProvisioning(t *testing.T) {
	tests := []struct {
		name         string
		provisioning string
		want         bool
	}{
		{"Eager", ProvisioningEager, true},
		{"Lazy", ProvisioningLazy, true},
		{"Invalid", "on-demand", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Provisioning: tt.provisioning}
			assert.Equal(t, tt.want, c.IsValidProvisioning())
		})
	}
}

func TestDefaultURLExpiry(t *testing.T) {
	assert.Equal(t, time.Hour, DefaultURLExpiry)
}
