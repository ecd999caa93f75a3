package repository

import (
	"sync"
	"time"
)

// PushDevice is one mobile device subscribed to signal alerts.
type PushDevice struct {
	Token        string
	Platform     string // "android" or "ios"
	RegisteredAt time.Time
}

// DeviceRegistry holds the devices that receive push alerts. Registration is
// keyed by token; re-registering refreshes the platform and timestamp, so
// app restarts never duplicate a device.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]PushDevice
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{devices: make(map[string]PushDevice)}
}

// Register adds or refreshes a device.
func (r *DeviceRegistry) Register(token, platform string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.devices[token] = PushDevice{
		Token:        token,
		Platform:     platform,
		RegisteredAt: at,
	}
}

// Remove drops a device; unknown tokens are a no-op.
func (r *DeviceRegistry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.devices, token)
}

// Tokens returns the token of every registered device, the form FCM
// multicast wants.
func (r *DeviceRegistry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]string, 0, len(r.devices))
	for token := range r.devices {
		tokens = append(tokens, token)
	}
	return tokens
}
