package portone

// Config represents the configuration for the PortOne client
type Config struct {
	// APISecret is the PortOne V2 API secret for API authentication
	APISecret string

	// StoreID is the PortOne store identifier, injected into cancel requests
	StoreID string

	// ChannelKey is the frontend channel key, exposed through the environment endpoint
	ChannelKey string

	// BaseURL is the PortOne API base URL
	BaseURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APISecret == "" {
		return ErrInvalidRequest
	}
	if c.StoreID == "" {
		return ErrInvalidRequest
	}
	if c.BaseURL == "" {
		return ErrInvalidRequest
	}
	return nil
}
