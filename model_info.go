package videogen

// Provider represents a model provider/backend.
type Provider string

const (
	ProviderGeminiAPI Provider = "gemini"
)

// ProviderConfig configures a specific provider.
type ProviderConfig struct {
	// Provider type
	Provider Provider

	// APIKey for authentication
	APIKey string

	// BaseURL for custom endpoints (optional)
	BaseURL string
}

// ModelCapabilities describes which generation modes a model supports.
type ModelCapabilities struct {
	SupportsTextToVideo     bool
	SupportsImageAnimation  bool
	SupportsReferenceImages bool
	SupportsExtension       bool

	// MaxReferenceImages per request (0 when unsupported)
	MaxReferenceImages int
}

// VideoConstraints defines supported output configurations for a model.
type VideoConstraints struct {
	SupportedAspectRatios []AspectRatio
	SupportedResolutions  []Resolution

	// MaxClipSeconds is the longest clip a single request produces.
	MaxClipSeconds int
}

// RateLimits defines rate limiting parameters for a model.
type RateLimits struct {
	TokensPerMinute   int
	RequestsPerMinute int
}

// Pricing defines cost information for a model.
type Pricing struct {
	// PerClip is the cost of one generated clip.
	PerClip float64
}

// ModelInfo contains complete metadata for a model.
type ModelInfo struct {
	// Identity
	Name         string   // Public model name (e.g., "veo-fast")
	Provider     Provider // Which provider serves this model
	APIModelName string   // Actual API name (e.g., "veo-3.1-fast-generate-preview")

	// Capabilities
	Capabilities ModelCapabilities

	// Constraints
	Constraints VideoConstraints

	// Rate Limits
	RateLimits RateLimits

	// Pricing
	Pricing Pricing
}
