package gemini

import "github.com/mhpenta/videogen"

// VeoFastInfo is the model info for the fast Veo engine (veo-fast).
//
// The fast engine trades some visual fidelity for turnaround time. It does
// not support reference-guided generation.
var VeoFastInfo = videogen.ModelInfo{
	Name:         "veo-fast",
	Provider:     videogen.ProviderGeminiAPI,
	APIModelName: APIModelVeoFast,

	Capabilities: videogen.ModelCapabilities{
		SupportsTextToVideo:     true,
		SupportsImageAnimation:  true,
		SupportsReferenceImages: false,
		SupportsExtension:       true,
	},

	Constraints: videogen.VideoConstraints{
		SupportedAspectRatios: []videogen.AspectRatio{
			videogen.AspectRatioLandscape,
			videogen.AspectRatioPortrait,
		},
		SupportedResolutions: []videogen.Resolution{
			videogen.Resolution720p,
			videogen.Resolution1080p,
		},
		MaxClipSeconds: 8,
	},

	RateLimits: videogen.RateLimits{
		TokensPerMinute:   2000000,
		RequestsPerMinute: 10, // Long-running submissions, not completions
	},

	// Pricing as of late 2025, per second of generated video with audio.
	Pricing: videogen.Pricing{
		PerClip: 1.20, // ~$0.15/s * 8s
	},
}

// VeoInfo is the model info for the standard Veo engine (veo).
var VeoInfo = videogen.ModelInfo{
	Name:         "veo",
	Provider:     videogen.ProviderGeminiAPI,
	APIModelName: APIModelVeo,

	Capabilities: videogen.ModelCapabilities{
		SupportsTextToVideo:     true,
		SupportsImageAnimation:  true,
		SupportsReferenceImages: true,
		SupportsExtension:       true,
		MaxReferenceImages:      videogen.MaxReferenceImages,
	},

	Constraints: videogen.VideoConstraints{
		SupportedAspectRatios: []videogen.AspectRatio{
			videogen.AspectRatioLandscape,
			videogen.AspectRatioPortrait,
		},
		SupportedResolutions: []videogen.Resolution{
			videogen.Resolution720p,
			videogen.Resolution1080p,
		},
		MaxClipSeconds: 8,
	},

	RateLimits: videogen.RateLimits{
		TokensPerMinute:   2000000,
		RequestsPerMinute: 10,
	},

	Pricing: videogen.Pricing{
		PerClip: 3.20, // ~$0.40/s * 8s
	},
}
