// Package gemini provides a VideoGenerator implementation using Google's
// Veo models through the Gemini API, via the official Go SDK:
// https://github.com/googleapis/go-genai
//
// The same client also implements ChatCompleter over a Gemini text model,
// so one provider instance can back both a generation Session and a
// ChatSession.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mhpenta/videogen"
	"google.golang.org/genai"
)

// Model name constants - the actual API model names.
const (
	// APIModelVeoFast is the actual API name for the fast Veo engine.
	APIModelVeoFast = "veo-3.1-fast-generate-preview"

	// APIModelVeo is the actual API name for the standard Veo engine.
	APIModelVeo = "veo-3.1-generate-preview"

	// APIModelChat is the text model backing the chat session.
	APIModelChat = "gemini-2.5-flash"
)

// VeoGenerator implements VideoGenerator and ChatCompleter using Google's
// Gemini API.
type VeoGenerator struct {
	client *genai.Client
}

// Ensure VeoGenerator implements the interfaces.
var (
	_ videogen.VideoGenerator = (*VeoGenerator)(nil)
	_ videogen.ChatCompleter  = (*VeoGenerator)(nil)
)

// New creates a new VeoGenerator from a ProviderConfig.
func New(ctx context.Context, config *videogen.ProviderConfig) (*VeoGenerator, error) {
	if config == nil {
		config = &videogen.ProviderConfig{}
	}

	clientCfg := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	}

	if config.APIKey != "" {
		clientCfg.APIKey = config.APIKey
	}
	// If APIKey is empty, the SDK will try GOOGLE_API_KEY or GEMINI_API_KEY env vars

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &VeoGenerator{
		client: client,
	}, nil
}

// NewWithAPIKey creates a generator with an API key for the Gemini API.
func NewWithAPIKey(ctx context.Context, apiKey string) (*VeoGenerator, error) {
	return New(ctx, &videogen.ProviderConfig{
		Provider: videogen.ProviderGeminiAPI,
		APIKey:   apiKey,
	})
}

// Submit starts a long-running Veo generation shaped by the request's mode:
//
//   - TextToVideo sends the prompt and settings only.
//   - AnimateImage sends the start frame, and the end frame as the clip's
//     last frame when present. A looping request reuses the start frame as
//     the last frame so the clip lands where it began; with neither, the
//     model completes the motion on its own.
//   - ReferencesToVideo sends the reference images as asset references and
//     the optional style image as a style reference.
//   - ExtendVideo sends the remote reference of the base clip; bytes are
//     never re-uploaded.
func (g *VeoGenerator) Submit(ctx context.Context, req *videogen.GenerationRequest) (*videogen.Operation, error) {
	modelName, err := apiModelName(req.Model)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		AspectRatio:    req.AspectRatio.String(),
		Resolution:     req.Resolution.String(),
	}

	var op *genai.GenerateVideosOperation

	switch req.Mode {
	case videogen.ModeTextToVideo:
		op, err = g.client.Models.GenerateVideos(ctx, modelName, req.Prompt, nil, cfg)

	case videogen.ModeAnimateImage:
		var start, last *genai.Image
		start, err = imageFromMedia(req.StartFrame)
		if err != nil {
			return nil, err
		}
		last, err = imageFromMedia(req.EndFrame)
		if err != nil {
			return nil, err
		}
		if req.Looping && last == nil {
			last = start
		}
		cfg.LastFrame = last
		op, err = g.client.Models.GenerateVideos(ctx, modelName, req.Prompt, start, cfg)

	case videogen.ModeReferencesToVideo:
		for i := range req.ReferenceImages {
			img, imgErr := imageFromMedia(&req.ReferenceImages[i])
			if imgErr != nil {
				return nil, imgErr
			}
			cfg.ReferenceImages = append(cfg.ReferenceImages, &genai.VideoGenerationReferenceImage{
				Image:         img,
				ReferenceType: genai.VideoGenerationReferenceTypeAsset,
			})
		}
		if req.StyleImage != nil {
			img, imgErr := imageFromMedia(req.StyleImage)
			if imgErr != nil {
				return nil, imgErr
			}
			cfg.ReferenceImages = append(cfg.ReferenceImages, &genai.VideoGenerationReferenceImage{
				Image:         img,
				ReferenceType: genai.VideoGenerationReferenceTypeStyle,
			})
		}
		op, err = g.client.Models.GenerateVideos(ctx, modelName, req.Prompt, nil, cfg)

	case videogen.ModeExtendVideo:
		source := &genai.GenerateVideosSource{
			Prompt: req.Prompt,
			Video:  &genai.Video{URI: req.InputVideoHandle},
		}
		op, err = g.client.Models.GenerateVideosFromSource(ctx, modelName, source, cfg)

	default:
		return nil, fmt.Errorf("unknown generation mode %q", req.Mode)
	}

	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("video submission failed: %w", err)
	}

	return wrapOperation(op), nil
}

// Poll refreshes the long-running operation's state.
func (g *VeoGenerator) Poll(ctx context.Context, op *videogen.Operation) (*videogen.Operation, error) {
	raw, ok := op.Raw.(*genai.GenerateVideosOperation)
	if !ok {
		return nil, errors.New("operation was not created by this provider")
	}

	got, err := g.client.Operations.GetVideosOperation(ctx, raw, nil)
	if err != nil {
		if rlErr := checkRateLimitError(err, op.Name); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("operation status check failed: %w", err)
	}

	return wrapOperation(got), nil
}

// Fetch retrieves the finished clip's bytes for a Done operation.
func (g *VeoGenerator) Fetch(ctx context.Context, op *videogen.Operation) (*videogen.GeneratedVideo, error) {
	raw, ok := op.Raw.(*genai.GenerateVideosOperation)
	if !ok {
		return nil, errors.New("operation was not created by this provider")
	}

	video := firstVideo(raw)
	if video == nil {
		return nil, errors.New("completed operation carries no video")
	}

	data := video.VideoBytes
	if len(data) == 0 {
		downloaded, err := g.client.Files.Download(ctx, video, nil)
		if err != nil {
			return nil, fmt.Errorf("video download failed: %w", err)
		}
		data = downloaded
	}
	if len(data) == 0 {
		return nil, errors.New("empty video payload")
	}

	mimeType := video.MIMEType
	if mimeType == "" {
		mimeType = "video/mp4"
	}

	return &videogen.GeneratedVideo{
		Data:     data,
		MIMEType: mimeType,
		URI:      video.URI,
	}, nil
}

// Complete produces one assistant turn for the transcript, constrained by
// the persona system instruction.
func (g *VeoGenerator) Complete(ctx context.Context, turns []videogen.ChatTurn, systemInstruction string) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Speaker == videogen.SpeakerAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	cfg := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, APIModelChat, contents, cfg)
	if err != nil {
		if rlErr := checkRateLimitError(err, APIModelChat); rlErr != nil {
			return "", rlErr
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}

// Models returns the model definitions supported by this provider.
// The first model (VeoFast) is the default.
func (g *VeoGenerator) Models() []videogen.ModelInfo {
	return []videogen.ModelInfo{
		VeoFastInfo,
		VeoInfo,
	}
}

// Close releases any resources held by the generator.
func (g *VeoGenerator) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// apiModelName maps the public model identifier to its API name.
func apiModelName(model videogen.Model) (string, error) {
	switch model {
	case videogen.ModelVeoFast:
		return APIModelVeoFast, nil
	case videogen.ModelVeo:
		return APIModelVeo, nil
	default:
		return "", fmt.Errorf("unknown model %q", model)
	}
}

// imageFromMedia decodes an encoded payload into the SDK's image type.
func imageFromMedia(m *videogen.EncodedMedia) (*genai.Image, error) {
	if m == nil {
		return nil, nil
	}
	data, err := m.Bytes()
	if err != nil {
		return nil, err
	}
	return &genai.Image{
		ImageBytes: data,
		MIMEType:   m.MIMEType,
	}, nil
}

// wrapOperation converts the SDK operation into the provider-neutral handle.
func wrapOperation(op *genai.GenerateVideosOperation) *videogen.Operation {
	out := &videogen.Operation{
		Name: op.Name,
		Done: op.Done,
		Raw:  op,
	}
	if op.Done {
		out.Failure = operationFailure(op)
		if out.Failure == "" {
			if v := firstVideo(op); v != nil {
				out.VideoURI = v.URI
			}
		}
	}
	return out
}

// operationFailure extracts the remote failure message of a terminal
// operation, or "" when it succeeded.
func operationFailure(op *genai.GenerateVideosOperation) string {
	if len(op.Error) == 0 {
		return ""
	}
	if msg, ok := op.Error["message"].(string); ok && msg != "" {
		return msg
	}
	return fmt.Sprintf("remote operation failed: %v", op.Error)
}

// firstVideo returns the first generated clip of a completed operation.
func firstVideo(op *genai.GenerateVideosOperation) *genai.Video {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return nil
	}
	return op.Response.GeneratedVideos[0].Video
}

// checkRateLimitError checks if an error from the Gemini API is a rate limit error.
// If so, it wraps it in a RateLimitError for standardized handling; otherwise returns the original error.
func checkRateLimitError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	if apiErr.Code != 429 && apiErr.Status != "RESOURCE_EXHAUSTED" {
		return err
	}

	return &videogen.RateLimitError{
		RetryAfter: 60 * time.Second, // Default; API doesn't reliably provide Retry-After
		LimitType:  "requests",
		Model:      model,
		Err:        err,
	}
}
