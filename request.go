package videogen

import (
	"strings"
	"sync"
)

// Model represents a video generation engine.
type Model string

const (
	// ModelVeoFast is the fast engine: quicker turnaround, lower fidelity.
	ModelVeoFast Model = "veo-fast"

	// ModelVeo is the standard engine.
	ModelVeo Model = "veo"

	ModelDefault Model = ModelVeoFast
)

// String returns the model identifier.
func (m Model) String() string {
	return string(m)
}

// AspectRatio represents the output framing of a generated clip.
type AspectRatio string

const (
	AspectRatioLandscape AspectRatio = "16:9"
	AspectRatioPortrait  AspectRatio = "9:16"
)

// String returns the string representation for API calls.
func (a AspectRatio) String() string {
	return string(a)
}

// Resolution represents the output resolution of a generated clip.
type Resolution string

const (
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
)

// String returns the string representation for API calls.
func (r Resolution) String() string {
	return string(r)
}

// MaxReferenceImages is the most reference images a single request may carry.
const MaxReferenceImages = 3

// Request is the mutable generation request model. It enforces the
// mode-specific field coupling on every edit: switching modes clears the
// mode-specific fields, mode-pinned settings reject edits, and the loop
// flag and end frame are mutually exclusive. Use Snapshot to freeze a
// validated request for submission.
//
// Methods are safe for concurrent use, though the model is intended to be
// driven by a single presentation layer.
type Request struct {
	mu sync.Mutex

	prompt      string
	model       Model
	aspectRatio AspectRatio
	resolution  Resolution

	mode             Mode
	startFrame       *EncodedMedia
	endFrame         *EncodedMedia
	referenceImages  []EncodedMedia
	styleImage       *EncodedMedia
	inputVideo       *EncodedMedia
	inputVideoHandle string
	looping          bool
}

// NewRequest creates a request in the default mode with default settings.
func NewRequest() *Request {
	return &Request{
		mode:        ModeDefault,
		model:       ModelDefault,
		aspectRatio: AspectRatioLandscape,
		resolution:  Resolution720p,
	}
}

// Mode returns the active mode.
func (r *Request) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// SetMode switches the input modality. All mode-specific fields (frames,
// reference images, style image, input video and its remote handle, the
// loop flag) are cleared; prompt and settings persist, then mode defaults
// are force-applied:
//
//   - ReferencesToVideo pins model=ModelVeo, aspect=16:9, resolution=720p.
//   - ExtendVideo pins resolution=720p (a continuation matches its source).
func (r *Request) SetMode(mode Mode) error {
	if !mode.Valid() {
		return errUnknownMode(mode)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.mode = mode
	r.startFrame = nil
	r.endFrame = nil
	r.referenceImages = nil
	r.styleImage = nil
	r.inputVideo = nil
	r.inputVideoHandle = ""
	r.looping = false

	switch mode {
	case ModeReferencesToVideo:
		r.model = ModelVeo
		r.aspectRatio = AspectRatioLandscape
		r.resolution = Resolution720p
	case ModeExtendVideo:
		r.resolution = Resolution720p
	case ModeTextToVideo, ModeAnimateImage:
		// No forced settings.
	}

	return nil
}

// SetPrompt sets the text prompt. The prompt persists across mode switches.
func (r *Request) SetPrompt(prompt string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompt = prompt
}

// Prompt returns the current text prompt.
func (r *Request) Prompt() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prompt
}

// SetModel selects the engine. Returns ErrFieldLocked while the active
// mode pins the model.
func (r *Request) SetModel(model Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode.locksModel() {
		return ErrFieldLocked
	}
	r.model = model
	return nil
}

// Model returns the selected engine.
func (r *Request) Model() Model {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.model
}

// SetAspectRatio selects the output framing. Returns ErrFieldLocked while
// the active mode pins framing.
func (r *Request) SetAspectRatio(ratio AspectRatio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode.locksFraming() {
		return ErrFieldLocked
	}
	r.aspectRatio = ratio
	return nil
}

// AspectRatio returns the selected framing.
func (r *Request) AspectRatio() AspectRatio {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aspectRatio
}

// SetResolution selects the output resolution. Returns ErrFieldLocked
// while the active mode pins framing.
func (r *Request) SetResolution(res Resolution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode.locksFraming() {
		return ErrFieldLocked
	}
	r.resolution = res
	return nil
}

// Resolution returns the selected resolution.
func (r *Request) Resolution() Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolution
}

// SetStartFrame sets the starting image for animation.
func (r *Request) SetStartFrame(media EncodedMedia) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.mode.supportsFrames() {
		return ErrFieldNotApplicable
	}
	r.startFrame = &media
	return nil
}

// ClearStartFrame removes the starting image.
func (r *Request) ClearStartFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startFrame = nil
}

// StartFrame returns the starting image, or nil.
func (r *Request) StartFrame() *EncodedMedia {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startFrame
}

// SetEndFrame sets the target end frame for animation. Returns
// ErrLoopActive while looping is enabled: a loop has no distinct end
// frame, so the loop flag must be cleared first.
func (r *Request) SetEndFrame(media EncodedMedia) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.mode.supportsFrames() {
		return ErrFieldNotApplicable
	}
	if r.looping {
		return ErrLoopActive
	}
	r.endFrame = &media
	return nil
}

// ClearEndFrame removes the end frame.
func (r *Request) ClearEndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endFrame = nil
}

// EndFrame returns the end frame, or nil.
func (r *Request) EndFrame() *EncodedMedia {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.endFrame
}

// SetLooping toggles seamless looping. Enabling it clears any end frame.
func (r *Request) SetLooping(looping bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.mode.supportsLooping() {
		return ErrFieldNotApplicable
	}
	r.looping = looping
	if looping {
		r.endFrame = nil
	}
	return nil
}

// Looping reports whether seamless looping is enabled.
func (r *Request) Looping() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.looping
}

// AddReferenceImage appends a reference image, up to MaxReferenceImages.
// A further add is rejected with ErrTooManyReferences and leaves the
// sequence unchanged.
func (r *Request) AddReferenceImage(media EncodedMedia) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode != ModeReferencesToVideo {
		return ErrFieldNotApplicable
	}
	if len(r.referenceImages) >= MaxReferenceImages {
		return ErrTooManyReferences
	}
	r.referenceImages = append(r.referenceImages, media)
	return nil
}

// RemoveReferenceImage removes the reference image at index i, if present.
func (r *Request) RemoveReferenceImage(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i < 0 || i >= len(r.referenceImages) {
		return
	}
	r.referenceImages = append(r.referenceImages[:i], r.referenceImages[i+1:]...)
}

// ReferenceImages returns a copy of the reference image sequence.
func (r *Request) ReferenceImages() []EncodedMedia {
	r.mu.Lock()
	defer r.mu.Unlock()

	imgs := make([]EncodedMedia, len(r.referenceImages))
	copy(imgs, r.referenceImages)
	return imgs
}

// SetStyleImage sets the optional style image for reference-guided
// generation.
func (r *Request) SetStyleImage(media EncodedMedia) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode != ModeReferencesToVideo {
		return ErrFieldNotApplicable
	}
	r.styleImage = &media
	return nil
}

// ClearStyleImage removes the style image.
func (r *Request) ClearStyleImage() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styleImage = nil
}

// StyleImage returns the style image, or nil.
func (r *Request) StyleImage() *EncodedMedia {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.styleImage
}

// SetInputVideo attaches the local bytes of the clip being extended. The
// bytes are kept for preview only; submission requires the remote handle
// set via SetInputVideoHandle.
func (r *Request) SetInputVideo(media EncodedMedia) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode != ModeExtendVideo {
		return ErrFieldNotApplicable
	}
	r.inputVideo = &media
	return nil
}

// InputVideo returns the local clip bytes, or nil.
func (r *Request) InputVideo() *EncodedMedia {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inputVideo
}

// SetInputVideoHandle records the remote reference of the clip being
// extended, as reported by a prior Ready outcome.
func (r *Request) SetInputVideoHandle(handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode != ModeExtendVideo {
		return ErrFieldNotApplicable
	}
	r.inputVideoHandle = handle
	return nil
}

// InputVideoHandle returns the remote reference of the clip being extended.
func (r *Request) InputVideoHandle() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inputVideoHandle
}

// Validate checks mode-specific completeness. It returns a
// ValidationError carrying a human-readable reason when the request is
// not ready for submission.
func (r *Request) Validate() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.validateLocked()
}

func (r *Request) validateLocked() error {
	return validateReadiness(r.mode, r.prompt, r.startFrame != nil, len(r.referenceImages), r.inputVideoHandle)
}

// validateReadiness is the per-mode submission readiness table, shared by
// the live model and frozen snapshots.
func validateReadiness(mode Mode, prompt string, hasStartFrame bool, referenceCount int, inputVideoHandle string) error {
	switch mode {
	case ModeTextToVideo:
		if strings.TrimSpace(prompt) == "" {
			return &ValidationError{Mode: mode, Reason: "describe the video you want to generate"}
		}
	case ModeAnimateImage:
		if !hasStartFrame {
			return &ValidationError{Mode: mode, Reason: "add a starting image to animate"}
		}
	case ModeReferencesToVideo:
		if referenceCount == 0 {
			return &ValidationError{Mode: mode, Reason: "add at least one reference image"}
		}
		if strings.TrimSpace(prompt) == "" {
			return &ValidationError{Mode: mode, Reason: "describe how to combine the reference images"}
		}
	case ModeExtendVideo:
		if inputVideoHandle == "" {
			return &ValidationError{Mode: mode, Reason: "the base clip must be a previously generated video"}
		}
	default:
		return errUnknownMode(mode)
	}
	return nil
}

// Snapshot validates the request and freezes it for submission. The
// returned value is independent of the live model: later edits do not
// affect it, so a retry can reuse it verbatim. The local input video
// bytes are deliberately omitted; a continuation submits the remote
// handle, never re-uploaded bytes.
func (r *Request) Snapshot() (*GenerationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validateLocked(); err != nil {
		return nil, err
	}

	snap := &GenerationRequest{
		Prompt:           r.prompt,
		Model:            r.model,
		AspectRatio:      r.aspectRatio,
		Resolution:       r.resolution,
		Mode:             r.mode,
		InputVideoHandle: r.inputVideoHandle,
		Looping:          r.looping,
	}
	if r.startFrame != nil {
		sf := *r.startFrame
		snap.StartFrame = &sf
	}
	if r.endFrame != nil {
		ef := *r.endFrame
		snap.EndFrame = &ef
	}
	if len(r.referenceImages) > 0 {
		snap.ReferenceImages = make([]EncodedMedia, len(r.referenceImages))
		copy(snap.ReferenceImages, r.referenceImages)
	}
	if r.styleImage != nil {
		si := *r.styleImage
		snap.StyleImage = &si
	}

	return snap, nil
}

// GenerationRequest is a frozen, validated request as handed to the
// Session. Treat it as immutable.
type GenerationRequest struct {
	Prompt      string
	Model       Model
	AspectRatio AspectRatio
	Resolution  Resolution
	Mode        Mode

	StartFrame       *EncodedMedia
	EndFrame         *EncodedMedia
	ReferenceImages  []EncodedMedia
	StyleImage       *EncodedMedia
	InputVideoHandle string
	Looping          bool
}

// Validate re-checks mode-specific completeness on a frozen request. The
// Session refuses to submit a request that does not pass.
func (g *GenerationRequest) Validate() error {
	return validateReadiness(g.Mode, g.Prompt, g.StartFrame != nil, len(g.ReferenceImages), g.InputVideoHandle)
}
