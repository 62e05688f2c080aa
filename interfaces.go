package videogen

import "context"

// VideoGenerator is the core interface for long-running video generation
// backends. Implement this interface to add support for new providers.
//
// A generation is a three-step protocol: Submit starts the remote job and
// returns an Operation; Poll refreshes it until Done; Fetch retrieves the
// finished clip's bytes. The Session drives the protocol.
type VideoGenerator interface {
	// Submit builds the mode-shaped remote payload from a frozen request
	// and starts the long-running job.
	Submit(ctx context.Context, req *GenerationRequest) (*Operation, error)

	// Poll refreshes the operation's state. Callers own the wait between
	// polls.
	Poll(ctx context.Context, op *Operation) (*Operation, error)

	// Fetch retrieves the finished clip for a Done operation.
	Fetch(ctx context.Context, op *Operation) (*GeneratedVideo, error)

	// Models returns the model definitions supported by this provider.
	// The first model in the list is the default.
	Models() []ModelInfo

	// Close releases any resources held by the generator.
	Close() error
}

// ChatCompleter produces a single assistant completion for an ordered
// transcript plus a fixed system instruction.
type ChatCompleter interface {
	Complete(ctx context.Context, turns []ChatTurn, systemInstruction string) (string, error)
}

// Operation is the handle of a remote long-running generation job.
type Operation struct {
	// Name identifies the remote job.
	Name string

	// Done reports whether the job reached a terminal state.
	Done bool

	// Failure carries the remote failure message when the job
	// terminated unsuccessfully. Empty on success or while running.
	Failure string

	// VideoURI is the remote reference of the finished clip, usable as
	// an extension handle. Set once Done without Failure.
	VideoURI string

	// Raw holds provider-specific operation state carried between
	// Submit, Poll and Fetch.
	Raw any
}

// GeneratedVideo is the binary result of a completed generation.
type GeneratedVideo struct {
	// Data contains the raw video bytes.
	Data []byte

	// MIMEType of the clip (typically "video/mp4").
	MIMEType string

	// URI is the remote reference of the clip.
	URI string
}
