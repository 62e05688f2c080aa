package videogen

import "fmt"

// Mode selects the input modality for a single generation request.
// It is a closed set; every mode-dependent behavior in this package
// switches over it exhaustively.
type Mode string

const (
	// ModeTextToVideo generates a clip from a text prompt alone.
	ModeTextToVideo Mode = "text-to-video"

	// ModeAnimateImage animates a starting image, optionally toward an
	// end frame.
	ModeAnimateImage Mode = "animate-image"

	// ModeReferencesToVideo generates a clip guided by up to three
	// reference images and an optional style image.
	ModeReferencesToVideo Mode = "references-to-video"

	// ModeExtendVideo continues a previously generated clip.
	ModeExtendVideo Mode = "extend-video"
)

// ModeDefault is the mode a fresh Request starts in.
const ModeDefault = ModeTextToVideo

// String returns the mode identifier.
func (m Mode) String() string {
	return string(m)
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeTextToVideo, ModeAnimateImage, ModeReferencesToVideo, ModeExtendVideo:
		return true
	}
	return false
}

// supportsFrames reports whether the mode accepts a start/end frame.
func (m Mode) supportsFrames() bool {
	return m == ModeAnimateImage
}

// supportsLooping reports whether the mode accepts the looping flag.
// A loop needs a start frame to land back on, so only animation has the
// affordance.
func (m Mode) supportsLooping() bool {
	return m == ModeAnimateImage
}

// locksModel reports whether the mode pins the model selection.
func (m Mode) locksModel() bool {
	return m == ModeReferencesToVideo
}

// locksFraming reports whether the mode pins aspect ratio and resolution.
func (m Mode) locksFraming() bool {
	switch m {
	case ModeReferencesToVideo, ModeExtendVideo:
		return true
	case ModeTextToVideo, ModeAnimateImage:
		return false
	}
	return false
}

// errUnknownMode builds the error returned for a mode outside the closed set.
func errUnknownMode(m Mode) error {
	return fmt.Errorf("unknown generation mode %q", string(m))
}
