// Package speech defines the capture and playback seams for voice input and
// spoken replies. Terminals expose no speech APIs, so the shipped build wires
// the unsupported implementations; the interfaces are the integration point
// for platforms that have them.
package speech

// Messages surfaced when a speech feature is missing on this platform.
const (
	RecognitionUnsupportedMessage = "Speech Recognition not supported in this terminal."
	SynthesisUnsupportedMessage   = "Text-to-Speech not supported in this terminal."
)

// Recognizer captures voice input and reports transcripts.
type Recognizer interface {
	// Supported reports whether capture is available on this platform.
	Supported() bool
	// Start begins a single-utterance capture. Interim transcripts arrive
	// with final=false, the settled transcript with final=true. Failures go
	// to onError.
	Start(onResult func(text string, final bool), onError func(message string))
	// Stop ends the capture early. Stopping when idle is a no-op.
	Stop()
	// Recording reports whether a capture is active.
	Recording() bool
}

// Synthesizer plays back message text aloud.
type Synthesizer interface {
	// Supported reports whether playback is available on this platform.
	Supported() bool
	// Speak starts playback of one message. onDone fires when playback ends,
	// onError on failure.
	Speak(messageID, text string, onDone func(), onError func(message string))
	// Cancel stops any active playback. Cancelling when idle is a no-op.
	Cancel()
	// Speaking reports whether playback is active.
	Speaking() bool
	// SpeakingID returns the id of the message being spoken, empty when idle.
	SpeakingID() string
}

// UnsupportedRecognizer returns the no-op capture implementation.
func UnsupportedRecognizer() Recognizer { return unsupportedRecognizer{} }

// UnsupportedSynthesizer returns the no-op playback implementation.
func UnsupportedSynthesizer() Synthesizer { return unsupportedSynthesizer{} }

type unsupportedRecognizer struct{}

func (unsupportedRecognizer) Supported() bool { return false }

func (unsupportedRecognizer) Start(_ func(string, bool), onError func(string)) {
	if onError != nil {
		onError(RecognitionUnsupportedMessage)
	}
}

func (unsupportedRecognizer) Stop() {}

func (unsupportedRecognizer) Recording() bool { return false }

type unsupportedSynthesizer struct{}

func (unsupportedSynthesizer) Supported() bool { return false }

func (unsupportedSynthesizer) Speak(_, _ string, _ func(), onError func(string)) {
	if onError != nil {
		onError(SynthesisUnsupportedMessage)
	}
}

func (unsupportedSynthesizer) Cancel() {}

func (unsupportedSynthesizer) Speaking() bool { return false }

func (unsupportedSynthesizer) SpeakingID() string { return "" }
