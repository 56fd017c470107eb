package speech

// Controller coordinates capture and playback: the two are mutually
// exclusive, so starting one cancels the other.
type Controller struct {
	recognizer  Recognizer
	synthesizer Synthesizer
}

func NewController(recognizer Recognizer, synthesizer Synthesizer) *Controller {
	return &Controller{recognizer: recognizer, synthesizer: synthesizer}
}

// ToggleRecording starts a capture, or stops the one in progress. An
// unsupported platform surfaces its message through onError.
func (c *Controller) ToggleRecording(onResult func(text string, final bool), onError func(message string)) {
	if !c.recognizer.Supported() {
		if onError != nil {
			onError(RecognitionUnsupportedMessage)
		}
		return
	}

	if c.recognizer.Recording() {
		c.recognizer.Stop()
		return
	}

	if c.synthesizer.Speaking() {
		c.synthesizer.Cancel()
	}
	c.recognizer.Start(onResult, onError)
}

// ToggleSpeak plays a message aloud, or stops it if it is the one already
// playing. Playing a different message replaces the current playback.
func (c *Controller) ToggleSpeak(messageID, text string, onDone func(), onError func(message string)) {
	if !c.synthesizer.Supported() {
		if onError != nil {
			onError(SynthesisUnsupportedMessage)
		}
		return
	}

	if c.synthesizer.Speaking() && c.synthesizer.SpeakingID() == messageID {
		c.synthesizer.Cancel()
		return
	}

	if c.synthesizer.Speaking() {
		c.synthesizer.Cancel()
	}
	if c.recognizer.Recording() {
		c.recognizer.Stop()
	}
	c.synthesizer.Speak(messageID, text, onDone, onError)
}

// StopAll cancels any capture and playback. Called on send, delete of the
// spoken message, new chat, and shutdown.
func (c *Controller) StopAll() {
	if c.recognizer.Recording() {
		c.recognizer.Stop()
	}
	if c.synthesizer.Speaking() {
		c.synthesizer.Cancel()
	}
}

// Recording reports whether a capture is active.
func (c *Controller) Recording() bool { return c.recognizer.Recording() }

// SpeakingID returns the id of the message being spoken, empty when idle.
func (c *Controller) SpeakingID() string { return c.synthesizer.SpeakingID() }
