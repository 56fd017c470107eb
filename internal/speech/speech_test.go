package speech

import "testing"

// fakeRecognizer and fakeSynthesizer are supported implementations that
// record calls, for exercising the controller's exclusion rules.
type fakeRecognizer struct {
	recording bool
	starts    int
	stops     int
}

func (f *fakeRecognizer) Supported() bool { return true }

func (f *fakeRecognizer) Start(_ func(string, bool), _ func(string)) {
	f.recording = true
	f.starts++
}

func (f *fakeRecognizer) Stop() {
	f.recording = false
	f.stops++
}

func (f *fakeRecognizer) Recording() bool { return f.recording }

type fakeSynthesizer struct {
	speakingID string
	speaks     int
	cancels    int
}

func (f *fakeSynthesizer) Supported() bool { return true }

func (f *fakeSynthesizer) Speak(id, _ string, _ func(), _ func(string)) {
	f.speakingID = id
	f.speaks++
}

func (f *fakeSynthesizer) Cancel() {
	f.speakingID = ""
	f.cancels++
}

func (f *fakeSynthesizer) Speaking() bool { return f.speakingID != "" }

func (f *fakeSynthesizer) SpeakingID() string { return f.speakingID }

func TestUnsupportedRecognizer_SurfacesMessage(t *testing.T) {
	rec := UnsupportedRecognizer()

	if rec.Supported() {
		t.Error("Expected unsupported")
	}

	var got string
	rec.Start(nil, func(msg string) { got = msg })
	if got != RecognitionUnsupportedMessage {
		t.Errorf("Error = %q", got)
	}
	if rec.Recording() {
		t.Error("Expected no recording")
	}
}

func TestUnsupportedSynthesizer_SurfacesMessage(t *testing.T) {
	syn := UnsupportedSynthesizer()

	var got string
	syn.Speak("id", "hello", nil, func(msg string) { got = msg })
	if got != SynthesisUnsupportedMessage {
		t.Errorf("Error = %q", got)
	}
	if syn.Speaking() {
		t.Error("Expected no playback")
	}
}

func TestController_UnsupportedSurfacesThroughToggle(t *testing.T) {
	c := NewController(UnsupportedRecognizer(), UnsupportedSynthesizer())

	var recErr, synErr string
	c.ToggleRecording(nil, func(msg string) { recErr = msg })
	c.ToggleSpeak("id", "text", nil, func(msg string) { synErr = msg })

	if recErr != RecognitionUnsupportedMessage {
		t.Errorf("Recording error = %q", recErr)
	}
	if synErr != SynthesisUnsupportedMessage {
		t.Errorf("Speak error = %q", synErr)
	}
}

func TestController_RecordingCancelsPlayback(t *testing.T) {
	rec := &fakeRecognizer{}
	syn := &fakeSynthesizer{speakingID: "msg-1"}
	c := NewController(rec, syn)

	c.ToggleRecording(nil, nil)

	if syn.cancels != 1 {
		t.Errorf("Cancels = %d, want 1", syn.cancels)
	}
	if !rec.recording {
		t.Error("Expected capture started")
	}
}

func TestController_PlaybackStopsRecording(t *testing.T) {
	rec := &fakeRecognizer{recording: true}
	syn := &fakeSynthesizer{}
	c := NewController(rec, syn)

	c.ToggleSpeak("msg-1", "hello", nil, nil)

	if rec.stops != 1 {
		t.Errorf("Stops = %d, want 1", rec.stops)
	}
	if syn.SpeakingID() != "msg-1" {
		t.Errorf("SpeakingID = %q", syn.SpeakingID())
	}
}

func TestController_ToggleSpeakSameMessageStops(t *testing.T) {
	rec := &fakeRecognizer{}
	syn := &fakeSynthesizer{speakingID: "msg-1"}
	c := NewController(rec, syn)

	c.ToggleSpeak("msg-1", "hello", nil, nil)

	if syn.speaks != 0 {
		t.Errorf("Speaks = %d, want 0", syn.speaks)
	}
	if syn.Speaking() {
		t.Error("Expected playback stopped")
	}
}

func TestController_ToggleSpeakOtherMessageReplaces(t *testing.T) {
	rec := &fakeRecognizer{}
	syn := &fakeSynthesizer{speakingID: "msg-1"}
	c := NewController(rec, syn)

	c.ToggleSpeak("msg-2", "hello", nil, nil)

	if syn.cancels != 1 {
		t.Errorf("Cancels = %d, want 1", syn.cancels)
	}
	if syn.SpeakingID() != "msg-2" {
		t.Errorf("SpeakingID = %q", syn.SpeakingID())
	}
}

func TestController_ToggleRecordingStopsActiveCapture(t *testing.T) {
	rec := &fakeRecognizer{recording: true}
	c := NewController(rec, &fakeSynthesizer{})

	c.ToggleRecording(nil, nil)

	if rec.recording {
		t.Error("Expected capture stopped")
	}
	if rec.starts != 0 {
		t.Errorf("Starts = %d, want 0", rec.starts)
	}
}

func TestController_StopAll(t *testing.T) {
	rec := &fakeRecognizer{recording: true}
	syn := &fakeSynthesizer{speakingID: "msg-1"}
	c := NewController(rec, syn)

	c.StopAll()

	if rec.recording || syn.Speaking() {
		t.Error("Expected everything stopped")
	}
}
