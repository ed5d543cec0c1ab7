package hmm

import "strings"

// SynthCfg carries the global prosody knobs passed to the HMM engine
// alongside the label buffer (§4.12.6/§6.3).
type SynthCfg struct {
	UsePhoneAlignment bool
	VolumeRate        float64
	SpeedRate         float64
	HalfTone          float64 // 12*log2(pitch ratio)
	OutDurPath        string
	OutRawPath        string
	OutWavPath        string
}

// SynthOut is the HMM engine's synthesis result: 16-bit PCM samples plus,
// per label line in order, its begin/end time in 100ns ticks (§4.12.6).
type SynthOut struct {
	WavSamples  []int16
	SegBegTicks []int64
	SegEndTicks []int64
}

// Engine synthesizes a rendered HTS label buffer into a waveform (§6.3). A
// concrete engine wraps an HTS voice's duration, F0, and spectrum decision
// trees and PDFs; the pipeline depends only on this interface, so swapping
// voices or backends never touches label construction.
type Engine interface {
	Open(modelDir, configFilename string) error
	Synthesize(labelBuffer string, cfg SynthCfg) (SynthOut, error)
	SampleRate() uint32
	Close() error
}

// RenderLabelBuffer concatenates a sentence's segment labels into the
// single buffer the engine expects (§4.12.6).
func RenderLabelBuffer(segs []*SegInfo) string {
	lines := make([]string, len(segs))
	for i, s := range segs {
		lines[i] = s.Label()
	}
	return strings.Join(lines, "\n")
}

// NullEngine renders no audio. It opens without touching the filesystem and
// returns zero-length silence with a uniform tick per label, for exercising
// and tracing the label pipeline without a voice (§2.2).
type NullEngine struct {
	sampleRate uint32
}

func NewNullEngine() *NullEngine { return &NullEngine{sampleRate: 16000} }

func (e *NullEngine) Open(modelDir, configFilename string) error { return nil }

func (e *NullEngine) Synthesize(labelBuffer string, cfg SynthCfg) (SynthOut, error) {
	lines := strings.Split(labelBuffer, "\n")
	out := SynthOut{
		SegBegTicks: make([]int64, len(lines)),
		SegEndTicks: make([]int64, len(lines)),
	}
	const tickPerLabel int64 = 500_0000 // 500ms placeholder duration per label
	var t int64
	for i := range lines {
		out.SegBegTicks[i] = t
		t += tickPerLabel
		out.SegEndTicks[i] = t
	}
	return out, nil
}

func (e *NullEngine) SampleRate() uint32 { return e.sampleRate }

func (e *NullEngine) Close() error { return nil }
