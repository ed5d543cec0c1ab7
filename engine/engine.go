// Package engine is the top-level entry point realizing §6.1/§6.6's
// callable surface: Initialize loads the lexicon and HMM voice once, then
// Process and Synthesize run the twelve pipeline stages per utterance.
package engine

import (
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
	"github.com/thuhcsi/crystal-tts/errs"
	"github.com/thuhcsi/crystal-tts/hmm"
	"github.com/thuhcsi/crystal-tts/lexicon"
	"github.com/thuhcsi/crystal-tts/stages"
)

// InputKind selects how Process interprets raw input text (§6.1).
type InputKind = stages.InputKind

const (
	InputRaw         = stages.InputRaw
	InputPartialSSML = stages.InputPartialSSML
	InputFullSSML    = stages.InputFullSSML
)

// ModuleConfig is the root of the Module Config File (§6.4): an XML document
// naming the stage dynamic libraries (kept for schema fidelity; this build
// is static), the lexicon data location, and the HMM model location.
type ModuleConfig struct {
	XMLName xml.Name `xml:"modules"`
	Lang    string   `xml:"lang,attr"`
	DLibs   []struct {
		File string `xml:"file,attr"`
	} `xml:"dlib"`
	TextData struct {
		Path     string `xml:"path,attr"`
		LoadData bool   `xml:"loaddata,attr"`
	} `xml:"textdata"`
	VoiceData struct {
		Path string `xml:"path,attr"`
	} `xml:"voicedata"`
}

func loadModuleConfig(path string) (*ModuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ConfigOpenFailed, err, "reading module config %s", path)
	}
	var cfg ModuleConfig
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.Wrap(errs.ConfigOpenFailed, err, "parsing module config %s", path)
	}
	return &cfg, nil
}

// Engine holds the engine instance's loaded-once resources: the lexicon,
// the HMM voice, and the module config it was opened with.
type Engine struct {
	cfg    *ModuleConfig
	lex    lexicon.Lexicon
	hmmEng hmm.Engine
	logger zerolog.Logger
}

// Initialize loads the module config, lexicon, and HMM voice (§6.1's
// `initialize`). Model and lexicon loading happen here, once, never again
// during Process/Synthesize (§5's resource policy).
func Initialize(ctx context.Context, configPath string) (*Engine, error) {
	cfg, err := loadModuleConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "engine").Logger()

	var lex lexicon.Lexicon
	if cfg.TextData.Path != "" && cfg.TextData.LoadData {
		store, err := lexicon.OpenSQLStore(cfg.TextData.Path)
		if err != nil {
			return nil, errs.Wrap(errs.DataLoadFailed, err, "opening lexicon store %s", cfg.TextData.Path)
		}
		lex = store
	} else {
		lex = lexicon.NewMemStore()
	}

	hmmEng := hmm.NewNullEngine()
	if cfg.VoiceData.Path != "" {
		if err := hmmEng.Open(cfg.VoiceData.Path, "engine.cfg"); err != nil {
			return nil, errs.Wrap(errs.DataLoadFailed, err, "opening voice data %s", cfg.VoiceData.Path)
		}
	}

	return &Engine{cfg: cfg, lex: lex, hmmEng: hmmEng, logger: logger}, nil
}

// Process runs the annotation-pipeline stages (§4.1–§4.11) in order,
// returning the fully-annotated document tree ready for Synthesize.
func (e *Engine) Process(ctx context.Context, input string, kind InputKind) (*doc.Tree, error) {
	tree, err := stages.PreProcess(input, kind, e.cfg.Lang, e.logger)
	if err != nil {
		return nil, err
	}

	stages.LangConvert(tree, nil, e.logger) // identity: no script-conversion table configured
	stages.TextSegment(tree, e.logger)
	stages.DocStruct(tree, e.logger)
	stages.TextNormalize(tree, stages.DefaultExpanders, e.logger)
	stages.WordSegment(tree, e.lex, e.logger)
	stages.ProsStructGen(tree, stages.BaseDecider, e.logger)
	stages.Grapheme2Phoneme(tree, e.lex, e.logger)
	stages.UnitSegment(tree, e.logger)
	stages.ProsodyPredict(tree, e.logger)

	return tree, nil
}

// SynthConfig carries the global prosody knobs for Synthesize (§4.12.6).
type SynthConfig struct {
	SpeedRate         float64
	VolumeRate        float64
	PitchRatio        float64 // half_tone = 12*log2(PitchRatio)
	UsePhoneAlignment bool
}

// UnitTiming is one unit's synthesized timing (§6.1's `timings`).
type UnitTiming struct {
	UnitRef doc.NodeRef
	StartMs int
	EndMs   int
}

// SynthResult is Synthesize's output: the waveform plus per-unit timings.
type SynthResult struct {
	Audio      []int16
	SampleRate uint32
	Timings    []UnitTiming
}

// Synthesize runs §4.12: builds HTS context labels per sentence, invokes
// the HMM engine, and sums per-segment durations back onto each owning
// unit's prosody.
func (e *Engine) Synthesize(ctx context.Context, tree *doc.Tree, cfg SynthConfig) (*SynthResult, error) {
	var sentences []doc.NodeRef
	doc.WalkTree(tree, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindElement && t.Name(ref) == stages.ElS {
			sentences = append(sentences, ref)
			return true
		}
		return false
	}, nil)

	halfTone := 0.0
	if cfg.PitchRatio > 0 {
		halfTone = 12 * math.Log2(cfg.PitchRatio)
	}
	synthCfg := hmm.SynthCfg{
		UsePhoneAlignment: cfg.UsePhoneAlignment,
		VolumeRate:        cfg.VolumeRate,
		SpeedRate:         cfg.SpeedRate,
		HalfTone:          halfTone,
	}

	result := &SynthResult{SampleRate: e.hmmEng.SampleRate()}
	for _, s := range sentences {
		units := hmm.CollectSentenceUnits(tree, s)
		segs := hmm.BuildLabInfo(units)
		if len(segs) == 0 {
			continue
		}

		buf := hmm.RenderLabelBuffer(segs)
		out, err := e.hmmEng.Synthesize(buf, synthCfg)
		if err != nil {
			return nil, errs.Wrap(errs.ReadFault, err, "hmm synth failed")
		}
		if len(out.WavSamples) == 0 && len(out.SegBegTicks) == 0 {
			return nil, errs.New(errs.ReadFault, "hmm engine returned empty waveform")
		}
		result.Audio = append(result.Audio, out.WavSamples...)

		unitRefs := unitNodeRefs(tree, s)
		accumulateUnitTimings(tree, segs, out, unitRefs, result)
	}
	return result, nil
}

// Close releases the lexicon and HMM voice (§5's resource policy).
func (e *Engine) Close() error {
	if closer, ok := e.lex.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return e.hmmEng.Close()
}

func unitNodeRefs(t *doc.Tree, sentence doc.NodeRef) []doc.NodeRef {
	var refs []doc.NodeRef
	for _, c := range t.Children(sentence) {
		if t.Kind(c) != doc.KindElement || t.Name(c) != stages.ElW {
			continue
		}
		for _, u := range t.Children(c) {
			if t.Kind(u) == doc.KindElement && t.Name(u) == stages.ElUnit {
				refs = append(refs, u)
			}
		}
	}
	return refs
}

// accumulateUnitTimings walks the flat segment stream, grouping consecutive
// segments that belong to the same syllable (SegPos2SylHead==1 opens a
// group, SegPos2SylTail==1 closes it) back onto the next owning unit in
// document order; "sil" segments belong to no unit and are skipped.
func accumulateUnitTimings(t *doc.Tree, segs []*hmm.SegInfo, out hmm.SynthOut, unitRefs []doc.NodeRef, result *SynthResult) {
	const ticksPerMs = 10000
	ui := 0
	var begTick, endTick int64
	open := false

	for i, seg := range segs {
		if i >= len(out.SegBegTicks) {
			break
		}
		if seg.SegPos2SylHead == 1 {
			begTick = out.SegBegTicks[i]
			open = true
		}
		if !open {
			continue
		}
		endTick = out.SegEndTicks[i]
		if seg.SegPos2SylTail == 1 && ui < len(unitRefs) {
			startMs := int(begTick / ticksPerMs)
			endMs := int(endTick / ticksPerMs)
			result.Timings = append(result.Timings, UnitTiming{UnitRef: unitRefs[ui], StartMs: startMs, EndMs: endMs})
			t.SetAttr(unitRefs[ui], "dur", fmt.Sprintf("%d", endMs-startMs))
			ui++
			open = false
		}
	}
}
