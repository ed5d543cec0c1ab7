package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thuhcsi/crystal-tts/engine"
)

func synthCmd() *cobra.Command {
	var inputKind string
	var speedRate, volumeRate, pitchRatio float64
	var outPath string

	cmd := &cobra.Command{
		Use:   "synth [text]",
		Short: "Run the full pipeline and write a wav file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := engine.Initialize(cmd.Context(), viper.GetString("config"))
			if err != nil {
				return err
			}
			defer eng.Close()

			kind, err := parseInputKind(inputKind)
			if err != nil {
				return err
			}

			tree, err := eng.Process(cmd.Context(), args[0], kind)
			if err != nil {
				return fmt.Errorf("process: %w", err)
			}

			result, err := eng.Synthesize(cmd.Context(), tree, engine.SynthConfig{
				SpeedRate:  speedRate,
				VolumeRate: volumeRate,
				PitchRatio: pitchRatio,
			})
			if err != nil {
				return fmt.Errorf("synthesize: %w", err)
			}

			return writeWav(outPath, result.Audio, result.SampleRate)
		},
	}

	cmd.Flags().StringVar(&inputKind, "input", "raw", "input kind: raw, partial-ssml, full-ssml")
	cmd.Flags().Float64Var(&speedRate, "speed", 1.0, "speed rate")
	cmd.Flags().Float64Var(&volumeRate, "volume", 1.0, "volume rate")
	cmd.Flags().Float64Var(&pitchRatio, "pitch", 1.0, "pitch ratio (1.0 = unchanged)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "out.wav", "output wav path")
	return cmd
}

func parseInputKind(s string) (engine.InputKind, error) {
	switch s {
	case "raw":
		return engine.InputRaw, nil
	case "partial-ssml":
		return engine.InputPartialSSML, nil
	case "full-ssml":
		return engine.InputFullSSML, nil
	default:
		return 0, fmt.Errorf("unknown input kind %q", s)
	}
}

// writeWav writes 16-bit mono PCM samples as a canonical wav file. No pack
// example carries an audio/wav library, so this is a minimal stdlib
// encoding/binary writer rather than a hand-rolled codec: the format itself
// (RIFF/WAVE with one fmt and one data chunk) is fixed and small enough that
// a dependency would buy nothing beyond what binary.Write already gives.
func writeWav(path string, samples []int16, sampleRate uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := uint16(numChannels * bitsPerSample / 8)
	dataSize := uint32(len(samples) * 2)

	write := func(v interface{}) error { return binary.Write(f, binary.LittleEndian, v) }

	if _, err := f.WriteString("RIFF"); err != nil {
		return err
	}
	if err := write(uint32(36 + dataSize)); err != nil {
		return err
	}
	if _, err := f.WriteString("WAVEfmt "); err != nil {
		return err
	}
	if err := write(uint32(16)); err != nil {
		return err
	}
	if err := write(uint16(1)); err != nil { // PCM
		return err
	}
	if err := write(uint16(numChannels)); err != nil {
		return err
	}
	if err := write(sampleRate); err != nil {
		return err
	}
	if err := write(byteRate); err != nil {
		return err
	}
	if err := write(blockAlign); err != nil {
		return err
	}
	if err := write(uint16(bitsPerSample)); err != nil {
		return err
	}
	if _, err := f.WriteString("data"); err != nil {
		return err
	}
	if err := write(dataSize); err != nil {
		return err
	}
	return write(samples)
}
