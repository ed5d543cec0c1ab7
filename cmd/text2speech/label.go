package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thuhcsi/crystal-tts/doc"
	"github.com/thuhcsi/crystal-tts/engine"
	"github.com/thuhcsi/crystal-tts/hmm"
	"github.com/thuhcsi/crystal-tts/internal/debugdump"
	"github.com/thuhcsi/crystal-tts/stages"
)

func labelCmd() *cobra.Command {
	var inputKind string
	var dumpTree bool

	cmd := &cobra.Command{
		Use:   "label [text]",
		Short: "Run the annotation pipeline and print rendered HTS labels per sentence",
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

			if dumpTree {
				debugdump.Tree(os.Stdout, tree)
			}

			var sentences []doc.NodeRef
			doc.WalkTree(tree, func(t *doc.Tree, ref doc.NodeRef) bool {
				if t.Kind(ref) == doc.KindElement && t.Name(ref) == stages.ElS {
					sentences = append(sentences, ref)
					return true
				}
				return false
			}, nil)

			for i, s := range sentences {
				units := hmm.CollectSentenceUnits(tree, s)
				segs := hmm.BuildLabInfo(units)
				fmt.Printf("--- sentence %d ---\n", i)
				lines := make([]string, len(segs))
				for j, seg := range segs {
					lines[j] = seg.Label()
				}
				debugdump.Labels(os.Stdout, lines)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputKind, "input", "raw", "input kind: raw, partial-ssml, full-ssml")
	cmd.Flags().BoolVar(&dumpTree, "tree", false, "also dump the annotated document tree")
	return cmd
}
