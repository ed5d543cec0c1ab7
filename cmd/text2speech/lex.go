package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thuhcsi/crystal-tts/lexicon"
)

func lexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lex",
		Short: "Lexicon store maintenance",
	}
	cmd.AddCommand(lexBuildCmd())
	return cmd
}

func lexBuildCmd() *cobra.Command {
	var dictDir, hmmModel, userDict, idf, stopWords, corpusPath, dbPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Seed a sqlite lexicon store from a corpus via jieba's bundled dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(corpusPath)
			if err != nil {
				return fmt.Errorf("reading corpus: %w", err)
			}

			src := lexicon.NewJiebaSource(dictDir, hmmModel, userDict, idf, stopWords)
			defer src.Close()
			entries := src.Seed(string(text))

			store, err := lexicon.OpenSQLStore(dbPath)
			if err != nil {
				return fmt.Errorf("opening lexicon db: %w", err)
			}
			defer store.Close()

			for surface, e := range entries {
				if err := store.Insert(surface, e); err != nil {
					return fmt.Errorf("inserting %q: %w", surface, err)
				}
			}
			if err := store.Reindex(); err != nil {
				return err
			}

			fmt.Printf("seeded %d words into %s\n", len(entries), dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dictDir, "dict-dir", "", "jieba dictionary directory")
	cmd.Flags().StringVar(&hmmModel, "hmm-model", "", "jieba HMM segmentation model path")
	cmd.Flags().StringVar(&userDict, "user-dict", "", "jieba user dictionary path")
	cmd.Flags().StringVar(&idf, "idf", "", "jieba IDF path")
	cmd.Flags().StringVar(&stopWords, "stop-words", "", "jieba stop words path")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "path to a plain-text seed corpus")
	cmd.Flags().StringVarP(&dbPath, "out", "o", "lexicon.db", "output sqlite database path")
	cmd.MarkFlagRequired("corpus")
	return cmd
}
