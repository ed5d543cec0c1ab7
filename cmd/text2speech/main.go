// Command text2speech drives the engine from the shell: synthesize SSML or
// raw text to a wav file, dump rendered HTS labels for a document, or build
// a lexicon store from a jieba-backed seed corpus.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "text2speech",
		Short: "Mandarin text-to-speech engine",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "module config file (§6.4 XML)")
	viper.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	viper.SetEnvPrefix("TEXT2SPEECH")
	viper.AutomaticEnv()

	root.AddCommand(synthCmd(), labelCmd(), lexCmd())
	return root
}
