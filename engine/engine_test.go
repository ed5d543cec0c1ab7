package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadModuleConfigParsesXML(t *testing.T) {
	xml := `<modules lang="cmn">
  <dlib file="libpreprocess.so"/>
  <dlib file="libhmmsynth.so"/>
  <textdata path="lexicon.db" loaddata="true"/>
  <voicedata path="voice/"/>
</modules>`

	dir := t.TempDir()
	path := filepath.Join(dir, "engine.cfg")
	require.NoError(t, os.WriteFile(path, []byte(xml), 0o644))

	cfg, err := loadModuleConfig(path)
	require.NoError(t, err)
	require.Equal(t, "cmn", cfg.Lang)
	require.Len(t, cfg.DLibs, 2)
	require.Equal(t, "libpreprocess.so", cfg.DLibs[0].File)
	require.Equal(t, "lexicon.db", cfg.TextData.Path)
	require.True(t, cfg.TextData.LoadData)
	require.Equal(t, "voice/", cfg.VoiceData.Path)
}

func TestLoadModuleConfigMissingFile(t *testing.T) {
	_, err := loadModuleConfig("/nonexistent/engine.cfg")
	require.Error(t, err)
}
