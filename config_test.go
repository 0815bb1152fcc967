package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfig points the config file lookup at an empty directory.
func isolateConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("TCOL_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, '\t', cfg.Delimiter())
	assert.Empty(t, cfg.Comments())
	assert.Equal(t, NoFreeze(), cfg.Freeze())
}

func TestLoadConfig_Flags(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig([]string{
		"-t", "csv", "-C", "-w", "20", "-c", "#", "-c", "//", "-H",
		"-chunk", "10", "-freeze-rows", "1", "-freeze-chars", "3",
		"data.csv",
	})
	require.NoError(t, err)

	assert.Equal(t, &Config{
		InputPath:          "data.csv",
		FileType:           FileTypeCSV,
		CollapseDelimiters: true,
		MaxColumnWidth:     20,
		CommentPrefixes:    []string{"#", "//"},
		HideOverflow:       true,
		ChunkSize:          10,
		FreezeRows:         1,
		FreezeChars:        3,
	}, cfg)
	assert.Equal(t, ',', cfg.Delimiter())
	assert.Equal(t, FreezeBounds{RowStart: 0, RowEnd: 0, ColStart: 0, ColEnd: 2}, cfg.Freeze())
}

func TestLoadConfig_Errors(t *testing.T) {
	isolateConfig(t)

	for name, args := range map[string][]string{
		"unknown type":     {"-t", "xml"},
		"negative width":   {"-w", "-1"},
		"zero chunk":       {"-chunk", "0"},
		"negative freeze":  {"-freeze-rows", "-2"},
		"two files":        {"a.tsv", "b.tsv"},
		"unknown flag":     {"-nope"},
		"non numeric flag": {"-w", "wide"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(args)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_Help(t *testing.T) {
	isolateConfig(t)

	_, err := LoadConfig([]string{"-h"})
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	isolateConfig(t)

	path := createTestFile(t, "config.yaml", `
type: vcf
collapse_delimiters: true
max_column_width: 30
comment_prefixes: ["#"]
chunk_size: 500
freeze_rows: 2
`)
	t.Setenv("TCOL_CONFIG", path)

	cfg, err := LoadConfig([]string{"-chunk", "50"})
	require.NoError(t, err)

	assert.Equal(t, FileTypeVCF, cfg.FileType)
	assert.True(t, cfg.CollapseDelimiters)
	assert.Equal(t, 30, cfg.MaxColumnWidth)
	assert.Equal(t, []string{"##", "#"}, cfg.Comments())
	assert.Equal(t, 2, cfg.FreezeRows)
	// Flags win over the file.
	assert.Equal(t, 50, cfg.ChunkSize)
}

func TestLoadConfig_RepeatedCommentFlagsAddToConfigFile(t *testing.T) {
	isolateConfig(t)

	t.Setenv("TCOL_CONFIG", createTestFile(t, "config.yaml", "comment_prefixes: [\"#\"]\n"))

	cfg, err := LoadConfig([]string{"-c", "%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#", "%"}, cfg.Comments())
}

func TestLoadConfig_UserConfigFile(t *testing.T) {
	dir := isolateConfig(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tcol"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tcol", "config.yaml"), []byte("type: ssv\n"), 0644))

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, FileTypeSSV, cfg.FileType)
	assert.Equal(t, ' ', cfg.Delimiter())
}

func TestLoadConfig_MissingExplicitConfigFile(t *testing.T) {
	dir := isolateConfig(t)
	t.Setenv("TCOL_CONFIG", filepath.Join(dir, "missing.yaml"))

	_, err := LoadConfig(nil)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadConfig_MalformedConfigFile(t *testing.T) {
	isolateConfig(t)
	t.Setenv("TCOL_CONFIG", createTestFile(t, "config.yaml", "max_column_width: [1, 2\n"))

	_, err := LoadConfig(nil)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestConfig_Presets(t *testing.T) {
	for fileType, want := range map[FileType]rune{
		FileTypeTSV:   '\t',
		FileTypeCSV:   ',',
		FileTypeVCF:   '\t',
		FileTypeSSV:   ' ',
		FileTypeWS:    '\t',
		FileTypeJSONL: '\t',
	} {
		cfg := DefaultConfig()
		cfg.FileType = fileType
		require.NoError(t, cfg.Validate())
		assert.Equal(t, want, cfg.Delimiter(), "delimiter of %s", fileType)
		assert.Equal(t, fileType == FileTypeWS, cfg.Whitespace(), "whitespace of %s", fileType)
	}
}

func TestConfig_CommentsAreDeduplicated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FileType = FileTypeVCF
	cfg.CommentPrefixes = []string{"##", "", "#", "#"}

	assert.Equal(t, []string{"##", "#"}, cfg.Comments())
}
