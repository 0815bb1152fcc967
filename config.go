package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/YLivay/tcol/log"
	"gopkg.in/yaml.v3"
)

type FileType string

const (
	FileTypeTSV   FileType = "tsv"
	FileTypeCSV   FileType = "csv"
	FileTypeVCF   FileType = "vcf"
	FileTypeSSV   FileType = "ssv"
	FileTypeWS    FileType = "ws"
	FileTypeJSONL FileType = "jsonl"
)

type preset struct {
	delimiter rune
	comments  []string
}

var presets = map[FileType]preset{
	FileTypeTSV:   {delimiter: '\t'},
	FileTypeCSV:   {delimiter: ','},
	FileTypeVCF:   {delimiter: '\t', comments: []string{"##"}},
	FileTypeSSV:   {delimiter: ' '},
	FileTypeWS:    {delimiter: '\t'},
	FileTypeJSONL: {delimiter: '\t'},
}

const defaultChunkSize = 2000

type Config struct {
	// Path of the input file. Empty or "-" reads stdin.
	InputPath string `yaml:"-"`

	FileType FileType `yaml:"type"`
	// Drop empty fields, so runs of delimiters count as one.
	CollapseDelimiters bool `yaml:"collapse_delimiters"`
	// Upper bound for automatically sized columns. 0 means unbounded.
	MaxColumnWidth int `yaml:"max_column_width"`
	// Extra comment prefixes on top of the file type's own.
	CommentPrefixes []string `yaml:"comment_prefixes"`
	// Show only the first sub-line of every record.
	HideOverflow bool `yaml:"hide_overflow"`
	// How many records to read whenever scrolling runs short of data.
	ChunkSize int `yaml:"chunk_size"`
	// jq query projecting JSON lines into fields.
	Query string `yaml:"query"`

	FreezeRows  int `yaml:"freeze_rows"`
	FreezeChars int `yaml:"freeze_chars"`
}

func DefaultConfig() *Config {
	return &Config{
		FileType:  FileTypeTSV,
		ChunkSize: defaultChunkSize,
	}
}

// LoadConfig builds the configuration from the config file, if any, and then
// the command line arguments, which take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := DefaultConfig()

	path, required := configFilePath()
	if path != "" {
		if err := loadConfigFile(path, cfg, required); err != nil {
			return nil, err
		}
	}

	if err := parseArgs(args, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configFilePath returns $TCOL_CONFIG, which must exist, or the optional
// per-user config file.
func configFilePath() (path string, required bool) {
	if path := os.Getenv("TCOL_CONFIG"); path != "" {
		return path, true
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "tcol", "config.yaml"), false
}

func loadConfigFile(path string, cfg *Config, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	log.Debugf("Loaded config file %s", path)
	return nil
}

type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func parseArgs(args []string, cfg *Config) error {
	flags := flag.NewFlagSet("tcol", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: tcol [flags] [file]")
		flags.PrintDefaults()
	}

	flags.StringVar((*string)(&cfg.FileType), "t", string(cfg.FileType), "file type: tsv|csv|vcf|ssv|ws|jsonl")
	flags.BoolVar(&cfg.CollapseDelimiters, "C", cfg.CollapseDelimiters, "treat consecutive delimiters as one")
	flags.IntVar(&cfg.MaxColumnWidth, "w", cfg.MaxColumnWidth, "maximum automatic column width (0 = unbounded)")
	flags.Var((*stringList)(&cfg.CommentPrefixes), "c", "comment prefix, may be repeated")
	flags.BoolVar(&cfg.HideOverflow, "H", cfg.HideOverflow, "do not wrap long cells")
	flags.IntVar(&cfg.ChunkSize, "chunk", cfg.ChunkSize, "records to read per chunk")
	flags.StringVar(&cfg.Query, "q", cfg.Query, "jq query projecting each JSON line into fields (jsonl only)")
	flags.IntVar(&cfg.FreezeRows, "freeze-rows", cfg.FreezeRows, "number of leading records pinned under the header")
	flags.IntVar(&cfg.FreezeChars, "freeze-chars", cfg.FreezeChars, "number of leading characters pinned on the left")

	if err := flags.Parse(args); err != nil {
		return err
	}

	switch flags.NArg() {
	case 0:
	case 1:
		cfg.InputPath = flags.Arg(0)
	default:
		return fmt.Errorf("expected at most one input file, got %d", flags.NArg())
	}

	return nil
}

func (c *Config) Validate() error {
	if _, ok := presets[c.FileType]; !ok {
		return fmt.Errorf("unknown file type %q", c.FileType)
	}
	if c.MaxColumnWidth < 0 {
		return fmt.Errorf("max column width must not be negative, got %d", c.MaxColumnWidth)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.FreezeRows < 0 || c.FreezeChars < 0 {
		return errors.New("freeze sizes must not be negative")
	}
	if c.Query != "" && c.FileType != FileTypeJSONL {
		log.Warnf("Ignoring jq query for file type %s", c.FileType)
	}
	return nil
}

func (c *Config) Delimiter() rune {
	return presets[c.FileType].delimiter
}

// Whitespace reports whether fields are further split on spaces.
func (c *Config) Whitespace() bool {
	return c.FileType == FileTypeWS
}

// Comments returns the file type's comment prefixes followed by the
// configured ones, without duplicates or empty prefixes.
func (c *Config) Comments() []string {
	var prefixes []string
	for _, p := range append(slices.Clone(presets[c.FileType].comments), c.CommentPrefixes...) {
		if p != "" && !slices.Contains(prefixes, p) {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

func (c *Config) Freeze() FreezeBounds {
	bounds := NoFreeze()
	if c.FreezeRows > 0 {
		bounds.RowStart, bounds.RowEnd = 0, c.FreezeRows-1
	}
	if c.FreezeChars > 0 {
		bounds.ColStart, bounds.ColEnd = 0, c.FreezeChars-1
	}
	return bounds
}

func (c *Config) String() string {
	return fmt.Sprintf("file=%q type=%s collapse=%v max-width=%d comments=%q hide-overflow=%v chunk=%d",
		c.InputPath, c.FileType, c.CollapseDelimiters, c.MaxColumnWidth, c.Comments(), c.HideOverflow, c.ChunkSize)
}
