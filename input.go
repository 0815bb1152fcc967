package main

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/YLivay/tcol/log"
	"github.com/YLivay/tcol/reader"
	"golang.org/x/term"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var gzipMagic = []byte{0x1f, 0x8b}

// openInput opens the file at path, or stdin for "" and "-". Gzipped input is
// decompressed and a leading byte order mark is dropped, with UTF-16 input
// converted to UTF-8.
func openInput(path string) (input io.Reader, cleanup func(), err error) {
	// As resources are created in this function, accumulate functions to clean
	// them up in this slice.
	var deferredCleanups []func()
	cleanup = func() {
		// Invoke deferredCleanups in reverse order.
		for i := len(deferredCleanups) - 1; i >= 0; i-- {
			deferredCleanups[i]()
		}
	}

	var src io.Reader
	if path == "" || path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("no input file given and stdin is a terminal")
		}
		log.Infof("Reading records from stdin")
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open input file: %w", err)
		}
		deferredCleanups = append(deferredCleanups, func() {
			if err := f.Close(); err != nil {
				log.Warnf("Failed to close input file: %v", err)
			}
		})
		src = f
	}

	buffered := bufio.NewReaderSize(src, 64*1024)
	src = buffered
	if magic, err := buffered.Peek(len(gzipMagic)); err == nil && string(magic) == string(gzipMagic) {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to open gzipped input: %w", err)
		}
		log.Infof("Input is gzipped, decompressing")
		deferredCleanups = append(deferredCleanups, func() { gz.Close() })
		src = gz
	}

	input = transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return input, cleanup, nil
}

func newScanner(cfg *Config, input io.Reader) (reader.Scanner, error) {
	if cfg.FileType == FileTypeJSONL {
		return reader.NewJSONLScanner(input, cfg.Query, cfg.Comments())
	}
	return reader.NewDelimitedScanner(input, cfg.Delimiter()), nil
}
