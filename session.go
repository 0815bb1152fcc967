package main

import "github.com/YLivay/tcol/reader"

// Session ties together everything one run of the viewer works on. It is
// built once, before the screen is set up, and every component reaches the
// others through it.
type Session struct {
	cfg    *Config
	freeze FreezeBounds

	columns  *ColumnLayout
	buffer   *Buffer
	view     *Viewport
	renderer *Renderer
}

func NewSession(cfg *Config, scanner reader.Scanner) *Session {
	s := &Session{
		cfg:     cfg,
		freeze:  cfg.Freeze(),
		columns: NewColumnLayout(cfg.MaxColumnWidth),
	}
	s.buffer = newBuffer(s, scanner)
	s.view = newViewport(s)
	s.renderer = &Renderer{session: s}
	return s
}
