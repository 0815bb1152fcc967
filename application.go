package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/YLivay/tcol/log"
	"github.com/gdamore/tcell/v2"
)

// ErrInterrupted is returned when the user interrupts the viewer.
var ErrInterrupted = errors.New("interrupted")

type Application struct {
	session *Session
	screen  tcell.Screen
	keys    KeyMap
	styles  styles

	// Events polled from the screen.
	events chan tcell.Event
	// Events received while a long read was running, handled before polling
	// again.
	pending []tcell.Event
}

func NewApplication(session *Session, screen tcell.Screen) *Application {
	return &Application{
		session: session,
		screen:  screen,
		keys:    DefaultKeyMap(),
		styles:  defaultStyles(),
		events:  make(chan tcell.Event),
	}
}

// Run reads the first chunk of records, sets up the screen and handles events
// until the user quits or ctx is cancelled. The screen is always restored
// before Run returns or panics.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancelCtx := context.WithCancel(ctx)
	defer cancelCtx()

	if _, err := a.session.buffer.Read(ctx, a.session.cfg.ChunkSize); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}

	quit := func() {
		// You have to catch panics in a defer, clean up, and
		// re-raise them - otherwise your application can
		// die without leaving any diagnostic trace.
		maybePanic := recover()
		a.screen.Fini()
		if maybePanic != nil {
			panic(maybePanic)
		}
	}
	defer quit()

	a.screen.EnableMouse()
	go a.pollEvents(ctx)

	for {
		a.draw()

		ev, err := a.nextEvent(ctx)
		if err != nil {
			return err
		}

		done, err := a.handleEvent(ctx, ev)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (a *Application) pollEvents(ctx context.Context) {
	for {
		// PollEvent returns nil once the screen is finalized.
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case a.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (a *Application) nextEvent(ctx context.Context) (tcell.Event, error) {
	if len(a.pending) > 0 {
		ev := a.pending[0]
		a.pending = a.pending[1:]
		return ev, nil
	}

	select {
	case ev := <-a.events:
		return ev, nil
	case <-ctx.Done():
		if cause := context.Cause(ctx); errors.Is(cause, ErrInterrupted) {
			return nil, cause
		}
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
}

func (a *Application) draw() {
	width, height := a.screen.Size()
	frame := a.session.renderer.Render(width, height)
	drawFrame(a.screen, frame, a.styles)
	a.screen.Show()
}

func (a *Application) handleEvent(ctx context.Context, ev tcell.Event) (done bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			log.Debugf("Ignoring click at %d,%d", x, y)
		}
	case *tcell.EventKey:
		return a.perform(ctx, a.keys.Lookup(ev))
	}
	return false, nil
}

func (a *Application) perform(ctx context.Context, action Action) (done bool, err error) {
	view := a.session.view
	width, height := a.screen.Size()

	switch action {
	case ActionQuit:
		return true, nil
	case ActionInterrupt:
		return true, ErrInterrupted
	case ActionNarrower:
		view.ChangeActiveColumnWidth(-1)
	case ActionWider:
		view.ChangeActiveColumnWidth(1)
	case ActionLeft:
		view.MoveHorizontal(-HorizontalStride)
	case ActionRight:
		view.MoveHorizontal(HorizontalStride)
	case ActionUp:
		err = view.MoveVertical(ctx, -1)
	case ActionDown:
		err = view.MoveVertical(ctx, 1)
	case ActionPageUp:
		err = view.MoveVertical(ctx, -view.PageSize(BodyHeight(height)))
	case ActionPageDown:
		err = view.MoveVertical(ctx, view.PageSize(BodyHeight(height)))
	case ActionEnd:
		err = a.moveToEnd(ctx)
	case ActionHead:
		view.MoveToHead()
	case ActionNextColumn:
		view.SelectNextColumn(1)
		view.RevealColumn(width)
	case ActionPrevColumn:
		view.SelectNextColumn(-1)
		view.RevealColumn(width)
	case ActionClearColumn:
		view.ClearActiveColumn()
	case ActionHideColumn:
		view.HideActiveColumn()
		view.RevealColumn(width)
	case ActionShowColumns:
		view.ShowAllColumns()
	}

	if err != nil {
		if ctx.Err() != nil {
			// Reported by nextEvent.
			return false, nil
		}
		return false, fmt.Errorf("failed to scroll: %w", err)
	}
	return false, nil
}

// moveToEnd reads the rest of the input, which may take a while. A key press
// in the meantime stops the read; the key is then handled as usual and the
// view shows the last record read so far.
func (a *Application) moveToEnd(ctx context.Context) error {
	readCtx, cancelRead := context.WithCancel(ctx)
	defer cancelRead()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case ev := <-a.events:
				a.pending = append(a.pending, ev)
				if _, ok := ev.(*tcell.EventKey); ok {
					log.Debugf("Key pressed, stopping the read")
					cancelRead()
				}
			case <-done:
				return
			}
		}
	}()

	err := a.session.view.MoveToEnd(readCtx)
	close(done)
	wg.Wait()

	if err != nil && readCtx.Err() != nil && ctx.Err() == nil {
		// Stopped by a key press.
		return nil
	}
	return err
}
