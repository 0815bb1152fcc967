package main

import "github.com/gdamore/tcell/v2"

type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionInterrupt
	ActionNarrower
	ActionWider
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionPageUp
	ActionPageDown
	ActionEnd
	ActionHead
	ActionNextColumn
	ActionPrevColumn
	ActionClearColumn
	ActionHideColumn
	ActionShowColumns
)

type keyBinding struct {
	key tcell.Key
	r   rune
}

type KeyMap map[keyBinding]Action

func runeKey(r rune) keyBinding { return keyBinding{key: tcell.KeyRune, r: r} }

func specialKey(k tcell.Key) keyBinding { return keyBinding{key: k} }

func DefaultKeyMap() KeyMap {
	return KeyMap{
		runeKey('q'):                 ActionQuit,
		specialKey(tcell.KeyCtrlC):   ActionInterrupt,
		runeKey(','):                 ActionNarrower,
		runeKey('<'):                 ActionNarrower,
		runeKey('.'):                 ActionWider,
		runeKey('>'):                 ActionWider,
		specialKey(tcell.KeyLeft):    ActionLeft,
		specialKey(tcell.KeyRight):   ActionRight,
		specialKey(tcell.KeyUp):      ActionUp,
		runeKey('k'):                 ActionUp,
		specialKey(tcell.KeyDown):    ActionDown,
		runeKey('j'):                 ActionDown,
		specialKey(tcell.KeyPgUp):    ActionPageUp,
		specialKey(tcell.KeyPgDn):    ActionPageDown,
		runeKey('G'):                 ActionEnd,
		specialKey(tcell.KeyEnd):     ActionEnd,
		runeKey('g'):                 ActionHead,
		specialKey(tcell.KeyHome):    ActionHead,
		specialKey(tcell.KeyTab):     ActionNextColumn,
		specialKey(tcell.KeyBacktab): ActionPrevColumn,
		specialKey(tcell.KeyEscape):  ActionClearColumn,
		runeKey('h'):                 ActionHideColumn,
		runeKey('H'):                 ActionShowColumns,
	}
}

// Lookup returns the action bound to a key event, or ActionNone.
func (m KeyMap) Lookup(ev *tcell.EventKey) Action {
	b := specialKey(ev.Key())
	if ev.Key() == tcell.KeyRune {
		b = runeKey(ev.Rune())
	}
	return m[b]
}
