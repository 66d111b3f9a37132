package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-amp/amp/param"
)

// keyStep is the normalized change per key press.
const keyStep = 0.05

type action int

const (
	actionNone action = iota
	actionChanged
	actionQuit
	actionSave
	actionToggle
)

type binding struct {
	id    param.ID
	delta float64
}

// Lower case moves a control down, upper case moves it up.
var bindings = map[byte]binding{
	'i': {param.InputGain, -keyStep}, 'I': {param.InputGain, keyStep},
	'd': {param.Drive, -keyStep}, 'D': {param.Drive, keyStep},
	'b': {param.Bass, -keyStep}, 'B': {param.Bass, keyStep},
	'm': {param.Mid, -keyStep}, 'M': {param.Mid, keyStep},
	't': {param.Treble, -keyStep}, 'T': {param.Treble, keyStep},
	'x': {param.CabinetMix, -keyStep}, 'X': {param.CabinetMix, keyStep},
	'o': {param.OutputGain, -keyStep}, 'O': {param.OutputGain, keyStep},
}

const help = `keys: i/I input  d/D drive  b/B bass  m/M mid  t/T treble
      x/X cabinet mix  o/O output  1-5 cabinet  0 defaults
      space pause  s save preset  q quit`

// handleKey applies one key press to store.
func handleKey(store *param.Store, key byte) action {
	switch {
	case key == 'q' || key == 3: // Ctrl-C arrives as a byte in raw mode.
		return actionQuit
	case key == 's':
		return actionSave
	case key == ' ':
		return actionToggle
	case key == '0':
		store.ResetDefaults()
		return actionChanged
	case key >= '1' && key <= '9':
		idx := int(key - '1')
		if idx >= len(param.CabinetChoices) {
			return actionNone
		}

		store.SetPlain(param.Cabinet, float64(idx))

		return actionChanged
	}

	b, ok := bindings[key]
	if !ok {
		return actionNone
	}

	store.SetID(b.id, store.GetID(b.id)+b.delta)

	return actionChanged
}

// status renders every parameter on one line.
func status(store *param.Store) string {
	var sb strings.Builder

	for i, d := range param.Layout() {
		if i > 0 {
			sb.WriteString("  ")
		}

		fmt.Fprintf(&sb, "%s %s", d.Label, d.Format(store.GetID(d.ID)))
	}

	return sb.String()
}
