package tui

import (
	"strings"
	"unicode/utf8"
)

// maxFieldLen is the maximum number of runes allowed in a form field.
const maxFieldLen = 200

// field is one line of a text form: a label, the typed value, and whether
// the value is masked (passwords).
type field struct {
	label       string
	placeholder string
	value       string
	secret      bool
}

// edit processes a keystroke for the field. Backspace removes the last rune,
// single printable runes append, everything else is ignored.
func (f *field) edit(key string) {
	switch key {
	case "backspace":
		if f.value != "" {
			runes := []rune(f.value)
			f.value = string(runes[:len(runes)-1])
		}
	default:
		if utf8.RuneCountInString(key) == 1 && utf8.RuneCountInString(f.value) < maxFieldLen {
			f.value += key
		}
	}
}

// render draws the field as "label: value", masking secrets and marking
// focus with a colored label and a block cursor.
func (f field) render(focused bool) string {
	shown := f.value
	if f.secret {
		shown = strings.Repeat("•", utf8.RuneCountInString(f.value))
	}

	label := fieldLabelStyle.Render(f.label + ":")
	if focused {
		label = fieldFocusStyle.Render(f.label + ":")
	}

	switch {
	case shown == "" && focused:
		return label + " " + fieldFocusStyle.Render("█")
	case shown == "":
		return label + " " + inputPlaceholderStyle.Render(f.placeholder)
	case focused:
		return label + " " + normalStyle.Render(shown) + fieldFocusStyle.Render("█")
	default:
		return label + " " + normalStyle.Render(shown)
	}
}
