// Package textinput implements the single-line input model behind the URL
// bar and the key/value fields: a value, a cursor, an optional selection and
// a cursor-aware undo history.
//
// Offsets are rune offsets. Cursor movement and deletion step over whole
// grapheme clusters, so an emoji with modifiers or a letter with combining
// marks is treated as one character.
package textinput
