// Package clipboard publishes board data to the system clipboard: serialized
// boards as text and rendered boards as PNG images. On unix it uses the cgo
// backend from golang.design/x/clipboard when available and falls back to a
// pure-Go X11 implementation otherwise.
package clipboard
