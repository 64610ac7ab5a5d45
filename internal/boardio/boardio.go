// Package boardio serializes boards to and from the textual board-state
// format. The format is an object with three fields, `elements`, `camera`
// and `bg`, and is stable across versions: decoding routes every element
// record through normalization, and unrecognized kinds survive a round trip
// untouched.
package boardio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/geom"
)

type boardFile struct {
	Elements []json.RawMessage `json:"elements"`
	Camera   geom.Camera       `json:"camera"`
	Bg       board.Background  `json:"bg"`
}

type boardFileOut struct {
	Elements []board.Element  `json:"elements"`
	Camera   geom.Camera      `json:"camera"`
	Bg       board.Background `json:"bg"`
}

// Encode serializes a board. The element order is preserved; an empty board
// still emits an `elements` array.
func Encode(b *board.Board) ([]byte, error) {
	elems := b.Elements
	if elems == nil {
		elems = []board.Element{}
	}
	out := boardFileOut{Elements: elems, Camera: b.Camera, Bg: b.Background}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding board: %w", err)
	}
	return data, nil
}

// Decode parses a serialized board. A parse failure returns an error and no
// board. Individual element records that fail shape checks are dropped; a
// missing `elements` field decodes as an empty board, and a missing camera
// or background fall back to their defaults.
func Decode(data []byte) (*board.Board, error) {
	var in boardFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing board: %w", err)
	}
	b := board.New()
	b.Elements = board.NormalizeElements(in.Elements)
	if in.Camera.Scale != 0 {
		b.Camera = in.Camera
		b.Camera.Scale = geom.ClampScale(b.Camera.Scale)
	}
	if in.Bg.Width > 0 && in.Bg.Height > 0 {
		b.Background = in.Bg
	}
	return b, nil
}

// Save writes a board to path, indented for hand editing, creating parent
// directories as needed.
func Save(path string, b *board.Board) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}
	var buf json.RawMessage = data
	pretty, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting board: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating board directory: %w", err)
	}
	if err := os.WriteFile(path, append(pretty, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing board: %w", err)
	}
	return nil
}

// Load reads a board from path.
func Load(path string) (*board.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading board: %w", err)
	}
	return Decode(data)
}
