package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/MeKo-Tech/smudge/internal/geometry"
)

// WordJSON is the wire form of a word annotation. Corners take precedence;
// when only a bbox is present the corners are derived from it.
type WordJSON struct {
	Word    string      `json:"word"`
	BBox    []float64   `json:"bbox,omitempty"`
	Corners [][]float64 `json:"corners,omitempty"`
}

// ImageAnnotation is one clear image's entry in the input annotation index.
type ImageAnnotation struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Words  []WordJSON `json:"words"`
}

// Index maps clear-image filenames to their annotations.
type Index map[string]ImageAnnotation

// LoadIndex reads the input annotation index produced by the text renderer.
func LoadIndex(path string) (Index, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading a user-provided annotation path is expected
	if err != nil {
		return nil, &IOError{Operation: "load", Path: path, Err: err}
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, &IOError{Operation: "parse", Path: path, Err: err}
	}
	return idx, nil
}

// Names returns the index's filenames in sorted order.
func (idx Index) Names() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToWords converts an annotation entry into the in-memory word model.
// Entries with neither corners nor a usable bbox are skipped.
func (a ImageAnnotation) ToWords() []Word {
	words := make([]Word, 0, len(a.Words))
	for _, wj := range a.Words {
		corners := wj.cornerPoints()
		if len(corners) == 0 {
			continue
		}
		words = append(words, NewWord(wj.Word, corners))
	}
	return words
}

func (w WordJSON) cornerPoints() []geometry.Point {
	if len(w.Corners) >= 4 {
		pts := make([]geometry.Point, 0, len(w.Corners))
		for _, c := range w.Corners {
			if len(c) < 2 {
				return nil
			}
			pts = append(pts, geometry.Point{X: c[0], Y: c[1]})
		}
		return pts
	}
	if len(w.BBox) == 4 {
		x1, y1, x2, y2 := w.BBox[0], w.BBox[1], w.BBox[2], w.BBox[3]
		return []geometry.Point{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}}
	}
	return nil
}

// Result is one degraded sample's entry in the output annotation index.
// The tesseract fields are absent when OCR validation was skipped or the
// engine was unavailable.
type Result struct {
	SourceImage            string     `json:"source_image"`
	Width                  int        `json:"width"`
	Height                 int        `json:"height"`
	PSNR                   float64    `json:"psnr"`
	TesseractOutput        []string   `json:"tesseract_output,omitempty"`
	TesseractRelativeError *float64   `json:"tesseract_relative_error,omitempty"`
	Words                  []WordJSON `json:"words"`
}

// ResultIndex maps degraded filenames to their results.
type ResultIndex map[string]Result

// WordsJSON converts in-memory words to their wire form.
func WordsJSON(words []Word) []WordJSON {
	out := make([]WordJSON, len(words))
	for i, w := range words {
		corners := make([][]float64, len(w.Corners))
		for j, p := range w.Corners {
			corners[j] = []float64{p.X, p.Y}
		}
		out[i] = WordJSON{
			Word:    w.Text,
			BBox:    []float64{w.Box.MinX, w.Box.MinY, w.Box.MaxX, w.Box.MaxY},
			Corners: corners,
		}
	}
	return out
}

// Save writes the output annotation index as indented JSON.
func (idx ResultIndex) Save(path string) error {
	data, err := json.MarshalIndent(idx, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal annotation index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &IOError{Operation: "save", Path: path, Err: err}
	}
	return nil
}
