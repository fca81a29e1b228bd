package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font/sfnt"
)

// FontFile is a font face found in the assets directory.
type FontFile struct {
	Def    FontDef
	Path   string
	Family string
	Glyphs int
}

// FontPath returns where the renderer looks for the font named name.
func (r *Resolved) FontPath(name string) string {
	return filepath.Join(r.Assets, "fonts", name+".ttf")
}

// CheckFonts verifies that every configured font exists and parses as an
// SFNT font. The renderer aborts on a missing font, so hosts call this before
// starting it. All problems are returned joined.
func (r *Resolved) CheckFonts() ([]FontFile, error) {
	var (
		found []FontFile
		errs  []error
	)
	for _, def := range r.Fonts {
		path := r.FontPath(def.Name)
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("font %s: %w", def.Name, err))
			continue
		}
		f, err := sfnt.Parse(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("font %s: %s: %w", def.Name, path, err))
			continue
		}
		family, err := f.Name(nil, sfnt.NameIDFamily)
		if err != nil {
			family = ""
		}
		found = append(found, FontFile{Def: def, Path: path, Family: family, Glyphs: f.NumGlyphs()})
	}
	return found, errors.Join(errs...)
}
