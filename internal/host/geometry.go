package host

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// geometryFile is the on-disk form of a MemDocument: named box objects plus
// spreadsheet cells.
type geometryFile struct {
	Objects map[string]geometryObject `json:"objects"`
	Sheets  map[string]map[string]any `json:"sheets,omitempty"`
}

type geometryObject struct {
	Label string      `json:"label,omitempty"`
	Box   *[6]float64 `json:"box,omitempty"`
	Shape *Shape      `json:"shape,omitempty"`
}

// LoadMemDocument reads a geometry file into an in-memory document.
func LoadMemDocument(path string) (*MemDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: path}
		}
		return nil, fmt.Errorf("read geometry file: %w", err)
	}

	var gf geometryFile
	if err := json.Unmarshal(data, &gf); err != nil {
		return nil, fmt.Errorf("parse geometry file %s: %w", path, err)
	}

	doc := NewMemDocument()
	for name, obj := range gf.Objects {
		switch {
		case obj.Box != nil:
			b := obj.Box
			if _, err := doc.AddBox(name, obj.Label, Box{
				MinX: b[0], MinY: b[1], MinZ: b[2],
				MaxX: b[3], MaxY: b[4], MaxZ: b[5],
			}); err != nil {
				return nil, fmt.Errorf("geometry object %q: %w", name, err)
			}
		case obj.Shape != nil:
			if _, err := doc.Create(name, obj.Label, *obj.Shape); err != nil {
				return nil, fmt.Errorf("geometry object %q: %w", name, err)
			}
		default:
			return nil, fmt.Errorf("geometry object %q has neither box nor shape", name)
		}
	}
	for sheetName, cells := range gf.Sheets {
		sheet := doc.Spreadsheet(sheetName)
		for cell, value := range cells {
			if err := sheet.Set(cell, value); err != nil {
				return nil, fmt.Errorf("geometry sheet %q: %w", sheetName, err)
			}
		}
	}
	return doc, nil
}

// SaveFile writes the document back to a geometry file, atomically.
func (d *MemDocument) SaveFile(path string) error {
	gf := geometryFile{Objects: make(map[string]geometryObject, len(d.objects))}
	for name, mo := range d.objects {
		obj := geometryObject{Label: mo.obj.Label}
		if mo.box != nil {
			b := mo.box
			obj.Box = &[6]float64{b.MinX, b.MinY, b.MinZ, b.MaxX, b.MaxY, b.MaxZ}
		} else {
			shape := mo.obj.Shape
			obj.Shape = &shape
		}
		gf.Objects[name] = obj
	}
	if len(d.sheets) > 0 {
		gf.Sheets = make(map[string]map[string]any, len(d.sheets))
		for name, sheet := range d.sheets {
			gf.Sheets[name] = sheet.cells
		}
	}

	data, err := json.MarshalIndent(gf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode geometry file: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("write geometry file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write geometry file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write geometry file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write geometry file: %w", err)
	}
	return nil
}
