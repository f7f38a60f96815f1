// Package spreadsheet renders model-document sections as two-column tables
// and mirrors them into host spreadsheet objects, so parameter values stay
// visible inside the CAD document itself.
package spreadsheet

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/qmod-labs/qmod/internal/host"
	"github.com/qmod-labs/qmod/pkg/model"
)

// Pair is one row of a two-column table.
type Pair struct {
	Name  string
	Value any
}

// Params flattens a document's geometric parameters into ordered rows.
func Params(doc *model.Document) []Pair {
	names := make([]string, 0, len(doc.GeometricParams))
	for name := range doc.GeometricParams {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]Pair, len(names))
	for i, name := range names {
		pairs[i] = Pair{Name: name, Value: doc.GeometricParams[name]}
	}
	return pairs
}

// ObjectInfo flattens one CAD object descriptor into ordered rows: label and
// type first, then the physics properties sorted by key.
func ObjectInfo(info model.ObjectInfo) []Pair {
	pairs := []Pair{
		{Name: "label", Value: info.Label},
		{Name: "type", Value: info.Type},
	}
	keys := make([]string, 0, len(info.Physics))
	for key := range info.Physics {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		pairs = append(pairs, Pair{Name: key, Value: info.Physics[key]})
	}
	return pairs
}

// Render writes pairs as a two-column table in the requested format:
// "table" (default), "json", "csv", or "md"/"markdown".
func Render(w io.Writer, format string, header [2]string, pairs []Pair) error {
	switch format {
	case "json":
		return renderJSON(w, pairs)
	case "csv":
		return renderCSV(w, header, pairs)
	case "md", "markdown":
		return renderMarkdown(w, header, pairs)
	default:
		return renderTable(w, header, pairs)
	}
}

func renderTable(w io.Writer, header [2]string, pairs []Pair) error {
	if len(pairs) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{header[0], header[1]})
	for _, p := range pairs {
		t.AppendRow(table.Row{p.Name, formatValue(p.Value)})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(pairs))
	return nil
}

func renderJSON(w io.Writer, pairs []Pair) error {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		out[p.Name] = p.Value
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCSV(w io.Writer, header [2]string, pairs []Pair) error {
	_, _ = fmt.Fprintf(w, "%s,%s\n", header[0], header[1])
	for _, p := range pairs {
		_, _ = fmt.Fprintf(w, "%s,%s\n", escapeCSV(p.Name), escapeCSV(formatValue(p.Value)))
	}
	return nil
}

func renderMarkdown(w io.Writer, header [2]string, pairs []Pair) error {
	if len(pairs) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}
	_, _ = fmt.Fprintf(w, "| %s | %s |\n", header[0], header[1])
	_, _ = fmt.Fprintln(w, "| --- | --- |")
	for _, p := range pairs {
		_, _ = fmt.Fprintf(w, "| %s | %s |\n", p.Name, formatValue(p.Value))
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// MirrorParams writes the document's geometric parameters into a host
// spreadsheet, names in column A and values in column B under a header row,
// then recomputes the document so dependent expressions pick them up.
func MirrorParams(doc *model.Document, hd host.Document, sheetName string) error {
	if err := writePairs(hd.Spreadsheet(sheetName), [2]string{"parameter", "value"}, Params(doc)); err != nil {
		return fmt.Errorf("mirror %q: %w", sheetName, err)
	}
	return hd.Recompute()
}

// MirrorObjects writes one spreadsheet per CAD object descriptor, named by
// prefixing the object identifier, holding its label, type and physics
// properties.
func MirrorObjects(doc *model.Document, hd host.Document, prefix string) error {
	ids := make([]string, 0, len(doc.FreeCADInfo))
	for id := range doc.FreeCADInfo {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		sheet := hd.Spreadsheet(prefix + id)
		if err := writePairs(sheet, [2]string{"property", "value"}, ObjectInfo(doc.FreeCADInfo[id])); err != nil {
			return fmt.Errorf("mirror %q: %w", sheet.Name(), err)
		}
	}
	return hd.Recompute()
}

func writePairs(sheet host.Spreadsheet, header [2]string, pairs []Pair) error {
	if err := sheet.Set("A1", header[0]); err != nil {
		return err
	}
	if err := sheet.Set("B1", header[1]); err != nil {
		return err
	}
	for i, p := range pairs {
		row := i + 2
		if err := sheet.Set(fmt.Sprintf("A%d", row), p.Name); err != nil {
			return err
		}
		if err := sheet.Set(fmt.Sprintf("B%d", row), p.Value); err != nil {
			return err
		}
	}
	return nil
}
