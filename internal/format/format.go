package format

import (
	"errors"
	"fmt"

	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/internal/parser/css"
	"bennypowers.dev/cpsort/internal/parser/html"
	"bennypowers.dev/cpsort/internal/parser/js"
)

// ErrUnsupportedLanguage is returned for documents that cannot carry CSS
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Result is a formatted document
type Result struct {
	Output  string
	Changed bool
	// Warnings carry positions in the coordinates of the whole document
	Warnings []customprops.Warning
}

// region is a CSS span inside a host document
type region struct {
	content   string
	startByte uint
	endByte   uint
	startLine uint
	startCol  uint
}

// Format sorts the custom properties of every CSS rule in source.
//
// Plain CSS with syntax errors is an error. Embedded regions that fail to
// parse are left as they are.
func Format(source string, lang Language, sorter *customprops.Sorter) (*Result, error) {
	switch lang {
	case CSS:
		output, warnings, err := formatCSS(source, sorter)
		if err != nil {
			return nil, err
		}
		return &Result{Output: output, Changed: output != source, Warnings: warnings}, nil
	case HTML:
		return formatRegions(source, htmlRegions(source), sorter), nil
	case JS:
		return formatRegions(source, jsRegions(source), sorter), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
}

func formatCSS(source string, sorter *customprops.Sorter) (string, []customprops.Warning, error) {
	sheet, err := css.Parse(source)
	if err != nil {
		return "", nil, err
	}
	result := sorter.Process(sheet)
	return sheet.String(), result.Warnings, nil
}

func formatRegions(source string, regions []region, sorter *customprops.Sorter) *Result {
	result := &Result{Output: source}
	outputs := make([]string, len(regions))

	for i, r := range regions {
		output, warnings, err := formatCSS(r.content, sorter)
		if err != nil {
			log.Warn("skipping CSS at %d:%d: %v", r.startLine+1, r.startCol+1, err)
			outputs[i] = r.content
			continue
		}
		outputs[i] = output
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, offsetWarning(w, r))
		}
	}

	// splice from the end so earlier offsets stay valid
	for i := len(regions) - 1; i >= 0; i-- {
		r := regions[i]
		if outputs[i] == r.content {
			continue
		}
		result.Output = result.Output[:r.startByte] + outputs[i] + result.Output[r.endByte:]
		result.Changed = true
	}

	return result
}

// offsetWarning moves a region-relative warning into document coordinates.
// Only the first line of a region is shifted by its column.
func offsetWarning(w customprops.Warning, r region) customprops.Warning {
	if !w.HasPosition {
		return w
	}
	if w.Position.Line == 0 {
		w.Position.Character += uint32(r.startCol) //nolint:gosec // G115: region positions from tree-sitter are bounded by file size
	}
	w.Position.Line += uint32(r.startLine) //nolint:gosec // G115: region positions from tree-sitter are bounded by file size
	return w
}

func htmlRegions(source string) []region {
	parser := html.AcquireParser()
	defer html.ReleaseParser(parser)

	var regions []region
	for _, r := range parser.StyleRegions(source) {
		regions = append(regions, region{r.Content, r.StartByte, r.EndByte, r.StartLine, r.StartCol})
	}
	return regions
}

func jsRegions(source string) []region {
	parser := js.AcquireParser()
	defer js.ReleaseParser(parser)

	var regions []region
	for _, t := range parser.CSSTemplates(source) {
		regions = append(regions, region{t.Content, t.StartByte, t.EndByte, t.StartLine, t.StartCol})
	}
	return regions
}
