package html

// Region is the CSS text of a <style> element in an HTML document
type Region struct {
	Content string
	// StartByte and EndByte delimit Content in the HTML source
	StartByte uint
	EndByte   uint
	// StartLine and StartCol are the 0-indexed position of Content in the HTML source
	StartLine uint
	StartCol  uint
}
