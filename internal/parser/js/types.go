package js

// Template is the literal text of a css-tagged template in JS/TS source
type Template struct {
	// Content is the text between the backticks
	Content string
	// StartByte and EndByte delimit Content in the JS/TS source
	StartByte uint
	EndByte   uint
	// StartLine is the 0-indexed line in the JS/TS source where Content begins
	StartLine uint
	// StartCol is the 0-indexed column in the JS/TS source where Content begins
	StartCol uint
}
