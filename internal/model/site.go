package model

import "fmt"

// Span is a half-open byte range [Start, End) into source text.
type Span struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Site records one mutation instance: where it happened and the text before and after.
type Site struct {
	Position Span   `yaml:"position"`
	Original string `yaml:"original"`
	Mutated  string `yaml:"mutated"`
}

// Mutant is one mutated rendering of a source unit together with its Site.
type Mutant struct {
	Code string
	Site Site
}
