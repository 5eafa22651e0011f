package model

// Mutation is one mutant of a source file produced by a named operator.
type Mutation struct {
	ID          string
	Source      Source
	Operator    string
	Site        Site
	MutatedCode []byte
	DiffCode    []byte
}
