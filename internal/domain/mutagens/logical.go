package mutagens

// LogicalOperatorDeletion drops a bitwise complement.
var LogicalOperatorDeletion = Operator{
	Name:         "LOD",
	Description:  "logical operator deletion",
	Pattern:      "~A",
	Replacements: []string{"A"},
}

// LogicalOperatorInsertion complements a value.
var LogicalOperatorInsertion = Operator{
	Name:         "LOI",
	Description:  "logical operator insertion",
	Pattern:      "A",
	Replacements: []string{"~A"},
}

// LogicalOperatorReplacement swaps bitwise and for or and xor.
var LogicalOperatorReplacement = Operator{
	Name:         "LOR",
	Description:  "logical operator replacement",
	Pattern:      "A & B",
	Replacements: []string{"A | B", "A ^ B"},
}
