package mutagens

// ConditionalOperatorDeletion drops a logical negation.
var ConditionalOperatorDeletion = Operator{
	Name:         "COD",
	Description:  "conditional operator deletion",
	Pattern:      "!A",
	Replacements: []string{"A"},
}

// ConditionalOperatorInsertion negates a value.
var ConditionalOperatorInsertion = Operator{
	Name:         "COI",
	Description:  "conditional operator insertion",
	Pattern:      "A",
	Replacements: []string{"!A"},
}

// ConditionalOperatorReplacement turns a disjunction into a conjunction.
var ConditionalOperatorReplacement = Operator{
	Name:         "COR",
	Description:  "conditional operator replacement",
	Pattern:      "A || B",
	Replacements: []string{"A && B"},
}
