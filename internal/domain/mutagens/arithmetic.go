package mutagens

// ArithmeticOperatorReplacement swaps addition for the other arithmetic operators.
var ArithmeticOperatorReplacement = Operator{
	Name:         "AOR",
	Description:  "arithmetic operator replacement",
	Pattern:      "A + B",
	Replacements: []string{"A - B", "A * B", "A / B"},
}

// UnaryArithmeticOperatorDeletion drops a unary minus.
var UnaryArithmeticOperatorDeletion = Operator{
	Name:         "UAOD",
	Description:  "unary arithmetic operator deletion",
	Pattern:      "-A",
	Replacements: []string{"A"},
}

// UnaryArithmeticOperatorInsertion negates a value.
var UnaryArithmeticOperatorInsertion = Operator{
	Name:         "UAOI",
	Description:  "unary arithmetic operator insertion",
	Pattern:      "A",
	Replacements: []string{"-A"},
}
