package mutagens

// RelationalOperatorReplacement swaps "<" for every other relational and
// equality operator.
var RelationalOperatorReplacement = Operator{
	Name:         "ROR",
	Description:  "relational operator replacement",
	Pattern:      "A < B",
	Replacements: []string{"A <= B", "A == B", "A != B", "A >= B", "A > B"},
}
