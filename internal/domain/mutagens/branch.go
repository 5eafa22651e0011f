package mutagens

// RelationalExpressionReplacement pins a comparison to a constant outcome.
var RelationalExpressionReplacement = Operator{
	Name:         "RER",
	Description:  "relational expression replacement",
	Pattern:      "A < B",
	Replacements: []string{"true", "false"},
}
