package mutagens

// ShortcutAssignmentOperatorReplacement swaps "+=" for the other compound
// assignments.
var ShortcutAssignmentOperatorReplacement = Operator{
	Name:        "SAOR",
	Description: "shortcut assignment operator replacement",
	Pattern:     "A += B",
	Replacements: []string{
		"A -= B", "A *= B", "A /= B", "A %= B", "A &= B",
		"A |= B", "A ^= B", "A <<= B", "A >>= B",
	},
}
