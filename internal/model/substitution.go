package model

// WholeMatch is the reserved binding name for the entire matched subtree.
const WholeMatch = "&"

// Binding is what a variable name is bound to: a single term, or a non-empty
// run of sibling terms when captured by a greedy variable.
type Binding struct {
	Terms  []Term
	Greedy bool
}

// Bind returns a single-term binding.
func Bind(term Term) Binding {
	return Binding{Terms: []Term{term}}
}

// BindAll returns a greedy binding over a run of terms.
func BindAll(terms []Term) Binding {
	return Binding{Terms: append([]Term(nil), terms...), Greedy: true}
}

// Term returns the first bound term.
func (b Binding) Term() Term {
	if len(b.Terms) == 0 {
		return nil
	}

	return b.Terms[0]
}

// Equal reports whether both bindings hold structurally equal terms.
func (b Binding) Equal(other Binding) bool {
	if b.Greedy != other.Greedy || len(b.Terms) != len(other.Terms) {
		return false
	}

	for i := range b.Terms {
		if !Equal(b.Terms[i], other.Terms[i]) {
			return false
		}
	}

	return true
}

// Substitution maps variable names to bindings.
type Substitution map[string]Binding

// Clone returns a shallow copy.
func (s Substitution) Clone() Substitution {
	clone := make(Substitution, len(s))
	for name, binding := range s {
		clone[name] = binding
	}

	return clone
}

// Root returns the term bound under WholeMatch.
func (s Substitution) Root() Term {
	return s[WholeMatch].Term()
}

// TermPath addresses a subtree by child indices from the root.
type TermPath []int

// Positioned is a subterm together with its path from the traversal root.
type Positioned struct {
	Term Term
	Path TermPath
}

// Match is a successful unification of a pattern with a subtree.
type Match struct {
	Root         Term
	Path         TermPath
	Substitution Substitution
}
