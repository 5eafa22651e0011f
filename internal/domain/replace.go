package domain

import (
	m "gooze.dev/pkg/morph/internal/model"
)

// Replace returns a copy of tree with the subtree at path swapped for
// replacement. An empty path replaces the root. A path that does not resolve
// leaves the tree unchanged.
func Replace(tree m.Term, path m.TermPath, replacement m.Term) m.Term {
	if len(path) == 0 {
		return replacement
	}

	lit, ok := tree.(*m.Literal)
	if !ok || path[0] < 0 || path[0] >= lit.Len() {
		return tree
	}

	child := lit.Child(path[0])

	replaced := Replace(child, path[1:], replacement)
	if replaced == child {
		return tree
	}

	children := lit.Children()
	children[path[0]] = replaced

	return m.NewLiteral(lit.Name(), children...)
}

// ReplaceTerm is Replace with the target located by identity. The first
// pre-order occurrence of target is replaced; if target is not part of tree
// the tree is returned unchanged.
func ReplaceTerm(tree, target, replacement m.Term) m.Term {
	path, ok := Locate(tree, target)
	if !ok {
		return tree
	}

	return Replace(tree, path, replacement)
}

// Locate finds the path of target inside tree by identity.
func Locate(tree, target m.Term) (m.TermPath, bool) {
	for position := range Traverse(tree) {
		if position.Term == target {
			return position.Path, true
		}
	}

	return nil, false
}

// At resolves path against tree.
func At(tree m.Term, path m.TermPath) (m.Term, bool) {
	current := tree

	for _, index := range path {
		lit, ok := current.(*m.Literal)
		if !ok || index < 0 || index >= lit.Len() {
			return nil, false
		}

		current = lit.Child(index)
	}

	return current, current != nil
}
