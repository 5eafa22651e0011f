// Package mutagens provides the catalogue of mutation operators, each written
// as a pattern snippet and its replacement snippets.
package mutagens

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Operator is a named mutation operator. Upper case identifiers in the
// snippets are placeholders shared between pattern and replacements.
type Operator struct {
	Name         string
	Description  string
	Pattern      string
	Replacements []string
}

func (o Operator) String() string {
	return fmt.Sprintf("%s: %s => %s", o.Name, o.Pattern, strings.Join(o.Replacements, " | "))
}

var catalogue = newCatalogue(
	ArithmeticOperatorReplacement,
	ConditionalOperatorDeletion,
	ConditionalOperatorInsertion,
	ConditionalOperatorReplacement,
	LogicalOperatorDeletion,
	LogicalOperatorInsertion,
	LogicalOperatorReplacement,
	RelationalExpressionReplacement,
	RelationalOperatorReplacement,
	ShortcutAssignmentOperatorReplacement,
	UnaryArithmeticOperatorDeletion,
	UnaryArithmeticOperatorInsertion,
)

func newCatalogue(operators ...Operator) *linkedhashmap.Map {
	index := linkedhashmap.New()
	for _, op := range operators {
		index.Put(op.Name, op)
	}

	return index
}

// All returns every operator in catalogue order.
func All() []Operator {
	operators := make([]Operator, 0, catalogue.Size())
	for _, value := range catalogue.Values() {
		operators = append(operators, value.(Operator))
	}

	return operators
}

// Names returns the operator names in catalogue order.
func Names() []string {
	names := make([]string, 0, catalogue.Size())
	for _, key := range catalogue.Keys() {
		names = append(names, key.(string))
	}

	return names
}

// Lookup finds an operator by name, ignoring case.
func Lookup(name string) (Operator, bool) {
	value, ok := catalogue.Get(strings.ToUpper(name))
	if !ok {
		return Operator{}, false
	}

	return value.(Operator), true
}

// Resolve maps operator names to operators. No names selects all of them.
func Resolve(names ...string) ([]Operator, error) {
	if len(names) == 0 {
		return All(), nil
	}

	operators := make([]Operator, 0, len(names))

	for _, name := range names {
		op, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unsupported mutation operator: %s", name)
		}

		operators = append(operators, op)
	}

	return operators, nil
}
