package domain

import (
	m "gooze.dev/pkg/morph/internal/model"
)

func lit(name string, children ...m.Term) *m.Literal {
	return m.NewLiteral(name, children...)
}

func num(text string) *m.Literal {
	return lit("Number", lit(text))
}

func name(text string) *m.Literal {
	return lit("Name", lit(text))
}

func variable(n string, options ...m.VariableOption) *m.Variable {
	return m.NewVariable(n, options...)
}
