package adapter

// Node kinds produced by the script driver.
const (
	KindProgram   = "Program"
	KindVar       = "Var"
	KindLet       = "Let"
	KindConst     = "Const"
	KindFunction  = "Function"
	KindIf        = "If"
	KindWhile     = "While"
	KindFor       = "For"
	KindBlock     = "Block"
	KindReturn    = "Return"
	KindBreak     = "Break"
	KindContinue  = "Continue"
	KindEmpty     = "Empty"
	KindExprStmt  = "ExprStmt"
	KindTarget    = "Target"
	KindParams    = "Parameters"
	KindParameter = "Parameter"
	KindArguments = "Arguments"
	KindCall      = "Call"
	KindDot       = "Dot"
	KindProperty  = "Property"
	KindIndex     = "Index"
	KindParen     = "Paren"
	KindArray     = "Array"
	KindObject    = "Object"
	KindPair      = "Pair"
	KindKey       = "Key"
	KindCond      = "Conditional"

	KindNumber = "Number"
	KindString = "String"
	KindName   = "Name"
	KindTrue   = "True"
	KindFalse  = "False"
	KindNull   = "Null"
	KindThis   = "This"

	KindNegate    = "Negate"
	KindUnaryPlus = "UnaryPlus"
	KindNot       = "Not"
	KindBitNot    = "BitNot"
	KindPreInc    = "PreIncrement"
	KindPreDec    = "PreDecrement"
	KindPostInc   = "PostIncrement"
	KindPostDec   = "PostDecrement"
)

// Precedence levels, loosest first.
const (
	precLowest = iota
	precAssign
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precMember
	precPrimary
)

type operator struct {
	text string
	kind string
	prec int
}

var binaryOperators = []operator{
	{"||", "LogicalOr", precLogicalOr},
	{"&&", "LogicalAnd", precLogicalAnd},
	{"|", "BitOr", precBitOr},
	{"^", "BitXor", precBitXor},
	{"&", "BitAnd", precBitAnd},
	{"==", "Equal", precEquality},
	{"!=", "NotEqual", precEquality},
	{"===", "StrictEqual", precEquality},
	{"!==", "NotStrictEqual", precEquality},
	{"<", "Less", precRelational},
	{"<=", "LessOrEqual", precRelational},
	{">", "Greater", precRelational},
	{">=", "GreaterOrEqual", precRelational},
	{"<<", "LeftShift", precShift},
	{">>", "RightShift", precShift},
	{">>>", "UnsignedRightShift", precShift},
	{"+", "Add", precAdditive},
	{"-", "Subtract", precAdditive},
	{"*", "Multiply", precMultiplicative},
	{"/", "Divide", precMultiplicative},
	{"%", "Modulus", precMultiplicative},
}

var assignOperators = []operator{
	{"=", "OpEqual", precAssign},
	{"+=", "OpPlusEqual", precAssign},
	{"-=", "OpMinusEqual", precAssign},
	{"*=", "OpMultiplyEqual", precAssign},
	{"/=", "OpDivideEqual", precAssign},
	{"%=", "OpModEqual", precAssign},
	{"&=", "OpAndEqual", precAssign},
	{"|=", "OpOrEqual", precAssign},
	{"^=", "OpXorEqual", precAssign},
	{"<<=", "OpLShiftEqual", precAssign},
	{">>=", "OpRShiftEqual", precAssign},
	{">>>=", "OpURShiftEqual", precAssign},
}

var unaryOperators = []operator{
	{"-", KindNegate, precUnary},
	{"+", KindUnaryPlus, precUnary},
	{"!", KindNot, precUnary},
	{"~", KindBitNot, precUnary},
	{"++", KindPreInc, precUnary},
	{"--", KindPreDec, precUnary},
}

var postfixOperators = []operator{
	{"++", KindPostInc, precPostfix},
	{"--", KindPostDec, precPostfix},
}

var declarationKinds = map[string]string{
	"var":   KindVar,
	"let":   KindLet,
	"const": KindConst,
}

var (
	binaryByText  = indexByText(binaryOperators)
	assignByText  = indexByText(assignOperators)
	unaryByText   = indexByText(unaryOperators)
	postfixByText = indexByText(postfixOperators)
	operatorKinds = indexByKind(binaryOperators, assignOperators, unaryOperators, postfixOperators)
)

func indexByText(operators []operator) map[string]operator {
	index := make(map[string]operator, len(operators))
	for _, op := range operators {
		index[op.text] = op
	}

	return index
}

func indexByKind(groups ...[]operator) map[string]operator {
	index := make(map[string]operator)

	for _, group := range groups {
		for _, op := range group {
			index[op.kind] = op
		}
	}

	return index
}

var leafKinds = []string{KindNumber, KindString, KindName, KindTrue, KindFalse, KindNull, KindThis}

var hoistKinds = []string{
	KindNumber, KindString, KindName, KindTrue, KindFalse, KindNull, KindThis,
	KindTarget, KindParameter, KindProperty, KindKey,
}

var keywordKinds = map[string]string{
	"true":  KindTrue,
	"false": KindFalse,
	"null":  KindNull,
	"this":  KindThis,
}

func isDeclaration(kind string) bool {
	return kind == KindVar || kind == KindLet || kind == KindConst
}

func declarationKeyword(kind string) string {
	for keyword, candidate := range declarationKinds {
		if candidate == kind {
			return keyword
		}
	}

	return ""
}
