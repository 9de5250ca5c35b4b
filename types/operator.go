package types

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownOperator = errors.New("unknown filter operator")

// Operator is the comparison applied by a filter. The set is closed.
type Operator int

const (
	OpEq Operator = iota
	OpNotEq
	OpGte
	OpGt
	OpLte
	OpLt
	OpContains
	OpNotContains
)

// Operators lists every supported operator in declaration order.
var Operators = []Operator{OpEq, OpNotEq, OpGte, OpGt, OpLte, OpLt, OpContains, OpNotContains}

var operatorNames = map[Operator]string{
	OpEq:          "EQ",
	OpNotEq:       "NEQ",
	OpGte:         "GE",
	OpGt:          "GT",
	OpLte:         "LE",
	OpLt:          "LT",
	OpContains:    "CONTAINS",
	OpNotContains: "NOT_CONTAINS",
}

var operatorsByName = map[string]Operator{
	"eq":           OpEq,
	"=":            OpEq,
	"neq":          OpNotEq,
	"noteq":        OpNotEq,
	"!=":           OpNotEq,
	"<>":           OpNotEq,
	"ge":           OpGte,
	"gte":          OpGte,
	">=":           OpGte,
	"gt":           OpGt,
	">":            OpGt,
	"le":           OpLte,
	"lte":          OpLte,
	"<=":           OpLte,
	"lt":           OpLt,
	"<":            OpLt,
	"contains":     OpContains,
	"like":         OpContains,
	"not_contains": OpNotContains,
	"notcontains":  OpNotContains,
	"not like":     OpNotContains,
	"not_like":     OpNotContains,
}

// ParseOperator resolves an operator from its tag name (EQ, NEQ, ...) or its symbolic form.
func ParseOperator(s string) (Operator, error) {
	if op, ok := operatorsByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Valid reports whether o is one of the eight declared operators.
func (o Operator) Valid() bool {
	_, ok := operatorNames[o]
	return ok
}

// IsLike reports whether the operator is a substring match.
func (o Operator) IsLike() bool {
	return o == OpContains || o == OpNotContains
}

func (o Operator) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, int(o))
	}
	return []byte(o.String()), nil
}

func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}
