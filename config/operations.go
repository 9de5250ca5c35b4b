package config

import (
	"fmt"
)

// Operations are the request features a table exposes.
type Operations int

const (
	Filter Operations = 1 << iota
	Sort
	Paginate
	Count
)

// AllOperations is used when a table does not list its operations.
const AllOperations = Filter | Sort | Paginate | Count

func Ops(ops ...string) (Operations, error) {
	if len(ops) == 0 {
		return AllOperations, nil
	}
	var o Operations
	err := o.Add(ops...)
	return o, err
}

func (o *Operations) Set(ops Operations)             { *o |= ops }
func (o *Operations) Clear(ops Operations)           { *o &= ^ops }
func (o Operations) IsSupported(ops Operations) bool { return o&ops != 0 }

func (o *Operations) Add(ops ...string) error {
	for _, op := range ops {
		switch op {
		case "Filter":
			o.Set(Filter)
		case "Sort":
			o.Set(Sort)
		case "Paginate":
			o.Set(Paginate)
		case "Count":
			o.Set(Count)
		default:
			return fmt.Errorf("invalid operation: %s", op)
		}
	}
	return nil
}
