// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// StructValue is implemented by every value encoded as a [Struct] type.
// FieldValue is called once per declared field, in schema order.
type StructValue interface {
	SchemaName() string
	FieldValue(name string) (any, bool)
}

// EnumValue is implemented by every value encoded as an [Enum] type.
// Discriminant names the populated variant and Payload returns the value
// encoded with that variant's type.
type EnumValue interface {
	Discriminant() string
	Payload() any
}

// SequenceValue is implemented by values encoded as a [Sequence] type.
type SequenceValue interface {
	Len() int
	Index(i int) any
}

// OptionalValue is implemented by values encoded as an [Option] type.
type OptionalValue interface {
	Get() (any, bool)
}

var (
	_ SequenceValue = List[any](nil)
	_ OptionalValue = Optional[any]{}
)

// List adapts a slice to [SequenceValue].
type List[T any] []T

func (l List[T]) Len() int { return len(l) }

func (l List[T]) Index(i int) any { return l[i] }

// Optional holds a value that may be absent.
type Optional[T any] struct {
	value T
	some  bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, some: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPointer treats a nil pointer as absent.
func FromPointer[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Optional[T]) Value() (T, bool) { return o.value, o.some }

func (o Optional[T]) IsNone() bool { return !o.some }

func (o Optional[T]) Get() (any, bool) {
	if !o.some {
		return nil, false
	}
	return o.value, true
}
