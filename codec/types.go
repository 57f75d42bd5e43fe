// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// TypeKind tags the shape of a [Type].
type TypeKind uint8

const (
	KindUint TypeKind = iota + 1
	KindString
	KindFixedBytes
	KindSequence
	KindOption
	KindStruct
	KindEnum
)

func (k TypeKind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindString:
		return "string"
	case KindFixedBytes:
		return "fixedBytes"
	case KindSequence:
		return "sequence"
	case KindOption:
		return "option"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// Type describes the wire shape of a single value. Types are immutable and
// are shared freely between schemas.
type Type struct {
	kind TypeKind
	// width in bits for KindUint, length in bytes for KindFixedBytes
	size int
	elem *Type
	name string
}

var (
	U8     = Uint(8)
	U16    = Uint(16)
	U32    = Uint(32)
	U64    = Uint(64)
	U128   = Uint(128)
	Str    = String()
	Bytes  = Sequence(U8)
	Hash32 = FixedBytes(32)
)

// Uint is an unsigned little-endian integer of [widthBits] bits.
func Uint(widthBits int) Type { return Type{kind: KindUint, size: widthBits} }

// String is a u32 length-prefixed UTF-8 string.
func String() Type { return Type{kind: KindString} }

// FixedBytes is exactly [n] raw bytes with no length prefix.
func FixedBytes(n int) Type { return Type{kind: KindFixedBytes, size: n} }

// Sequence is a u32 count followed by each element.
func Sequence(elem Type) Type { return Type{kind: KindSequence, elem: &elem} }

// Option is a one byte presence flag followed by the inner value when set.
func Option(inner Type) Type { return Type{kind: KindOption, elem: &inner} }

// Struct references a struct entry of a [Registry].
func Struct(name string) Type { return Type{kind: KindStruct, name: name} }

// Enum references an enum entry of a [Registry].
func Enum(name string) Type { return Type{kind: KindEnum, name: name} }

func (t Type) Kind() TypeKind { return t.kind }

// Width is the bit width of a KindUint type.
func (t Type) Width() int { return t.size }

// Size is the byte length of a KindFixedBytes type.
func (t Type) Size() int { return t.size }

// Name is the registry name of a KindStruct or KindEnum type.
func (t Type) Name() string { return t.name }

// Elem returns the element type of a sequence or the inner type of an
// option.
func (t Type) Elem() Type {
	if t.elem == nil {
		return Type{}
	}
	return *t.elem
}

func (t Type) String() string {
	switch t.kind {
	case KindUint:
		return "u" + strconv.Itoa(t.size)
	case KindString:
		return "string"
	case KindFixedBytes:
		return fmt.Sprintf("[%d]", t.size)
	case KindSequence:
		return fmt.Sprintf("[%s]", t.elem)
	case KindOption:
		return fmt.Sprintf("option<%s>", t.elem)
	case KindStruct, KindEnum:
		return t.name
	default:
		return "invalid"
	}
}

func validWidth(w int) bool {
	switch w {
	case 8, 16, 32, 64, 128:
		return true
	default:
		return false
	}
}

type optionJSON struct {
	Kind string `json:"kind"`
	Type Type   `json:"type"`
}

// MarshalJSON renders the schema description notation: "u64", "string",
// [32], ["u8"], {"kind":"option","type":"u128"} and bare entry names.
func (t Type) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case KindUint, KindString, KindStruct, KindEnum:
		return json.Marshal(t.String())
	case KindFixedBytes:
		return json.Marshal([]int{t.size})
	case KindSequence:
		return json.Marshal([]Type{*t.elem})
	case KindOption:
		return json.Marshal(optionJSON{Kind: "option", Type: *t.elem})
	default:
		return nil, fmt.Errorf("%w: cannot describe %s", ErrUnsupportedType, t.kind)
	}
}
