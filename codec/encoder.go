// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/holiman/uint256"

	"github.com/ava-labs/nearsdk/consts"
)

const (
	// MaxDepth bounds struct, enum, sequence and option nesting.
	MaxDepth = 64

	defaultInitialSize = 256
)

// Encoder writes the canonical encoding of values described by a
// [Registry]. It holds no mutable state and may be used concurrently.
type Encoder struct {
	registry *Registry
}

func NewEncoder(r *Registry) *Encoder {
	return &Encoder{registry: r}
}

func (e *Encoder) Registry() *Registry { return e.registry }

// Encode returns the canonical encoding of [value] as [t]. Nothing is
// returned alongside an error.
func (e *Encoder) Encode(value any, t Type) ([]byte, error) {
	p := NewWriter(defaultInitialSize)
	if err := e.EncodeTo(p, value, t); err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

// EncodeStruct encodes [value] as the struct entry named by its
// SchemaName.
func (e *Encoder) EncodeStruct(value StructValue) ([]byte, error) {
	if value == nil {
		return nil, encodingErr("", ErrTypeMismatch, "nil struct value")
	}
	return e.Encode(value, Struct(value.SchemaName()))
}

// EncodeTo appends the encoding of [value] to [p]. If an error is
// returned the contents of [p] must be discarded.
func (e *Encoder) EncodeTo(p *Packer, value any, t Type) error {
	if err := p.Err(); err != nil {
		return encodingErr("", err, "packer already failed")
	}
	s := &encodeState{
		r:    e.registry,
		p:    p,
		path: make([]segment, 1, 8),
	}
	s.path[0] = segment{name: t.String(), index: -1}
	if err := s.encode(value, t); err != nil {
		return err
	}
	if err := p.Err(); err != nil {
		return encodingErr(s.pathString(), err, "")
	}
	return nil
}

// Encode is shorthand for NewEncoder(r).Encode(value, t).
func Encode(r *Registry, value any, t Type) ([]byte, error) {
	return NewEncoder(r).Encode(value, t)
}

// EncodeStruct is shorthand for NewEncoder(r).EncodeStruct(value).
func EncodeStruct(r *Registry, value StructValue) ([]byte, error) {
	return NewEncoder(r).EncodeStruct(value)
}

type segment struct {
	name  string
	index int
}

type encodeState struct {
	r    *Registry
	p    *Packer
	path []segment
}

func (s *encodeState) push(name string, index int) {
	s.path = append(s.path, segment{name: name, index: index})
}

func (s *encodeState) pop() {
	s.path = s.path[:len(s.path)-1]
}

func (s *encodeState) pathString() string {
	var b strings.Builder
	for i, seg := range s.path {
		if seg.index >= 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.name)
	}
	return b.String()
}

func (s *encodeState) mismatch(expected string, v any) error {
	return encodingErr(s.pathString(), ErrTypeMismatch, "expected %s, got %T", expected, v)
}

func (s *encodeState) encode(v any, t Type) error {
	if len(s.path) > MaxDepth {
		return encodingErr(s.pathString(), ErrMaxDepth, "nesting deeper than %d", MaxDepth)
	}
	switch t.kind {
	case KindUint:
		return s.encodeUint(v, t.size)
	case KindString:
		return s.encodeString(v)
	case KindFixedBytes:
		return s.encodeFixedBytes(v, t.size)
	case KindSequence:
		elem := t.Elem()
		// A sequence of fixed-size byte arrays is framed by the array
		// itself and never gets a count prefix.
		if elem.kind == KindFixedBytes {
			return s.encodeFixedBytes(v, elem.size)
		}
		return s.encodeSequence(v, elem)
	case KindOption:
		return s.encodeOption(v, t.Elem())
	case KindStruct:
		return s.encodeStruct(v, t.name)
	case KindEnum:
		return s.encodeEnum(v, t.name)
	default:
		return schemaErr(s.pathString(), ErrUnsupportedType, "type kind %d", t.kind)
	}
}

func (s *encodeState) encodeUint(v any, width int) error {
	if !validWidth(width) {
		return schemaErr(s.pathString(), ErrUnsupportedType, "unsigned width %d", width)
	}
	var (
		x        uint256.Int
		negative bool
	)
	switch n := v.(type) {
	case uint8:
		x.SetUint64(uint64(n))
	case uint16:
		x.SetUint64(uint64(n))
	case uint32:
		x.SetUint64(uint64(n))
	case uint64:
		x.SetUint64(n)
	case uint:
		x.SetUint64(uint64(n))
	case int:
		negative = n < 0
		x.SetUint64(uint64(n))
	case int8:
		negative = n < 0
		x.SetUint64(uint64(n))
	case int16:
		negative = n < 0
		x.SetUint64(uint64(n))
	case int32:
		negative = n < 0
		x.SetUint64(uint64(n))
	case int64:
		negative = n < 0
		x.SetUint64(uint64(n))
	case uint256.Int:
		x = n
	case *uint256.Int:
		if n == nil {
			return s.mismatch("u"+strconv.Itoa(width), v)
		}
		x = *n
	case *big.Int:
		if n == nil {
			return s.mismatch("u"+strconv.Itoa(width), v)
		}
		if n.Sign() < 0 {
			negative = true
			break
		}
		if x.SetFromBig(n) {
			return encodingErr(s.pathString(), ErrOverflow, "%s does not fit u%d", n, width)
		}
	default:
		return s.mismatch("u"+strconv.Itoa(width), v)
	}
	if negative {
		return encodingErr(s.pathString(), ErrNegative, "%v cannot be encoded as u%d", v, width)
	}
	if x.BitLen() > width {
		return encodingErr(s.pathString(), ErrOverflow, "%s does not fit u%d", x.ToBig(), width)
	}

	switch width {
	case 8:
		s.p.PackByte(uint8(x.Uint64()))
	case 16:
		s.p.PackUint16(uint16(x.Uint64()))
	case 32:
		s.p.PackUint32(uint32(x.Uint64()))
	case 64:
		s.p.PackUint64(x.Uint64())
	case 128:
		s.p.PackUint128(&x)
	}
	return nil
}

func (s *encodeState) encodeString(v any) error {
	str, ok := v.(string)
	if !ok {
		return s.mismatch("string", v)
	}
	if !utf8.ValidString(str) {
		return encodingErr(s.pathString(), ErrInvalidUTF8, "")
	}
	if uint64(len(str)) > uint64(consts.MaxUint32) {
		return encodingErr(s.pathString(), ErrTooManyItems, "string of %d bytes", len(str))
	}
	s.p.PackString(str)
	return nil
}

func (s *encodeState) encodeFixedBytes(v any, n int) error {
	var b []byte
	switch x := v.(type) {
	case []byte:
		b = x
	case [32]byte:
		b = x[:]
	case [64]byte:
		b = x[:]
	case interface{ Bytes() []byte }:
		b = x.Bytes()
	default:
		return s.mismatch("["+strconv.Itoa(n)+"]", v)
	}
	if len(b) != n {
		return encodingErr(s.pathString(), ErrInvalidSize, "expected %d bytes, got %d", n, len(b))
	}
	s.p.PackFixedBytes(b)
	return nil
}

func (s *encodeState) checkCount(n int) error {
	if uint64(n) > uint64(consts.MaxUint32) {
		return encodingErr(s.pathString(), ErrTooManyItems, "%d elements", n)
	}
	return nil
}

func (s *encodeState) encodeSequence(v any, elem Type) error {
	switch x := v.(type) {
	case []byte:
		if elem.kind != KindUint || elem.size != 8 {
			return s.mismatch("["+elem.String()+"]", v)
		}
		if err := s.checkCount(len(x)); err != nil {
			return err
		}
		s.p.PackBytes(x)
		return nil
	case []string:
		if err := s.checkCount(len(x)); err != nil {
			return err
		}
		s.p.PackLen(len(x))
		for i, item := range x {
			if err := s.encodeElement(i, item, elem); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if err := s.checkCount(len(x)); err != nil {
			return err
		}
		s.p.PackLen(len(x))
		for i, item := range x {
			if err := s.encodeElement(i, item, elem); err != nil {
				return err
			}
		}
		return nil
	case SequenceValue:
		l := x.Len()
		if err := s.checkCount(l); err != nil {
			return err
		}
		s.p.PackLen(l)
		for i := 0; i < l; i++ {
			if err := s.encodeElement(i, x.Index(i), elem); err != nil {
				return err
			}
		}
		return nil
	default:
		return s.mismatch("["+elem.String()+"]", v)
	}
}

func (s *encodeState) encodeElement(i int, v any, elem Type) error {
	s.push("", i)
	err := s.encode(v, elem)
	s.pop()
	return err
}

func (s *encodeState) encodeOption(v any, inner Type) error {
	if v == nil {
		s.p.PackByte(0)
		return nil
	}
	o, ok := v.(OptionalValue)
	if !ok {
		return s.mismatch("option<"+inner.String()+">", v)
	}
	value, some := o.Get()
	if !some {
		s.p.PackByte(0)
		return nil
	}
	s.p.PackByte(1)
	return s.encode(value, inner)
}

func (s *encodeState) encodeStruct(v any, name string) error {
	e, err := s.r.Lookup(name)
	if err != nil {
		return schemaErr(s.pathString(), ErrUnknownName, "%q is not declared", name)
	}
	if e.Kind != EntryStruct {
		return schemaErr(s.pathString(), ErrTypeMismatch, "%q is declared as %s", name, e.Kind)
	}
	sv, ok := v.(StructValue)
	if !ok {
		return s.mismatch(name, v)
	}
	if isNilPointer(sv) {
		return encodingErr(s.pathString(), ErrTypeMismatch, "nil %s", name)
	}
	if got := sv.SchemaName(); got != name {
		return encodingErr(s.pathString(), ErrTypeMismatch, "expected %s, got %s", name, got)
	}
	for _, f := range e.Fields {
		fv, ok := sv.FieldValue(f.Name)
		s.push(f.Name, -1)
		if !ok {
			err := encodingErr(s.pathString(), ErrFieldNotPopulated, "")
			s.pop()
			return err
		}
		err := s.encode(fv, f.Type)
		s.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *encodeState) encodeEnum(v any, name string) error {
	e, err := s.r.Lookup(name)
	if err != nil {
		return schemaErr(s.pathString(), ErrUnknownName, "%q is not declared", name)
	}
	if e.Kind != EntryEnum {
		return schemaErr(s.pathString(), ErrTypeMismatch, "%q is declared as %s", name, e.Kind)
	}
	ev, ok := v.(EnumValue)
	if !ok {
		return s.mismatch(name, v)
	}
	if isNilPointer(ev) {
		return encodingErr(s.pathString(), ErrTypeMismatch, "nil %s", name)
	}
	d := ev.Discriminant()
	idx, ok := e.VariantIndex(d)
	if !ok {
		return unknownVariantErr(s.pathString(), "%q is not a variant of %s", d, name)
	}
	s.p.PackByte(idx)
	s.push(d, -1)
	err = s.encode(ev.Payload(), e.Variants[idx].Type)
	s.pop()
	return err
}

// isNilPointer reports whether [v] is a nil pointer held in a non-nil
// interface.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
