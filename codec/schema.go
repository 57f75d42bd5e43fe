// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"

	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/nearsdk/consts"
)

type EntryKind uint8

const (
	EntryStruct EntryKind = iota + 1
	EntryEnum
)

func (k EntryKind) String() string {
	switch k {
	case EntryStruct:
		return "struct"
	case EntryEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// Field is a named struct member. The position of a field inside its
// entry is its position on the wire.
type Field struct {
	Name string
	Type Type
}

// Variant is a named union member. The position of a variant inside its
// entry is the discriminant byte written on the wire.
type Variant struct {
	Name string
	Type Type
}

func F(name string, t Type) Field   { return Field{Name: name, Type: t} }
func V(name string, t Type) Variant { return Variant{Name: name, Type: t} }

// Entry is the layout of one struct or enum.
type Entry struct {
	Name string
	Kind EntryKind

	// struct
	Fields []Field

	// enum
	Discriminant string
	Variants     []Variant

	variantIndex map[string]uint8
}

// StructDef declares a struct whose fields are written in the given order.
func StructDef(name string, fields ...Field) Entry {
	return Entry{Name: name, Kind: EntryStruct, Fields: fields}
}

// EnumDef declares a tagged union. [discriminant] names the field that
// selects the variant in the historical schema notation; it has no
// influence on the encoding.
func EnumDef(name string, discriminant string, variants ...Variant) Entry {
	return Entry{Name: name, Kind: EntryEnum, Discriminant: discriminant, Variants: variants}
}

// VariantIndex returns the discriminant byte for [variant].
func (e *Entry) VariantIndex(variant string) (uint8, bool) {
	i, ok := e.variantIndex[variant]
	return i, ok
}

// Registry maps struct and enum names to their layout. A Registry is
// never modified after [NewRegistry] returns, so it can be shared between
// goroutines without locking.
type Registry struct {
	entries map[string]*Entry
	order   []string
}

// NewRegistry validates [entries] and builds a registry from them. Every
// struct and enum reference must resolve to one of [entries].
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]*Entry, len(entries)),
		order:   make([]string, 0, len(entries)),
	}
	for i := range entries {
		e := entries[i]
		if e.Name == "" {
			return nil, schemaErr("", ErrUnknownName, "entry %d has no name", i)
		}
		if _, ok := r.entries[e.Name]; ok {
			return nil, schemaErr(e.Name, ErrDuplicateName, "entry declared twice")
		}
		switch e.Kind {
		case EntryStruct:
			e.Fields = append([]Field(nil), e.Fields...)
			names := set.NewSet[string](len(e.Fields))
			for _, f := range e.Fields {
				if names.Contains(f.Name) {
					return nil, schemaErr(e.Name+"."+f.Name, ErrDuplicateName, "field declared twice")
				}
				names.Add(f.Name)
			}
		case EntryEnum:
			if len(e.Variants) > int(consts.MaxUint8)+1 {
				return nil, schemaErr(e.Name, ErrTooManyItems, "%d variants do not fit a one byte discriminant", len(e.Variants))
			}
			e.Variants = append([]Variant(nil), e.Variants...)
			e.variantIndex = make(map[string]uint8, len(e.Variants))
			for i, v := range e.Variants {
				if _, ok := e.variantIndex[v.Name]; ok {
					return nil, schemaErr(e.Name+"."+v.Name, ErrDuplicateName, "variant declared twice")
				}
				e.variantIndex[v.Name] = uint8(i)
			}
		default:
			return nil, schemaErr(e.Name, ErrUnsupportedType, "entry kind %d", e.Kind)
		}
		r.entries[e.Name] = &e
		r.order = append(r.order, e.Name)
	}

	// References are resolved once everything is declared so entries may
	// be listed in any order.
	for _, name := range r.order {
		e := r.entries[name]
		switch e.Kind {
		case EntryStruct:
			for _, f := range e.Fields {
				if err := r.checkType(name+"."+f.Name, f.Type); err != nil {
					return nil, err
				}
			}
		case EntryEnum:
			for _, v := range e.Variants {
				if err := r.checkType(name+"."+v.Name, v.Type); err != nil {
					return nil, err
				}
			}
		}
	}
	return r, nil
}

// MustNewRegistry is like [NewRegistry] but panics on an invalid schema.
// It is meant for package level catalogs built at init.
func MustNewRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) checkType(path string, t Type) error {
	switch t.kind {
	case KindUint:
		if !validWidth(t.size) {
			return schemaErr(path, ErrUnsupportedType, "unsigned width %d", t.size)
		}
	case KindString:
	case KindFixedBytes:
		if t.size < 0 {
			return schemaErr(path, ErrInvalidSize, "fixed size %d", t.size)
		}
	case KindSequence, KindOption:
		if t.elem == nil {
			return schemaErr(path, ErrUnsupportedType, "%s without element type", t.kind)
		}
		return r.checkType(path, *t.elem)
	case KindStruct, KindEnum:
		e, ok := r.entries[t.name]
		if !ok {
			return schemaErr(path, ErrUnknownName, "%q is not declared", t.name)
		}
		if (t.kind == KindStruct) != (e.Kind == EntryStruct) {
			return schemaErr(path, ErrTypeMismatch, "%q is declared as %s", t.name, e.Kind)
		}
	default:
		return schemaErr(path, ErrUnsupportedType, "type kind %d", t.kind)
	}
	return nil
}

// Lookup returns the layout registered under [name].
func (r *Registry) Lookup(name string) (*Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, schemaErr(name, ErrUnknownName, "%q is not declared", name)
	}
	return e, nil
}

// MustLookup is like [Lookup] but panics when [name] is unknown.
func (r *Registry) MustLookup(name string) *Entry {
	e, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return e
}

// VariantIndex returns the discriminant byte of [variant] in [enum].
func (r *Registry) VariantIndex(enum string, variant string) (uint8, error) {
	e, err := r.Lookup(enum)
	if err != nil {
		return 0, err
	}
	if e.Kind != EntryEnum {
		return 0, schemaErr(enum, ErrTypeMismatch, "%q is not an enum", enum)
	}
	i, ok := e.VariantIndex(variant)
	if !ok {
		return 0, schemaErr(enum, ErrUnknownVariant, "%q is not declared", variant)
	}
	return i, nil
}

// Names lists entry names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

type entryJSON struct {
	Name   string             `json:"name"`
	Kind   string             `json:"kind"`
	Fields *[]json.RawMessage `json:"fields,omitempty"`
	Field  string             `json:"field,omitempty"`
	Values []json.RawMessage  `json:"values,omitempty"`
}

func pairJSON(name string, t Type) (json.RawMessage, error) {
	typ, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	n, err := json.Marshal(name)
	if err != nil {
		return nil, err
	}
	return json.Marshal([]json.RawMessage{n, typ})
}

// MarshalJSON describes the schema as an ordered list of entries, with
// fields and variants written as [name, type] pairs.
func (r *Registry) MarshalJSON() ([]byte, error) {
	out := make([]entryJSON, 0, len(r.order))
	for _, name := range r.order {
		e := r.entries[name]
		ej := entryJSON{Name: e.Name, Kind: e.Kind.String()}
		switch e.Kind {
		case EntryStruct:
			fields := make([]json.RawMessage, 0, len(e.Fields))
			for _, f := range e.Fields {
				p, err := pairJSON(f.Name, f.Type)
				if err != nil {
					return nil, err
				}
				fields = append(fields, p)
			}
			ej.Fields = &fields
		case EntryEnum:
			ej.Field = e.Discriminant
			for _, v := range e.Variants {
				p, err := pairJSON(v.Name, v.Type)
				if err != nil {
					return nil, err
				}
				ej.Values = append(ej.Values, p)
			}
		}
		out = append(out, ej)
	}
	return json.Marshal(out)
}
