// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abi

import (
	"fmt"
	"strings"

	"github.com/fuelvm/fuels-go/consts"
)

// Kind enumerates the shapes a value can take on the wire.
type Kind uint8

const (
	KindUnit Kind = iota
	KindBool
	KindU8
	KindU16
	KindU32
	KindU64
	KindByte
	KindB256
	KindString
	KindArray
	KindVector
	KindTuple
	KindStruct
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindByte:
		return "byte"
	case KindB256:
		return "b256"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindVector:
		return "vector"
	case KindTuple:
		return "tuple"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Component is a named member of a struct or enum. Order is the wire
// contract: reordering components is a breaking change.
type Component struct {
	Name string
	Type ParamType
}

// ParamType describes the shape of a value independent of any Go
// representation. Trees are immutable once constructed and safe to share
// across concurrent calls.
type ParamType struct {
	kind       Kind
	length     int
	elem       *ParamType
	name       string
	components []Component
}

func Unit() ParamType  { return ParamType{kind: KindUnit} }
func Bool() ParamType  { return ParamType{kind: KindBool} }
func U8() ParamType    { return ParamType{kind: KindU8} }
func U16() ParamType   { return ParamType{kind: KindU16} }
func U32() ParamType   { return ParamType{kind: KindU32} }
func U64() ParamType   { return ParamType{kind: KindU64} }
func Byte() ParamType  { return ParamType{kind: KindByte} }
func B256() ParamType  { return ParamType{kind: KindB256} }

// String is a fixed-length string of [length] raw bytes, right-padded with
// zeroes to a word boundary.
func String(length int) ParamType {
	return ParamType{kind: KindString, length: length}
}

// Array is a fixed-size homogeneous sequence.
func Array(elem ParamType, length int) ParamType {
	return ParamType{kind: KindArray, elem: &elem, length: length}
}

// Vector is a dynamic-size homogeneous sequence, encoded with a length
// prefix. Vectors are only valid as top-level arguments.
func Vector(elem ParamType) ParamType {
	return ParamType{kind: KindVector, elem: &elem}
}

func Tuple(elems ...ParamType) ParamType {
	components := make([]Component, len(elems))
	for i, e := range elems {
		components[i] = Component{Type: e}
	}
	return ParamType{kind: KindTuple, components: components}
}

func Struct(name string, fields ...Component) ParamType {
	return ParamType{kind: KindStruct, name: name, components: fields}
}

func Enum(name string, variants ...Component) ParamType {
	return ParamType{kind: KindEnum, name: name, components: variants}
}

// Field constructs a struct field or enum variant.
func Field(name string, typ ParamType) Component {
	return Component{Name: name, Type: typ}
}

func (t ParamType) Kind() Kind { return t.kind }

// Name returns the declared struct or enum name, empty otherwise.
func (t ParamType) Name() string { return t.name }

// Len returns the declared length of a string or array.
func (t ParamType) Len() int { return t.length }

// Elem returns the element type of an array or vector.
func (t ParamType) Elem() ParamType {
	if t.elem == nil {
		return Unit()
	}
	return *t.elem
}

// Components returns the ordered struct fields, enum variants, or tuple
// elements.
func (t ParamType) Components() []Component { return t.components }

// IsDynamic reports whether the encoded width depends on the value.
func (t ParamType) IsDynamic() bool {
	return t.kind == KindVector
}

// FixedWidth returns the encoded byte width of the schema. Enums are sized
// to their widest variant so that fixed-layout containers stay fixed.
// Returns [ErrDynamicWidth] if the schema contains a vector.
func (t ParamType) FixedWidth() (int, error) {
	switch t.kind {
	case KindUnit:
		return 0, nil
	case KindBool, KindU8, KindU16, KindU32, KindU64:
		return consts.WordSize, nil
	case KindByte:
		return consts.ByteLen, nil
	case KindB256:
		return consts.B256Len, nil
	case KindString:
		return wordAligned(t.length), nil
	case KindArray:
		w, err := t.Elem().FixedWidth()
		if err != nil {
			return 0, err
		}
		return w * t.length, nil
	case KindVector:
		return 0, fmt.Errorf("%w: vec<%s>", ErrDynamicWidth, t.Elem().Signature())
	case KindTuple, KindStruct:
		total := 0
		for _, c := range t.components {
			w, err := c.Type.FixedWidth()
			if err != nil {
				return 0, err
			}
			total += w
		}
		return total, nil
	case KindEnum:
		widest, err := t.widestVariant()
		if err != nil {
			return 0, err
		}
		return consts.WordSize + widest, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrSchemaMismatch, t.kind)
	}
}

// widestVariant returns the encoded width of the widest enum variant.
func (t ParamType) widestVariant() (int, error) {
	widest := 0
	for _, v := range t.components {
		w, err := v.Type.FixedWidth()
		if err != nil {
			return 0, err
		}
		if w > widest {
			widest = w
		}
	}
	return widest, nil
}

// Signature returns the canonical type string used to derive selectors.
// Structs and enums are rendered structurally so that any change to their
// layout changes every dependent selector.
func (t ParamType) Signature() string {
	switch t.kind {
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindByte:
		return "byte"
	case KindB256:
		return "b256"
	case KindString:
		return fmt.Sprintf("str[%d]", t.length)
	case KindArray:
		return fmt.Sprintf("%s[%d]", t.Elem().Signature(), t.length)
	case KindVector:
		return fmt.Sprintf("vec<%s>", t.Elem().Signature())
	case KindTuple:
		return "(" + t.componentSignature() + ")"
	case KindStruct:
		return "s(" + t.componentSignature() + ")"
	case KindEnum:
		return "e(" + t.componentSignature() + ")"
	default:
		return t.kind.String()
	}
}

func (t ParamType) componentSignature() string {
	parts := make([]string, len(t.components))
	for i, c := range t.components {
		parts[i] = c.Type.Signature()
	}
	return strings.Join(parts, ",")
}

// describe names the schema for error messages: the declared name when one
// exists, the canonical signature otherwise.
func (t ParamType) describe() string {
	if t.name != "" {
		return t.name
	}
	return t.Signature()
}

func (t ParamType) String() string {
	return t.describe()
}

func wordAligned(n int) int {
	r := n % consts.WordSize
	if r == 0 {
		return n
	}
	return n + consts.WordSize - r
}
