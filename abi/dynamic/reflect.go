// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dynamic maps between tokens and native Go values via reflection.
// It is an optional convenience layer: the encoder and decoder never depend
// on it.
package dynamic

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fuelvm/fuels-go/abi"
)

// Enum is the native representation of an enum value: the selected variant
// ordinal plus the variant's payload.
type Enum struct {
	Variant uint64
	Value   interface{}
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// goFieldName maps a schema component name like "some_number" onto the
// exported Go field name "SomeNumber".
func goFieldName(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		parts[i] = titleCaser.String(p)
	}
	return strings.Join(parts, "")
}

// FromNative converts a Go value into a token matching [typ].
func FromNative(typ abi.ParamType, v interface{}) (abi.Token, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	switch typ.Kind() {
	case abi.KindUnit:
		return abi.UnitToken(), nil
	case abi.KindBool:
		if rv.Kind() != reflect.Bool {
			return abi.Token{}, conversionError(typ, rv)
		}
		return abi.BoolToken(rv.Bool()), nil
	case abi.KindU8:
		u, err := asUint(typ, rv)
		return abi.U8Token(uint8(u)), err
	case abi.KindU16:
		u, err := asUint(typ, rv)
		return abi.U16Token(uint16(u)), err
	case abi.KindU32:
		u, err := asUint(typ, rv)
		return abi.U32Token(uint32(u)), err
	case abi.KindU64:
		u, err := asUint(typ, rv)
		return abi.U64Token(u), err
	case abi.KindByte:
		u, err := asUint(typ, rv)
		return abi.ByteToken(byte(u)), err
	case abi.KindB256:
		if rv.Kind() != reflect.Array || rv.Len() != 32 || rv.Type().Elem().Kind() != reflect.Uint8 {
			return abi.Token{}, conversionError(typ, rv)
		}
		var b [32]byte
		reflect.Copy(reflect.ValueOf(&b).Elem(), rv)
		return abi.B256Token(b), nil
	case abi.KindString:
		if rv.Kind() != reflect.String {
			return abi.Token{}, conversionError(typ, rv)
		}
		return abi.StringToken(rv.String()), nil
	case abi.KindArray, abi.KindVector:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return abi.Token{}, conversionError(typ, rv)
		}
		elems := make([]abi.Token, rv.Len())
		for i := range elems {
			elem, err := FromNative(typ.Elem(), rv.Index(i).Interface())
			if err != nil {
				return abi.Token{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = elem
		}
		if typ.Kind() == abi.KindArray {
			return abi.ArrayToken(elems...), nil
		}
		return abi.VectorToken(elems...), nil
	case abi.KindTuple, abi.KindStruct:
		return structFromNative(typ, rv)
	case abi.KindEnum:
		e, ok := rv.Interface().(Enum)
		if !ok {
			return abi.Token{}, conversionError(typ, rv)
		}
		variants := typ.Components()
		if e.Variant >= uint64(len(variants)) {
			return abi.Token{}, fmt.Errorf("%w: variant %d of %d", abi.ErrInvalidVariant, e.Variant, len(variants))
		}
		payload, err := FromNative(variants[e.Variant].Type, e.Value)
		if err != nil {
			return abi.Token{}, fmt.Errorf("variant %d: %w", e.Variant, err)
		}
		return abi.EnumToken(e.Variant, payload), nil
	default:
		return abi.Token{}, fmt.Errorf("%w: kind %s", abi.ErrSchemaMismatch, typ.Kind())
	}
}

func structFromNative(typ abi.ParamType, rv reflect.Value) (abi.Token, error) {
	components := typ.Components()
	elems := make([]abi.Token, len(components))

	if typ.Kind() == abi.KindTuple {
		if rv.Kind() != reflect.Slice || rv.Len() != len(components) {
			return abi.Token{}, conversionError(typ, rv)
		}
		for i, c := range components {
			elem, err := FromNative(c.Type, rv.Index(i).Interface())
			if err != nil {
				return abi.Token{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = elem
		}
		return abi.TupleToken(elems...), nil
	}

	if rv.Kind() != reflect.Struct {
		return abi.Token{}, conversionError(typ, rv)
	}
	for i, c := range components {
		field := rv.FieldByName(goFieldName(c.Name))
		if !field.IsValid() {
			return abi.Token{}, fmt.Errorf("%w: %s has no field %s", abi.ErrSchemaMismatch, rv.Type(), goFieldName(c.Name))
		}
		elem, err := FromNative(c.Type, field.Interface())
		if err != nil {
			return abi.Token{}, fmt.Errorf("field %s: %w", c.Name, err)
		}
		elems[i] = elem
	}
	return abi.StructToken(elems...), nil
}

// ToNative converts a token into a native Go value: primitives become their
// obvious Go counterparts, composites become []interface{}, structs become
// map[string]interface{} keyed by declared field name, and enums become
// [Enum].
func ToNative(typ abi.ParamType, token abi.Token) (interface{}, error) {
	if token.Kind() != typ.Kind() {
		return nil, fmt.Errorf("%w: %s token for %s schema", abi.ErrSchemaMismatch, token.Kind(), typ.Kind())
	}

	switch typ.Kind() {
	case abi.KindUnit:
		return nil, nil
	case abi.KindBool:
		return token.Bool(), nil
	case abi.KindU8:
		return uint8(token.Uint64()), nil
	case abi.KindU16:
		return uint16(token.Uint64()), nil
	case abi.KindU32:
		return uint32(token.Uint64()), nil
	case abi.KindU64:
		return token.Uint64(), nil
	case abi.KindByte:
		return byte(token.Uint64()), nil
	case abi.KindB256:
		return token.B256(), nil
	case abi.KindString:
		return token.Str(), nil
	case abi.KindArray, abi.KindVector:
		out := make([]interface{}, len(token.Elems()))
		for i, elem := range token.Elems() {
			v, err := ToNative(typ.Elem(), elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	case abi.KindTuple:
		components := typ.Components()
		if len(token.Elems()) != len(components) {
			return nil, fmt.Errorf("%w: %d elements for %d components", abi.ErrSchemaMismatch, len(token.Elems()), len(components))
		}
		out := make([]interface{}, len(components))
		for i, c := range components {
			v, err := ToNative(c.Type, token.Elems()[i])
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	case abi.KindStruct:
		components := typ.Components()
		if len(token.Elems()) != len(components) {
			return nil, fmt.Errorf("%w: %d fields for %d components", abi.ErrSchemaMismatch, len(token.Elems()), len(components))
		}
		out := make(map[string]interface{}, len(components))
		for i, c := range components {
			v, err := ToNative(c.Type, token.Elems()[i])
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", c.Name, err)
			}
			out[c.Name] = v
		}
		return out, nil
	case abi.KindEnum:
		variants := typ.Components()
		if token.Variant() >= uint64(len(variants)) {
			return nil, fmt.Errorf("%w: variant %d of %d", abi.ErrInvalidVariant, token.Variant(), len(variants))
		}
		payload, err := ToNative(variants[token.Variant()].Type, token.Payload())
		if err != nil {
			return nil, fmt.Errorf("variant %d: %w", token.Variant(), err)
		}
		return Enum{Variant: token.Variant(), Value: payload}, nil
	default:
		return nil, fmt.Errorf("%w: kind %s", abi.ErrSchemaMismatch, typ.Kind())
	}
}

func asUint(typ abi.ParamType, rv reflect.Value) (uint64, error) {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return 0, conversionError(typ, rv)
		}
		return uint64(rv.Int()), nil
	default:
		return 0, conversionError(typ, rv)
	}
}

func conversionError(typ abi.ParamType, rv reflect.Value) error {
	return fmt.Errorf("%w: cannot represent %s as %s", abi.ErrSchemaMismatch, rv.Kind(), typ.Kind())
}
