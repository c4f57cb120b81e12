// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abi

import "github.com/fuelvm/fuels-go/consts"

// Token is an in-memory value tagged with its wire shape. A Token is only
// meaningful paired with the schema it was produced from or will be encoded
// against; in particular an enum discriminant is external metadata, not
// inferable from the payload.
type Token struct {
	kind    Kind
	word    uint64
	b256    [consts.B256Len]byte
	str     string
	variant uint64
	elems   []Token
}

func UnitToken() Token        { return Token{kind: KindUnit} }
func U8Token(v uint8) Token   { return Token{kind: KindU8, word: uint64(v)} }
func U16Token(v uint16) Token { return Token{kind: KindU16, word: uint64(v)} }
func U32Token(v uint32) Token { return Token{kind: KindU32, word: uint64(v)} }
func U64Token(v uint64) Token { return Token{kind: KindU64, word: v} }
func ByteToken(v byte) Token  { return Token{kind: KindByte, word: uint64(v)} }

func BoolToken(v bool) Token {
	t := Token{kind: KindBool}
	if v {
		t.word = 1
	}
	return t
}

func B256Token(v [consts.B256Len]byte) Token {
	return Token{kind: KindB256, b256: v}
}

func StringToken(v string) Token {
	return Token{kind: KindString, str: v}
}

func ArrayToken(elems ...Token) Token {
	return Token{kind: KindArray, elems: elems}
}

func VectorToken(elems ...Token) Token {
	return Token{kind: KindVector, elems: elems}
}

func TupleToken(elems ...Token) Token {
	return Token{kind: KindTuple, elems: elems}
}

func StructToken(fields ...Token) Token {
	return Token{kind: KindStruct, elems: fields}
}

// EnumToken selects variant [variant] with [payload]. Use [UnitToken] as the
// payload for empty variants.
func EnumToken(variant uint64, payload Token) Token {
	return Token{kind: KindEnum, variant: variant, elems: []Token{payload}}
}

func (t Token) Kind() Kind { return t.kind }

// Uint64 returns the numeric value of a Bool, U8..U64, or Byte token.
func (t Token) Uint64() uint64 { return t.word }

func (t Token) Bool() bool { return t.word != 0 }

func (t Token) B256() [consts.B256Len]byte { return t.b256 }

// Str returns the contents of a String token.
func (t Token) Str() string { return t.str }

// Variant returns the selected enum discriminant.
func (t Token) Variant() uint64 { return t.variant }

// Elems returns the ordered array/vector/tuple elements or struct fields.
func (t Token) Elems() []Token { return t.elems }

// Payload returns the active enum variant's payload.
func (t Token) Payload() Token {
	if t.kind != KindEnum || len(t.elems) != 1 {
		return UnitToken()
	}
	return t.elems[0]
}
