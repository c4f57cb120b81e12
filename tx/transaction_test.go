// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tx

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/fuelvm/fuels-go/codec"
)

func TestScriptMarshalRoundTrip(t *testing.T) {
	require := require.New(t)

	contract := ids.GenerateTestID()
	asset := ids.GenerateTestID()

	original := &Script{
		GasPrice:   1,
		GasLimit:   1_000_000,
		BytePrice:  2,
		Maturity:   0,
		Script:     codec.Bytes{0x90, 0x00, 0x00, 0x47},
		ScriptData: codec.Bytes{0xde, 0xad, 0xbe, 0xef},
		Inputs: []Input{
			{Kind: InputContract, Contract: contract},
		},
		Outputs: []Output{
			{Kind: OutputContract, Contract: contract},
			{Kind: OutputVariable, Amount: 0, Asset: asset},
		},
		Witnesses: []codec.Bytes{{0x01, 0x02, 0x03}},
	}

	b, err := original.Marshal()
	require.NoError(err)

	decoded, err := UnmarshalScript(b)
	require.NoError(err)
	require.Equal(original, decoded)
}

func TestScriptIDIsContentHash(t *testing.T) {
	require := require.New(t)

	a := &Script{GasLimit: 100, Script: codec.Bytes{1}, ScriptData: codec.Bytes{}}
	b := &Script{GasLimit: 100, Script: codec.Bytes{1}, ScriptData: codec.Bytes{}}
	c := &Script{GasLimit: 101, Script: codec.Bytes{1}, ScriptData: codec.Bytes{}}

	aID, err := a.ID()
	require.NoError(err)
	bID, err := b.ID()
	require.NoError(err)
	cID, err := c.ID()
	require.NoError(err)

	require.Equal(aID, bID)
	require.NotEqual(aID, cID)
}

func TestUnmarshalScriptRejectsBogusCounts(t *testing.T) {
	require := require.New(t)

	valid := &Script{Script: codec.Bytes{}, ScriptData: codec.Bytes{}}
	b, err := valid.Marshal()
	require.NoError(err)

	// Overwrite the input count word with a huge value.
	corrupted := make([]byte, len(b))
	copy(corrupted, b)
	countOffset := 4*8 + 8 + 8 // four params, two empty byte fields
	corrupted[countOffset] = 0xff

	_, err = UnmarshalScript(corrupted)
	require.ErrorIs(err, codec.ErrMalformedLength)
}

func TestUnmarshalScriptRejectsTrailingBytes(t *testing.T) {
	require := require.New(t)

	valid := &Script{Script: codec.Bytes{}, ScriptData: codec.Bytes{}}
	b, err := valid.Marshal()
	require.NoError(err)

	_, err = UnmarshalScript(append(b, 0x00))
	require.ErrorIs(err, codec.ErrInvalidSize)
}

func TestUnmarshalScriptTruncated(t *testing.T) {
	require := require.New(t)

	_, err := UnmarshalScript([]byte{0, 1, 2})
	require.ErrorIs(err, codec.ErrTruncatedPayload)
}
