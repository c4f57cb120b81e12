// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package receipt models the structured records the VM emits while
// executing a transaction.
package receipt

import (
	"fmt"
	"unicode/utf8"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/fuelvm/fuels-go/codec"
)

type Kind uint8

const (
	Call Kind = iota
	Return
	ReturnData
	Panic
	Revert
	Log
	LogData
	Transfer
	TransferOut
	ScriptResult
)

func (k Kind) String() string {
	switch k {
	case Call:
		return "call"
	case Return:
		return "return"
	case ReturnData:
		return "return_data"
	case Panic:
		return "panic"
	case Revert:
		return "revert"
	case Log:
		return "log"
	case LogData:
		return "log_data"
	case Transfer:
		return "transfer"
	case TransferOut:
		return "transfer_out"
	case ScriptResult:
		return "script_result"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Receipt is one execution record. Which fields are meaningful depends on
// [Kind]: Return carries Val, ReturnData and LogData carry Data, Log
// carries the Ra..Rd register values, Transfer and TransferOut carry
// Amount/Asset/To, Panic and Revert carry Val as the reason code.
type Receipt struct {
	Kind     Kind        `json:"kind"`
	Contract ids.ID      `json:"contract,omitempty"`
	Val      uint64      `json:"val,omitempty"`
	Data     codec.Bytes `json:"data,omitempty"`
	Ra       uint64      `json:"ra,omitempty"`
	Rb       uint64      `json:"rb,omitempty"`
	Rc       uint64      `json:"rc,omitempty"`
	Rd       uint64      `json:"rd,omitempty"`
	To       ids.ID      `json:"to,omitempty"`
	Amount   uint64      `json:"amount,omitempty"`
	Asset    ids.ID      `json:"asset,omitempty"`
	GasUsed  uint64      `json:"gasUsed,omitempty"`
	Result   uint64      `json:"result,omitempty"`
}

// IsLog reports whether the receipt is one of the log kinds.
func (r Receipt) IsLog() bool {
	return r.Kind == Log || r.Kind == LogData
}

// IsReturn reports whether the receipt carries the method's return value.
func (r Receipt) IsReturn() bool {
	return r.Kind == Return || r.Kind == ReturnData
}

// FindReturn scans receipts for the one carrying the return value. The VM
// emits at most one per call frame; the last one belongs to the outermost
// call.
func FindReturn(receipts []Receipt) (Receipt, bool) {
	for i := len(receipts) - 1; i >= 0; i-- {
		if receipts[i].IsReturn() {
			return receipts[i], true
		}
	}
	return Receipt{}, false
}

// CollectLogs extracts every log receipt's payload, in execution order, as a
// printable string. Register logs render their first register value;
// data logs render their payload verbatim when it is valid UTF-8 and hex
// otherwise.
func CollectLogs(receipts []Receipt) []string {
	var logs []string
	for _, r := range receipts {
		switch r.Kind {
		case Log:
			logs = append(logs, fmt.Sprintf("%d", r.Ra))
		case LogData:
			if utf8.Valid(r.Data) {
				logs = append(logs, string(r.Data))
			} else {
				logs = append(logs, r.Data.String())
			}
		}
	}
	return logs
}

// Reverted reports whether execution aborted, along with the revert receipt.
func Reverted(receipts []Receipt) (Receipt, bool) {
	for _, r := range receipts {
		if r.Kind == Revert || r.Kind == Panic {
			return r, true
		}
	}
	return Receipt{}, false
}
