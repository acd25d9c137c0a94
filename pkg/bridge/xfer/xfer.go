// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package xfer implements the XFER record carried by bridge messages.
package xfer

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

// PackedLength is the length of a packed XFER message: four 32-byte slots.
const PackedLength = 4 * 32

// CustomDataLength is the length of the custom data field.
const CustomDataLength = 18

// Tx is the portfolio transaction type carried by an XFER.
type Tx uint8

const (
	Withdraw Tx = iota
	Deposit
	Execution
	IncreaseAvail
	DecreaseAvail
	IxferSent
	IxferRec
	RecoverFunds
	AddGas
	RemoveGas
	AutoFill
	CcTrade
	ConvertFrom
	ConvertTo
)

var txNames = [...]string{
	Withdraw:      "withdraw",
	Deposit:       "deposit",
	Execution:     "execution",
	IncreaseAvail: "increaseAvail",
	DecreaseAvail: "decreaseAvail",
	IxferSent:     "ixferSent",
	IxferRec:      "ixferRec",
	RecoverFunds:  "recoverFunds",
	AddGas:        "addGas",
	RemoveGas:     "removeGas",
	AutoFill:      "autoFill",
	CcTrade:       "ccTrade",
	ConvertFrom:   "convertFrom",
	ConvertTo:     "convertTo",
}

// Valid returns true if the value is a known transaction type.
func (t Tx) Valid() bool { return int(t) < len(txNames) }

func (t Tx) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tx(%d)", uint8(t))
	}
	return txNames[t]
}

// TxByName looks up a transaction type by name, ignoring case.
func TxByName(name string) (Tx, bool) {
	for i, n := range txNames {
		if strings.EqualFold(n, name) {
			return Tx(i), true
		}
	}
	return 0, false
}

func (t Tx) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *Tx) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := TxByName(s)
	if !ok {
		return errors.BadRequest.WithFormat("unknown transaction type %q", s)
	}
	*t = v
	return nil
}

// MessageType is the cross-chain message type.
type MessageType uint8

const (
	MessageTypeXFER MessageType = iota
)

func (m MessageType) Valid() bool { return m == MessageTypeXFER }

func (m MessageType) String() string {
	if m == MessageTypeXFER {
		return "xfer"
	}
	return fmt.Sprintf("MessageType(%d)", uint8(m))
}

// XFER is a portfolio transfer. Field order matches the instruction
// argument encoding.
type XFER struct {
	Nonce       uint64                 `json:"nonce"`
	Transaction Tx                     `json:"transaction"`
	Trader      [32]byte               `json:"trader"`
	Symbol      [32]byte               `json:"symbol"`
	Quantity    uint64                 `json:"quantity"`
	Timestamp   uint32                 `json:"timestamp"`
	CustomData  [CustomDataLength]byte `json:"customData"`
	MessageType MessageType            `json:"messageType"`
}

// New returns an XFER message with the nonce zeroed and the message type
// set to XFER.
func New(tx Tx, trader [32]byte, symbol [32]byte, quantity uint64, timestamp uint32) XFER {
	return XFER{
		Transaction: tx,
		Trader:      trader,
		Symbol:      symbol,
		Quantity:    quantity,
		Timestamp:   timestamp,
		MessageType: MessageTypeXFER,
	}
}

// SymbolString returns the symbol with trailing zero bytes removed.
func (x *XFER) SymbolString() string {
	return strings.TrimRight(string(x.Symbol[:]), "\x00")
}

func (x *XFER) String() string {
	return fmt.Sprintf("%v %d %s for %s (nonce %d)", x.Transaction, x.Quantity, x.SymbolString(), hex.EncodeToString(x.Trader[:]), x.Nonce)
}

// PadSymbol converts a symbol to its fixed 32-byte form.
func PadSymbol(symbol string) ([32]byte, error) {
	var b [32]byte
	if len(symbol) > len(b) {
		return b, errors.BadRequest.WithFormat("symbol %q is longer than %d bytes", symbol, len(b))
	}
	copy(b[:], symbol)
	return b, nil
}

// Pack encodes the message as four big-endian 32-byte slots:
//
//	slot0: custom data (18) | timestamp (4) | nonce (8) | tx (1) | message type (1)
//	slot1: trader
//	slot2: symbol
//	slot3: quantity, right-aligned
func (x *XFER) Pack() []byte {
	b := make([]byte, PackedLength)
	slot0 := b[0:32]
	copy(slot0[:18], x.CustomData[:])
	binary.BigEndian.PutUint32(slot0[18:22], x.Timestamp)
	binary.BigEndian.PutUint64(slot0[22:30], x.Nonce)
	slot0[30] = byte(x.Transaction)
	slot0[31] = byte(x.MessageType)

	copy(b[32:64], x.Trader[:])
	copy(b[64:96], x.Symbol[:])
	binary.BigEndian.PutUint64(b[96+24:128], x.Quantity)
	return b
}

// Unpack decodes a packed message.
func Unpack(b []byte) (*XFER, error) {
	if len(b) != PackedLength {
		return nil, errors.EncodingError.WithFormat("invalid XFER length: want %d, got %d", PackedLength, len(b))
	}

	x := new(XFER)
	slot0 := b[0:32]
	copy(x.CustomData[:], slot0[:18])
	x.Timestamp = binary.BigEndian.Uint32(slot0[18:22])
	x.Nonce = binary.BigEndian.Uint64(slot0[22:30])
	x.Transaction = Tx(slot0[30])
	x.MessageType = MessageType(slot0[31])
	if !x.MessageType.Valid() {
		return nil, errors.EncodingError.WithFormat("unknown message type %d", slot0[31])
	}
	if !x.Transaction.Valid() {
		return nil, errors.EncodingError.WithFormat("unknown transaction type %d", slot0[30])
	}

	copy(x.Trader[:], b[32:64])
	copy(x.Symbol[:], b[64:96])
	x.Quantity = binary.BigEndian.Uint64(b[96+24 : 128])
	return x, nil
}
