// Package records defines the fixed-size account layouts of the Mango v3
// program and the Serum and SPL token accounts it reads.
//
// Every record has a Size constant, a Decode<Name> function for a raw account
// buffer and an Encode method producing exactly Size bytes. Nested records
// expose DecodeFrom and EncodeTo so other layouts can embed them.
package records

import (
	"fmt"

	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
)

// Protocol maxima.
const (
	MaxTokens    = 32
	MaxPairs     = MaxTokens - 1
	MaxNodeBanks = 8
	QuoteIndex   = MaxTokens - 1
)

// DataType is the record-type tag at the start of every Mango account.
type DataType uint8

const (
	DataTypeGroup DataType = iota
	DataTypeAccount
	DataTypeRootBank
	DataTypeNodeBank
	DataTypePerpMarket
	DataTypeBids
	DataTypeAsks
	DataTypeCache
	DataTypeEventQueue
)

var dataTypeNames = [...]string{
	DataTypeGroup:      "Group",
	DataTypeAccount:    "Account",
	DataTypeRootBank:   "RootBank",
	DataTypeNodeBank:   "NodeBank",
	DataTypePerpMarket: "PerpMarket",
	DataTypeBids:       "Bids",
	DataTypeAsks:       "Asks",
	DataTypeCache:      "Cache",
	DataTypeEventQueue: "EventQueue",
}

// String returns the type name, or the raw number for tags the program may
// add later. Unknown tags are carried through rather than rejected.
func (d DataType) String() string {
	if int(d) < len(dataTypeNames) {
		return dataTypeNames[d]
	}
	return fmt.Sprintf("DataType(%d)", uint8(d))
}

func (d DataType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

const MetaDataSize = 8

// MetaData is the common header of Mango accounts.
type MetaData struct {
	DataType      DataType `json:"data_type"`
	Version       uint8    `json:"version"`
	IsInitialized bool     `json:"is_initialized"`
}

func DecodeMetaData(data []byte) (*MetaData, error) {
	return codec.Decode(data, MetaDataSize, (*MetaData).DecodeFrom)
}

func (m *MetaData) Encode() ([]byte, error) {
	return codec.Encode(m, MetaDataSize, (*MetaData).EncodeTo)
}

func (m *MetaData) DecodeFrom(r *codec.Reader) {
	m.DataType = DataType(r.Uint8("data_type"))
	m.Version = r.Uint8("version")
	m.IsInitialized = r.Bool("is_initialized")
	r.Skip("padding", 5)
}

func (m *MetaData) EncodeTo(w *codec.Writer) {
	w.Uint8("data_type", uint8(m.DataType))
	w.Uint8("version", m.Version)
	w.Bool("is_initialized", m.IsInitialized)
	w.Pad("padding", 5)
}

const AccountFlagsSize = 8

// AccountFlags is the Serum account-flags word. Only the low eight bits are
// defined; the rest are ignored on decode and written as zero.
type AccountFlags struct {
	Initialized  bool `json:"initialized"`
	Market       bool `json:"market"`
	OpenOrders   bool `json:"open_orders"`
	RequestQueue bool `json:"request_queue"`
	EventQueue   bool `json:"event_queue"`
	Bids         bool `json:"bids"`
	Asks         bool `json:"asks"`
	Disabled     bool `json:"disabled"`
}

func DecodeAccountFlags(data []byte) (*AccountFlags, error) {
	return codec.Decode(data, AccountFlagsSize, (*AccountFlags).DecodeFrom)
}

func (f *AccountFlags) Encode() ([]byte, error) {
	return codec.Encode(f, AccountFlagsSize, (*AccountFlags).EncodeTo)
}

func (f *AccountFlags) bits() []*bool {
	return []*bool{
		&f.Initialized, &f.Market, &f.OpenOrders, &f.RequestQueue,
		&f.EventQueue, &f.Bids, &f.Asks, &f.Disabled,
	}
}

func (f *AccountFlags) DecodeFrom(r *codec.Reader) {
	word := r.Uint64("account_flags")
	for i, flag := range f.bits() {
		*flag = word&(1<<uint(i)) != 0
	}
}

func (f *AccountFlags) EncodeTo(w *codec.Writer) {
	var word uint64
	for i, flag := range f.bits() {
		if *flag {
			word |= 1 << uint(i)
		}
	}
	w.Uint64("account_flags", word)
}
