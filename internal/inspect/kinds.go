package inspect

import (
	"sort"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
	"github.com/Aidin1998/mango_layouts/pkg/layout/book"
	"github.com/Aidin1998/mango_layouts/pkg/layout/events"
	"github.com/Aidin1998/mango_layouts/pkg/layout/instructions"
	"github.com/Aidin1998/mango_layouts/pkg/layout/records"
)

// Kind names a decodable record.
type Kind string

const (
	KindAuto         Kind = "auto"
	KindMetaData     Kind = "meta_data"
	KindTokenAccount Kind = "token_account"
	KindOpenOrders   Kind = "open_orders"
	KindGroup        Kind = "group"
	KindRootBank     Kind = "root_bank"
	KindNodeBank     Kind = "node_bank"
	KindMangoAccount Kind = "mango_account"
	KindPerpMarket   Kind = "perp_market"
	KindBookSide     Kind = "book_side"
	KindNode         Kind = "node"
	KindEventQueue   Kind = "event_queue"
	KindEvent        Kind = "event"
	KindInstruction  Kind = "instruction"
)

type decodeFunc func([]byte) (any, error)

func wrap[T any](decode func([]byte) (T, error)) decodeFunc {
	return func(data []byte) (any, error) {
		v, err := decode(data)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// decoders holds every concrete kind. KindAuto is resolved before lookup.
var decoders = map[Kind]decodeFunc{
	KindAuto:         nil,
	KindMetaData:     wrap(records.DecodeMetaData),
	KindTokenAccount: wrap(records.DecodeTokenAccount),
	KindOpenOrders:   wrap(records.DecodeOpenOrders),
	KindGroup:        wrap(records.DecodeGroup),
	KindRootBank:     wrap(records.DecodeRootBank),
	KindNodeBank:     wrap(records.DecodeNodeBank),
	KindMangoAccount: wrap(records.DecodeMangoAccount),
	KindPerpMarket:   wrap(records.DecodePerpMarket),
	KindBookSide:     wrap(book.DecodeOrderBookSide),
	KindNode:         wrap(book.DecodeNode),
	KindEventQueue:   wrap(events.DecodeEventQueue),
	KindEvent:        wrap(events.DecodeEvent),
	KindInstruction:  wrap(decodeInstruction),
}

// KindNames returns the accepted kind names, sorted.
func KindNames() []string {
	names := make([]string, 0, len(decoders))
	for k := range decoders {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// kindForDataType maps the Mango metadata tag to the record kind.
var kindForDataType = map[records.DataType]Kind{
	records.DataTypeGroup:      KindGroup,
	records.DataTypeAccount:    KindMangoAccount,
	records.DataTypeRootBank:   KindRootBank,
	records.DataTypeNodeBank:   KindNodeBank,
	records.DataTypePerpMarket: KindPerpMarket,
	records.DataTypeBids:       KindBookSide,
	records.DataTypeAsks:       KindBookSide,
	records.DataTypeEventQueue: KindEventQueue,
}

// Detect picks a kind from the metadata header of a Mango account.
func Detect(data []byte) (Kind, error) {
	meta, err := records.DecodeMetaData(data)
	if err != nil {
		return "", err
	}
	kind, ok := kindForDataType[meta.DataType]
	if !ok {
		return "", errors.Newf(errors.KindUnknownVariant, "no layout for data type %s", meta.DataType).At("meta_data.data_type", 0)
	}
	return kind, nil
}

// Instruction pairs decoded instruction arguments with their variant.
type Instruction struct {
	Variant   instructions.Variant `json:"variant"`
	Supported bool                 `json:"supported"`
	Args      instructions.Args    `json:"args,omitempty"`
}

func decodeInstruction(data []byte) (*Instruction, error) {
	args, err := instructions.Decode(data)
	if err != nil {
		return nil, err
	}
	if u, ok := args.(*instructions.Unsupported); ok {
		return &Instruction{Variant: u.Variant}, nil
	}
	return &Instruction{Variant: args.Discriminant(), Supported: true, Args: args}, nil
}
