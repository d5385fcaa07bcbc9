package records

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidin1998/mango_layouts/pkg/errors"
	"github.com/Aidin1998/mango_layouts/testutil"
)

type encoder interface {
	Encode() ([]byte, error)
}

func TestRecordSizes(t *testing.T) {
	tests := []struct {
		name string
		rec  encoder
		size int
	}{
		{"meta data", &MetaData{}, MetaDataSize},
		{"account flags", &AccountFlags{}, AccountFlagsSize},
		{"token account", &TokenAccount{}, TokenAccountSize},
		{"open orders", &OpenOrders{}, OpenOrdersSize},
		{"group", &Group{}, GroupSize},
		{"root bank", &RootBank{}, RootBankSize},
		{"node bank", &NodeBank{}, NodeBankSize},
		{"mango account", &MangoAccount{}, MangoAccountSize},
		{"perp market", &PerpMarket{}, PerpMarketSize},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := tc.rec.Encode()
			require.NoError(t, err)
			assert.Len(t, raw, tc.size)
		})
	}
}

func TestNestedRecordSizes(t *testing.T) {
	assert.Equal(t, 72, TokenInfoSize)
	assert.Equal(t, GroupSize, MetaDataSize+8+MaxTokens*TokenInfoSize+MaxPairs*SpotMarketInfoSize+
		MaxPairs*PerpMarketInfoSize+MaxPairs*32+8+4*32+8+3*32)
	assert.Equal(t, PerpAccountSize, 8+3*16+PerpOpenOrdersSize+16)
	assert.Equal(t, MangoAccountSize, MetaDataSize+2*32+MaxPairs+1+2*MaxTokens*16+MaxPairs*32+
		MaxPairs*PerpAccountSize+8+2+6)
}

func TestMetaDataRoundTrip(t *testing.T) {
	raw := []byte{byte(DataTypeRootBank), 1, 1, 0, 0, 0, 0, 0}
	m, err := DecodeMetaData(raw)
	require.NoError(t, err)
	assert.Equal(t, MetaData{DataType: DataTypeRootBank, Version: 1, IsInitialized: true}, *m)
	assert.Equal(t, "RootBank", m.DataType.String())

	back, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, back)

	assert.Equal(t, "DataType(42)", DataType(42).String())
}

func TestAccountFlags(t *testing.T) {
	raw := []byte{0b1000_0101, 0xff, 0, 0, 0, 0, 0, 0}
	f, err := DecodeAccountFlags(raw)
	require.NoError(t, err)
	assert.Equal(t, AccountFlags{Initialized: true, OpenOrders: true, Disabled: true}, *f)

	// Reserved bits are dropped on the way back.
	back, err := f.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0b1000_0101, 0, 0, 0, 0, 0, 0, 0}, back)
}

func TestDecodeTokenAccount(t *testing.T) {
	raw := make([]byte, TokenAccountSize)
	copy(raw[0:], testutil.Key(1)[:])
	copy(raw[32:], testutil.Key(2)[:])
	binary.LittleEndian.PutUint64(raw[64:], 1_500_000)

	acct, err := DecodeTokenAccount(raw)
	require.NoError(t, err)
	assert.Equal(t, testutil.Key(1), acct.Mint)
	assert.Equal(t, testutil.Key(2), acct.Owner)
	assert.Equal(t, "1500000", acct.Amount.String())

	back, err := acct.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestDecodeOpenOrders(t *testing.T) {
	raw := make([]byte, OpenOrdersSize)
	raw[5] = 0b101 // initialized, open_orders
	copy(raw[13:], testutil.Key(3)[:])
	copy(raw[45:], testutil.Key(4)[:])
	binary.LittleEndian.PutUint64(raw[77:], 10)
	binary.LittleEndian.PutUint64(raw[85:], 20)
	// orders[1] = 2^64 + 9
	binary.LittleEndian.PutUint64(raw[141+16:], 9)
	binary.LittleEndian.PutUint64(raw[141+16+8:], 1)
	// client_ids[127]
	binary.LittleEndian.PutUint64(raw[2189+127*8:], 77)
	binary.LittleEndian.PutUint64(raw[3213:], 5)

	oo, err := DecodeOpenOrders(raw)
	require.NoError(t, err)
	assert.True(t, oo.AccountFlags.Initialized)
	assert.True(t, oo.AccountFlags.OpenOrders)
	assert.False(t, oo.AccountFlags.Market)
	assert.Equal(t, testutil.Key(3), oo.Market)
	assert.Equal(t, testutil.Key(4), oo.Owner)
	assert.Equal(t, "10", oo.BaseTokenFree.String())
	assert.Equal(t, "20", oo.BaseTokenTotal.String())
	assert.Equal(t, "18446744073709551625", oo.Orders[1].String())
	assert.True(t, oo.Orders[0].IsZero())
	assert.Equal(t, uint64(77), oo.ClientIDs[127])
	assert.Equal(t, "5", oo.ReferrerRebateAccrued.String())

	back, err := oo.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestDecodeGroupOffsets(t *testing.T) {
	raw := make([]byte, GroupSize)
	raw[0] = byte(DataTypeGroup)
	raw[2] = 1
	binary.LittleEndian.PutUint64(raw[8:], 3)
	// tokens[0] and the quote token
	copy(raw[16:], testutil.Key(10)[:])
	copy(raw[16+32:], testutil.Key(11)[:])
	raw[16+64] = 6
	copy(raw[16+QuoteIndex*TokenInfoSize:], testutil.Key(12)[:])
	// spot_markets[0].init_asset_weight
	spot := 16 + MaxTokens*TokenInfoSize
	copy(raw[spot+32+16:], testutil.I80F48(2))
	// perp_markets[2].base_lot_size = -5
	perp := spot + MaxPairs*SpotMarketInfoSize + 2*PerpMarketInfoSize
	binary.LittleEndian.PutUint64(raw[perp+144:], ^uint64(4))
	oracles := spot + MaxPairs*SpotMarketInfoSize + MaxPairs*PerpMarketInfoSize
	copy(raw[oracles+30*32:], testutil.Key(13)[:])
	binary.LittleEndian.PutUint64(raw[11744:], 255)
	binary.LittleEndian.PutUint64(raw[11880:], 5)
	copy(raw[11952:], testutil.Key(14)[:])

	g, err := DecodeGroup(raw)
	require.NoError(t, err)
	assert.True(t, g.MetaData.IsInitialized)
	assert.Equal(t, uint64(3), g.NumOracles)
	assert.Equal(t, testutil.Key(10), g.Tokens[0].Mint)
	assert.Equal(t, testutil.Key(11), g.Tokens[0].RootBank)
	assert.Equal(t, uint8(6), g.Tokens[0].Decimals)
	assert.Nil(t, g.Tokens[1].Mint)
	assert.Equal(t, testutil.Key(12), g.Tokens[QuoteIndex].Mint)
	assert.True(t, g.SpotMarkets[0].InitAssetWeight.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "-5", g.PerpMarkets[2].BaseLotSize.String())
	assert.Equal(t, testutil.Key(13), g.Oracles[30])
	assert.Equal(t, uint64(255), g.SignerNonce)
	assert.Equal(t, uint64(5), g.ValidInterval)
	assert.Equal(t, testutil.Key(14), g.MsrmVault)
	assert.Nil(t, g.Admin)

	back, err := g.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestDecodeGroupTruncatedNamesField(t *testing.T) {
	raw := make([]byte, GroupSize)
	_, err := DecodeGroup(raw[:100])
	assert.ErrorIs(t, err, errors.ErrTruncatedInput)

	// Trailing bytes past the record are ignored.
	_, err = DecodeGroup(append(raw, 1, 2, 3))
	assert.NoError(t, err)
}

func TestRootBankRoundTrip(t *testing.T) {
	want := &RootBank{
		MetaData:     MetaData{DataType: DataTypeRootBank, Version: 0, IsInitialized: true},
		OptimalUtil:  decimal.RequireFromString("0.7"),
		OptimalRate:  decimal.RequireFromString("0.0625"),
		MaxRate:      decimal.RequireFromString("1.5"),
		NumNodeBanks: 1,
		DepositIndex: decimal.RequireFromString("1.000030517578125"),
		BorrowIndex:  decimal.NewFromInt(1),
		LastUpdated:  time.Date(2021, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	want.NodeBanks[0] = testutil.Key(7)

	// 0.7 is not a multiple of 2^-48, so it must be rejected rather than rounded.
	_, err := want.Encode()
	assert.ErrorIs(t, err, errors.ErrUnsupportedEncode)
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "optimal_util", e.Field)
	assert.Equal(t, MetaDataSize, e.Offset)

	want.OptimalUtil = decimal.RequireFromString("0.75")
	raw, err := want.Encode()
	require.NoError(t, err)
	require.Len(t, raw, RootBankSize)

	got, err := DecodeRootBank(raw)
	require.NoError(t, err)
	assert.True(t, got.OptimalUtil.Equal(want.OptimalUtil))
	assert.True(t, got.DepositIndex.Equal(want.DepositIndex))
	assert.Equal(t, want.NodeBanks, got.NodeBanks)
	assert.Equal(t, want.LastUpdated, got.LastUpdated)

	again, err := got.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, again)
}

func TestNodeBankRoundTrip(t *testing.T) {
	raw := make([]byte, NodeBankSize)
	raw[0] = byte(DataTypeNodeBank)
	copy(raw[8:], testutil.I80F48(1000))
	copy(raw[24:], testutil.I80F48(250))
	copy(raw[40:], testutil.Key(9)[:])

	nb, err := DecodeNodeBank(raw)
	require.NoError(t, err)
	assert.Equal(t, DataTypeNodeBank, nb.MetaData.DataType)
	assert.True(t, nb.Deposits.Equal(decimal.NewFromInt(1000)))
	assert.True(t, nb.Borrows.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, testutil.Key(9), nb.Vault)

	back, err := nb.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestDecodeMangoAccountOffsets(t *testing.T) {
	raw := make([]byte, MangoAccountSize)
	raw[0] = byte(DataTypeAccount)
	copy(raw[8:], testutil.Key(1)[:])
	copy(raw[40:], testutil.Key(2)[:])
	raw[72+3] = 1
	raw[103] = 1
	copy(raw[104+QuoteIndex*16:], testutil.I80F48(42))
	copy(raw[616:], testutil.I80F48(3))
	copy(raw[1128+32:], testutil.Key(5)[:])
	// perp_accounts[1]: base_position = -2, open_orders.client_order_ids[0] = 99
	perp := 2120 + PerpAccountSize
	binary.LittleEndian.PutUint64(raw[perp:], ^uint64(1))
	binary.LittleEndian.PutUint64(raw[perp+56+24+MaxTokens*16:], 99)
	binary.LittleEndian.PutUint64(raw[28904:], 10_000)
	raw[28913] = 1

	a, err := DecodeMangoAccount(raw)
	require.NoError(t, err)
	assert.Equal(t, testutil.Key(1), a.Group)
	assert.Equal(t, testutil.Key(2), a.Owner)
	assert.True(t, a.InMarginBasket[3])
	assert.False(t, a.InMarginBasket[2])
	assert.Equal(t, uint8(1), a.NumInMarginBasket)
	assert.True(t, a.Deposits[QuoteIndex].Equal(decimal.NewFromInt(42)))
	assert.True(t, a.Borrows[0].Equal(decimal.NewFromInt(3)))
	assert.Nil(t, a.SpotOpenOrders[0])
	assert.Equal(t, testutil.Key(5), a.SpotOpenOrders[1])
	assert.Equal(t, "-2", a.PerpAccounts[1].BasePosition.String())
	assert.Equal(t, int64(99), a.PerpAccounts[1].OpenOrders.ClientOrderIDs[0])
	assert.Equal(t, "10000", a.MsrmAmount.String())
	assert.False(t, a.BeingLiquidated)
	assert.True(t, a.IsBankrupt)

	back, err := a.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestDecodePerpMarket(t *testing.T) {
	raw := make([]byte, PerpMarketSize)
	raw[0] = byte(DataTypePerpMarket)
	copy(raw[8:], testutil.Key(1)[:])
	copy(raw[40:], testutil.Key(2)[:])
	copy(raw[72:], testutil.Key(3)[:])
	copy(raw[104:], testutil.Key(4)[:])
	binary.LittleEndian.PutUint64(raw[136:], 10)
	binary.LittleEndian.PutUint64(raw[144:], 100)
	binary.LittleEndian.PutUint64(raw[184:], ^uint64(0))
	binary.LittleEndian.PutUint64(raw[192:], 1_630_000_000)
	binary.LittleEndian.PutUint64(raw[200:], 12345)
	copy(raw[288:], testutil.Key(5)[:])

	m, err := DecodePerpMarket(raw)
	require.NoError(t, err)
	assert.Equal(t, testutil.Key(4), m.EventQueue)
	assert.Equal(t, "10", m.QuoteLotSize.String())
	assert.Equal(t, "100", m.BaseLotSize.String())
	assert.Equal(t, "-1", m.OpenInterest.String())
	assert.Equal(t, int64(1_630_000_000), m.LastUpdated.Unix())
	assert.Equal(t, uint64(12345), m.SeqNum)
	assert.Equal(t, testutil.Key(5), m.MngoVault)

	back, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}
