package records

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
)

const TokenInfoSize = 72

// TokenInfo describes one token slot of a group. Unused slots have a nil Mint.
type TokenInfo struct {
	Mint     *solana.PublicKey `json:"mint"`
	RootBank *solana.PublicKey `json:"root_bank"`
	Decimals uint8             `json:"decimals"`
}

func (t *TokenInfo) DecodeFrom(r *codec.Reader) {
	t.Mint = r.Identifier("mint")
	t.RootBank = r.Identifier("root_bank")
	t.Decimals = r.Uint8("decimals")
	r.Skip("padding", 7)
}

func (t *TokenInfo) EncodeTo(w *codec.Writer) {
	w.Identifier("mint", t.Mint)
	w.Identifier("root_bank", t.RootBank)
	w.Uint8("decimals", t.Decimals)
	w.Pad("padding", 7)
}

// MarketWeights are the risk weights shared by spot and perp market entries.
type MarketWeights struct {
	MaintAssetWeight decimal.Decimal `json:"maint_asset_weight"`
	InitAssetWeight  decimal.Decimal `json:"init_asset_weight"`
	MaintLiabWeight  decimal.Decimal `json:"maint_liab_weight"`
	InitLiabWeight   decimal.Decimal `json:"init_liab_weight"`
	LiquidationFee   decimal.Decimal `json:"liquidation_fee"`
}

func (m *MarketWeights) decodeFrom(r *codec.Reader) {
	m.MaintAssetWeight = r.I80F48("maint_asset_weight")
	m.InitAssetWeight = r.I80F48("init_asset_weight")
	m.MaintLiabWeight = r.I80F48("maint_liab_weight")
	m.InitLiabWeight = r.I80F48("init_liab_weight")
	m.LiquidationFee = r.I80F48("liquidation_fee")
}

func (m *MarketWeights) encodeTo(w *codec.Writer) {
	w.I80F48("maint_asset_weight", m.MaintAssetWeight)
	w.I80F48("init_asset_weight", m.InitAssetWeight)
	w.I80F48("maint_liab_weight", m.MaintLiabWeight)
	w.I80F48("init_liab_weight", m.InitLiabWeight)
	w.I80F48("liquidation_fee", m.LiquidationFee)
}

const SpotMarketInfoSize = 112

type SpotMarketInfo struct {
	SpotMarket *solana.PublicKey `json:"spot_market"`
	MarketWeights
}

func (s *SpotMarketInfo) DecodeFrom(r *codec.Reader) {
	s.SpotMarket = r.Identifier("spot_market")
	s.MarketWeights.decodeFrom(r)
}

func (s *SpotMarketInfo) EncodeTo(w *codec.Writer) {
	w.Identifier("spot_market", s.SpotMarket)
	s.MarketWeights.encodeTo(w)
}

const PerpMarketInfoSize = 160

type PerpMarketInfo struct {
	PerpMarket *solana.PublicKey `json:"perp_market"`
	MarketWeights
	MakerFee     decimal.Decimal `json:"maker_fee"`
	TakerFee     decimal.Decimal `json:"taker_fee"`
	BaseLotSize  decimal.Decimal `json:"base_lot_size"`
	QuoteLotSize decimal.Decimal `json:"quote_lot_size"`
}

func (p *PerpMarketInfo) DecodeFrom(r *codec.Reader) {
	p.PerpMarket = r.Identifier("perp_market")
	p.MarketWeights.decodeFrom(r)
	p.MakerFee = r.I80F48("maker_fee")
	p.TakerFee = r.I80F48("taker_fee")
	p.BaseLotSize = r.Signed("base_lot_size", 8)
	p.QuoteLotSize = r.Signed("quote_lot_size", 8)
}

func (p *PerpMarketInfo) EncodeTo(w *codec.Writer) {
	w.Identifier("perp_market", p.PerpMarket)
	p.MarketWeights.encodeTo(w)
	w.I80F48("maker_fee", p.MakerFee)
	w.I80F48("taker_fee", p.TakerFee)
	w.Signed("base_lot_size", p.BaseLotSize, 8)
	w.Signed("quote_lot_size", p.QuoteLotSize, 8)
}

const GroupSize = 11984

// Group is the root Mango group account.
type Group struct {
	MetaData      MetaData                    `json:"meta_data"`
	NumOracles    uint64                      `json:"num_oracles"`
	Tokens        [MaxTokens]TokenInfo        `json:"tokens"`
	SpotMarkets   [MaxPairs]SpotMarketInfo    `json:"spot_markets"`
	PerpMarkets   [MaxPairs]PerpMarketInfo    `json:"perp_markets"`
	Oracles       [MaxPairs]*solana.PublicKey `json:"oracles"`
	SignerNonce   uint64                      `json:"signer_nonce"`
	SignerKey     *solana.PublicKey           `json:"signer_key"`
	Admin         *solana.PublicKey           `json:"admin"`
	DexProgramID  *solana.PublicKey           `json:"dex_program_id"`
	Cache         *solana.PublicKey           `json:"cache"`
	ValidInterval uint64                      `json:"valid_interval"`
	DaoVault      *solana.PublicKey           `json:"dao_vault"`
	SrmVault      *solana.PublicKey           `json:"srm_vault"`
	MsrmVault     *solana.PublicKey           `json:"msrm_vault"`
}

func DecodeGroup(data []byte) (*Group, error) {
	return codec.Decode(data, GroupSize, (*Group).DecodeFrom)
}

func (g *Group) Encode() ([]byte, error) {
	return codec.Encode(g, GroupSize, (*Group).EncodeTo)
}

func (g *Group) DecodeFrom(r *codec.Reader) {
	r.Struct("meta_data", func() { g.MetaData.DecodeFrom(r) })
	g.NumOracles = r.Uint64("num_oracles")
	for i := range g.Tokens {
		r.Element("tokens", i, func() { g.Tokens[i].DecodeFrom(r) })
	}
	for i := range g.SpotMarkets {
		r.Element("spot_markets", i, func() { g.SpotMarkets[i].DecodeFrom(r) })
	}
	for i := range g.PerpMarkets {
		r.Element("perp_markets", i, func() { g.PerpMarkets[i].DecodeFrom(r) })
	}
	for i := range g.Oracles {
		r.Element("oracles", i, func() { g.Oracles[i] = r.Identifier("oracle") })
	}
	g.SignerNonce = r.Uint64("signer_nonce")
	g.SignerKey = r.Identifier("signer_key")
	g.Admin = r.Identifier("admin")
	g.DexProgramID = r.Identifier("dex_program_id")
	g.Cache = r.Identifier("cache")
	g.ValidInterval = r.Uint64("valid_interval")
	g.DaoVault = r.Identifier("dao_vault")
	g.SrmVault = r.Identifier("srm_vault")
	g.MsrmVault = r.Identifier("msrm_vault")
}

func (g *Group) EncodeTo(w *codec.Writer) {
	w.Struct("meta_data", func() { g.MetaData.EncodeTo(w) })
	w.Uint64("num_oracles", g.NumOracles)
	for i := range g.Tokens {
		w.Element("tokens", i, func() { g.Tokens[i].EncodeTo(w) })
	}
	for i := range g.SpotMarkets {
		w.Element("spot_markets", i, func() { g.SpotMarkets[i].EncodeTo(w) })
	}
	for i := range g.PerpMarkets {
		w.Element("perp_markets", i, func() { g.PerpMarkets[i].EncodeTo(w) })
	}
	for i := range g.Oracles {
		w.Element("oracles", i, func() { w.Identifier("oracle", g.Oracles[i]) })
	}
	w.Uint64("signer_nonce", g.SignerNonce)
	w.Identifier("signer_key", g.SignerKey)
	w.Identifier("admin", g.Admin)
	w.Identifier("dex_program_id", g.DexProgramID)
	w.Identifier("cache", g.Cache)
	w.Uint64("valid_interval", g.ValidInterval)
	w.Identifier("dao_vault", g.DaoVault)
	w.Identifier("srm_vault", g.SrmVault)
	w.Identifier("msrm_vault", g.MsrmVault)
}
