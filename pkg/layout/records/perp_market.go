package records

import (
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/Aidin1998/mango_layouts/pkg/layout/codec"
)

const PerpMarketSize = 320

// PerpMarket is a perpetual futures market account.
type PerpMarket struct {
	MetaData             MetaData          `json:"meta_data"`
	Group                *solana.PublicKey `json:"group"`
	Bids                 *solana.PublicKey `json:"bids"`
	Asks                 *solana.PublicKey `json:"asks"`
	EventQueue           *solana.PublicKey `json:"event_queue"`
	QuoteLotSize         decimal.Decimal   `json:"quote_lot_size"`
	BaseLotSize          decimal.Decimal   `json:"base_lot_size"`
	LongFunding          decimal.Decimal   `json:"long_funding"`
	ShortFunding         decimal.Decimal   `json:"short_funding"`
	OpenInterest         decimal.Decimal   `json:"open_interest"`
	LastUpdated          time.Time         `json:"last_updated"`
	SeqNum               uint64            `json:"seq_num"`
	FeesAccrued          decimal.Decimal   `json:"fees_accrued"`
	MaxDepthBips         decimal.Decimal   `json:"max_depth_bips"`
	Scaler               decimal.Decimal   `json:"scaler"`
	TotalLiquidityPoints decimal.Decimal   `json:"total_liquidity_points"`
	PointsPerMngo        decimal.Decimal   `json:"points_per_mngo"`
	MngoVault            *solana.PublicKey `json:"mngo_vault"`
}

func DecodePerpMarket(data []byte) (*PerpMarket, error) {
	return codec.Decode(data, PerpMarketSize, (*PerpMarket).DecodeFrom)
}

func (m *PerpMarket) Encode() ([]byte, error) {
	return codec.Encode(m, PerpMarketSize, (*PerpMarket).EncodeTo)
}

func (m *PerpMarket) DecodeFrom(r *codec.Reader) {
	r.Struct("meta_data", func() { m.MetaData.DecodeFrom(r) })
	m.Group = r.Identifier("group")
	m.Bids = r.Identifier("bids")
	m.Asks = r.Identifier("asks")
	m.EventQueue = r.Identifier("event_queue")
	m.QuoteLotSize = r.Signed("quote_lot_size", 8)
	m.BaseLotSize = r.Signed("base_lot_size", 8)
	m.LongFunding = r.I80F48("long_funding")
	m.ShortFunding = r.I80F48("short_funding")
	m.OpenInterest = r.Signed("open_interest", 8)
	m.LastUpdated = r.Timestamp("last_updated")
	m.SeqNum = r.Uint64("seq_num")
	m.FeesAccrued = r.I80F48("fees_accrued")
	m.MaxDepthBips = r.I80F48("max_depth_bips")
	m.Scaler = r.I80F48("scaler")
	m.TotalLiquidityPoints = r.I80F48("total_liquidity_points")
	m.PointsPerMngo = r.I80F48("points_per_mngo")
	m.MngoVault = r.Identifier("mngo_vault")
}

func (m *PerpMarket) EncodeTo(w *codec.Writer) {
	w.Struct("meta_data", func() { m.MetaData.EncodeTo(w) })
	w.Identifier("group", m.Group)
	w.Identifier("bids", m.Bids)
	w.Identifier("asks", m.Asks)
	w.Identifier("event_queue", m.EventQueue)
	w.Signed("quote_lot_size", m.QuoteLotSize, 8)
	w.Signed("base_lot_size", m.BaseLotSize, 8)
	w.I80F48("long_funding", m.LongFunding)
	w.I80F48("short_funding", m.ShortFunding)
	w.Signed("open_interest", m.OpenInterest, 8)
	w.Timestamp("last_updated", m.LastUpdated)
	w.Uint64("seq_num", m.SeqNum)
	w.I80F48("fees_accrued", m.FeesAccrued)
	w.I80F48("max_depth_bips", m.MaxDepthBips)
	w.I80F48("scaler", m.Scaler)
	w.I80F48("total_liquidity_points", m.TotalLiquidityPoints)
	w.I80F48("points_per_mngo", m.PointsPerMngo)
	w.Identifier("mngo_vault", m.MngoVault)
}
