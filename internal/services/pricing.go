package services

// Fixed internal prices. TCN is quoted at $0.01 and TCGold at $2.50, so one
// TCGold trades for 250 TCN on the internal exchange.
const (
	TcGoldUsdCents = 250
	TcnUsdCents    = 1
	TcnPerTcGold   = TcGoldUsdCents / TcnUsdCents
)

// MaxLedgerAmount caps the amount a single operation may carry. Fixed-rate
// products (amount * 250) stay far below the int64 limit, so no accepted
// input can wrap negative and defeat a balance predicate.
const MaxLedgerAmount = 1_000_000_000_000

func validLedgerAmount(n int64) bool {
	return n > 0 && n <= MaxLedgerAmount
}

// RequiredHold returns the minimum TCGold balance a user must hold, without
// spending it, to submit a TCN withdrawal: 1% of the requested amount rounded
// up, never less than 1.
func RequiredHold(amountTcn int64) int64 {
	hold := (amountTcn + 99) / 100
	if hold < 1 {
		hold = 1
	}
	return hold
}

// PurchaseUsdCents is the USD value of a BTC-funded TCGold purchase.
func PurchaseUsdCents(tcgAmount int64) int64 {
	return tcgAmount * TcGoldUsdCents
}
