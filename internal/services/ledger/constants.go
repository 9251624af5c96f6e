package ledger

// DefaultCurrency is the only active currency. Amounts are kobo.
const DefaultCurrency = "NGN"

// DefaultMaxAmountKobo caps a single movement at ₦100,000,000. The cap is
// applied uniformly across credit, debit and transfer.
const DefaultMaxAmountKobo int64 = 10_000_000_000
