package domain

const (
	// Ledger channel scope keys
	GLOBAL_CHANNEL_SCOPE = "global"
	BATCH_CHANNEL_PREFIX = "batch:"

	// Wallet history window returned with wallet info
	WALLET_HISTORY_LIMIT = 20

	// Mean earth radius used for route distances
	EARTH_RADIUS_KM = 6371.0

	// Weights, prices and amounts are stored as numeric(20,4)
	AMOUNT_DECIMAL_PLACES = 4
	AMOUNT_INTEGER_DIGITS = 16

	// Weight variance is reported as a percentage with two decimals
	VARIANCE_DECIMAL_PLACES = 2
)
