package types

// DefaultLowStockThreshold is the threshold used when a caller does not
// supply one. Items with a quantity strictly below it are low on stock.
const DefaultLowStockThreshold = 5

// Entry is one row of the inventory mapping.
type Entry struct {
	// Item is the item identifier; never empty.
	Item string `json:"item"`

	// Quantity is the stored quantity. Entries left by an add may hold zero
	// or negative values; entries touched by a remove never do.
	Quantity int `json:"quantity"`
}
