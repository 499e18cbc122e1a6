package model

import "github.com/shopspring/decimal"

// Tier is one fixed (percentage, total-purchase threshold) pair
type Tier struct {
	Percentage decimal.Decimal
	MinTotal   int
}

// TierTable holds the reward tiers in rank order. Rank i of the table
// is granted to the category ranked i by purchase count: the biggest
// percentage goes to the top category, and each further tier unlocks at
// a higher total.
var TierTable = []Tier{
	{Percentage: decimal.NewFromInt(15), MinTotal: 5},
	{Percentage: decimal.NewFromInt(10), MinTotal: 10},
	{Percentage: decimal.NewFromInt(5), MinTotal: 20},
}

// MinCategoryPurchases is the floor a ranked category must itself reach
// before its rank's tier is granted. A category below it leaves a gap;
// the tier is not shifted to the next category.
const MinCategoryPurchases = 5

// Grant is one computed reward: this category gets this percentage.
// The set of grants for a customer is a pure function of their ledger.
type Grant struct {
	Category   string          `json:"category"`
	Percentage decimal.Decimal `json:"percentage"`
	Rank       int             `json:"rank"`
}
