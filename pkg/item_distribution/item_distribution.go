package item_distribution

import "time"

// ItemDistribution allocates part of a planned item's quantity to an
// organizational structure on a given date.
type ItemDistribution struct {
	ID            int64
	Quantity      int
	DistributedOn time.Time
	PlannedItemID int64
	StructureID   int64
}
