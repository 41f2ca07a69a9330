package domain

// Region names one partition of the system. Each region runs its own
// relational inventory/order store; a region is fixed once an operation
// begins.
type Region string

const (
	RegionBoston  Region = "boston"
	RegionDenver  Region = "denver"
	RegionSeattle Region = "seattle"
)

// Regions returns the fixed set of known regions.
func Regions() []Region {
	return []Region{RegionBoston, RegionDenver, RegionSeattle}
}

func (r Region) Valid() bool {
	switch r {
	case RegionBoston, RegionDenver, RegionSeattle:
		return true
	}
	return false
}
