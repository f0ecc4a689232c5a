package domain

// Pool is a traffic-management pool as returned by the zone's rrset query.
type Pool struct {
	Name string
	Type string
}

// PoolRecord is the unit of the final report: one pool discovered in one
// subaccount's zone. Records are appended in discovery order and rendered
// exactly once.
type PoolRecord struct {
	Subaccount string `json:"subaccount"`
	Zone       string `json:"zone"`
	PoolName   string `json:"pool_name"`
	PoolType   string `json:"pool_type"`
}
