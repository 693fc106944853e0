package query

import "time"

// Tier bundles the freshness policy of one class of read endpoint.
// StaleTime is how long cached data is served without a refresh; GCTime is
// how long an unused entry survives before eviction.
type Tier struct {
	Name      string
	StaleTime time.Duration
	GCTime    time.Duration
}

// Tiers holds the four volatility classes. Eviction horizons are shorter
// in development so stale data never masks a code change.
type Tiers struct {
	Realtime   Tier
	Dynamic    Tier
	SemiStatic Tier
	Static     Tier
}

// NewTiers builds the tier table for the given mode.
func NewTiers(development bool) Tiers {
	gc := 30 * time.Minute
	realtimeGC := 5 * time.Minute
	if development {
		gc = 5 * time.Minute
		realtimeGC = time.Minute
	}

	return Tiers{
		Realtime:   Tier{Name: "REALTIME", StaleTime: 0, GCTime: realtimeGC},
		Dynamic:    Tier{Name: "DYNAMIC", StaleTime: 30 * time.Second, GCTime: gc},
		SemiStatic: Tier{Name: "SEMI_STATIC", StaleTime: 5 * time.Minute, GCTime: gc},
		Static:     Tier{Name: "STATIC", StaleTime: 30 * time.Minute, GCTime: gc},
	}
}

func (t Tiers) All() []Tier {
	return []Tier{t.Realtime, t.Dynamic, t.SemiStatic, t.Static}
}
