package services

// Policy holds the tunable constants of route planning.
type Policy struct {
	// RadiusKm is the maximum distance between two stays of different users
	// for a handover between them.
	RadiusKm float64
	// HorizonDays bounds how far past the calculation date a route may reach.
	HorizonDays int
	// DailyWaitDays, WeeklyWaitDays and SometimesWaitDays are the expected
	// waits until the next presence for recurring stays.
	DailyWaitDays     int
	WeeklyWaitDays    int
	SometimesWaitDays int
	// FallbackWaitDays is used for stays whose next presence cannot be told,
	// e.g. one-time stays without a start date.
	FallbackWaitDays int
}

// DefaultPolicy returns the production defaults.
func DefaultPolicy() Policy {
	return Policy{
		RadiusKm:          10,
		HorizonDays:       60,
		DailyWaitDays:     1,
		WeeklyWaitDays:    3,
		SometimesWaitDays: 14,
		FallbackWaitDays:  14,
	}
}
