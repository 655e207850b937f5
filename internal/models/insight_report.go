package models

// InsightReport holds the six analysis results of one batch run.
//
// Ranked slices carry their documented order: TopPages and TrafficSources
// are count-descending with first-seen tie-break, SuspiciousIPs is
// count-descending then IP-ascending, TrafficTrend is minute-ascending.
// StatusCounts is an unordered map; consumers that need a stable order sort
// the keys themselves.
type InsightReport struct {
	RunID          string
	TotalRequests  int64
	StatusCounts   map[int]int64
	TopPages       []PageCount
	TrafficSources []SourceCount
	SuspiciousIPs  []IPFailureCount
	TrafficTrend   []MinuteCount
}

type PageCount struct {
	URL   string
	Count int64
}

type SourceCount struct {
	UserAgent string
	Count     int64
}

type IPFailureCount struct {
	IP       string
	Failures int64
}

type MinuteCount struct {
	Minute string
	Count  int64
}
