package analyzers

import (
	"context"
	"sort"

	"log-insights/internal/models"

	"github.com/mileusna/useragent"
)

// cancelCheckInterval bounds how many records a fold processes between
// context checks, so a caller can abort any analysis independently.
const cancelCheckInterval = 4096

// TotalRequests returns the cardinality of the record sequence.
func TotalRequests(ctx context.Context, records []*models.Record) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

// StatusHistogram counts records per status code. Keys are unique, the map
// is unordered.
func StatusHistogram(ctx context.Context, records []*models.Record) (map[int]int64, error) {
	counts := make(map[int]int64)
	for i, record := range records {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		counts[record.Status]++
	}
	return counts, nil
}

// TopPages ranks URLs by visit count descending and returns at most k
// entries. Equal counts keep the order in which the URLs first appeared.
func TopPages(ctx context.Context, records []*models.Record, k int) ([]models.PageCount, error) {
	ranked, err := foldRanked(ctx, records, func(r *models.Record) string { return r.URL })
	if err != nil {
		return nil, err
	}
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	pages := make([]models.PageCount, 0, len(ranked))
	for _, entry := range ranked {
		pages = append(pages, models.PageCount{URL: entry.key, Count: entry.count})
	}
	return pages, nil
}

// TrafficSources ranks user agents by count descending, full ranking, with
// the same first-seen tie-break as TopPages. When normalize is set, user
// agents are collapsed to their parsed browser/bot family; an agent the
// parser cannot name keeps its raw string.
func TrafficSources(ctx context.Context, records []*models.Record, normalize bool) ([]models.SourceCount, error) {
	keyFn := func(r *models.Record) string { return r.UserAgent }
	if normalize {
		keyFn = func(r *models.Record) string { return normalizeUserAgent(r.UserAgent) }
	}

	ranked, err := foldRanked(ctx, records, keyFn)
	if err != nil {
		return nil, err
	}

	sources := make([]models.SourceCount, 0, len(ranked))
	for _, entry := range ranked {
		sources = append(sources, models.SourceCount{UserAgent: entry.key, Count: entry.count})
	}
	return sources, nil
}

// SuspiciousIPs counts, per IP, the records whose status is in the failure
// set, and keeps only IPs whose failure count strictly exceeds threshold.
// Order is deterministic: count descending, then IP ascending.
func SuspiciousIPs(ctx context.Context, records []*models.Record, failureStatuses []int, threshold int) ([]models.IPFailureCount, error) {
	failureSet := make(map[int]struct{}, len(failureStatuses))
	for _, status := range failureStatuses {
		failureSet[status] = struct{}{}
	}

	failures := make(map[string]int64)
	for i, record := range records {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if _, failed := failureSet[record.Status]; failed {
			failures[record.IP]++
		}
	}

	suspicious := make([]models.IPFailureCount, 0, len(failures))
	for ip, count := range failures {
		if count > int64(threshold) {
			suspicious = append(suspicious, models.IPFailureCount{IP: ip, Failures: count})
		}
	}
	sort.Slice(suspicious, func(a, b int) bool {
		if suspicious[a].Failures != suspicious[b].Failures {
			return suspicious[a].Failures > suspicious[b].Failures
		}
		return suspicious[a].IP < suspicious[b].IP
	})
	return suspicious, nil
}

// TrafficTrend buckets records by truncating the timestamp string to
// prefixLen characters (16 cuts "YYYY-MM-DD HH:MM:SS" at minute granularity)
// and counts per bucket, ascending by bucket. The fixed-width format makes
// lexicographic order chronological.
func TrafficTrend(ctx context.Context, records []*models.Record, prefixLen int) ([]models.MinuteCount, error) {
	counts := make(map[string]int64)
	for i, record := range records {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		counts[minuteBucket(record.Timestamp, prefixLen)]++
	}

	minutes := make([]string, 0, len(counts))
	for minute := range counts {
		minutes = append(minutes, minute)
	}
	sort.Strings(minutes)

	trend := make([]models.MinuteCount, 0, len(minutes))
	for _, minute := range minutes {
		trend = append(trend, models.MinuteCount{Minute: minute, Count: counts[minute]})
	}
	return trend, nil
}

func minuteBucket(timestamp string, prefixLen int) string {
	if len(timestamp) <= prefixLen {
		return timestamp
	}
	return timestamp[:prefixLen]
}

// normalizeUserAgent parses a user agent to extract its family, or returns
// the original string if parsing yields nothing.
func normalizeUserAgent(ua string) string {
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}

type rankedEntry struct {
	key   string
	count int64
}

// foldRanked counts records per key and returns entries sorted by count
// descending. Entries are accumulated in first-seen order, so the stable
// sort leaves equal counts in first-seen order.
func foldRanked(ctx context.Context, records []*models.Record, keyFn func(*models.Record) string) ([]*rankedEntry, error) {
	byKey := make(map[string]*rankedEntry)
	var ordered []*rankedEntry

	for i, record := range records {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		key := keyFn(record)
		entry, seen := byKey[key]
		if !seen {
			entry = &rankedEntry{key: key}
			byKey[key] = entry
			ordered = append(ordered, entry)
		}
		entry.count++
	}

	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].count > ordered[b].count
	})
	return ordered, nil
}
