package partitioners

import (
	"sort"

	"log-insights/internal/models"
)

// StatusPartition is one status code and the ordered subsequence of records
// sharing it. Partitions determine output layout only; records are neither
// copied nor mutated.
type StatusPartition struct {
	Status  int
	Records []*models.Record
}

// ByStatus groups records by status code, preserving relative input order
// inside each partition. Partitions come back sorted by status code
// ascending so downstream output is deterministic.
func ByStatus(records []*models.Record) []StatusPartition {
	byStatus := make(map[int][]*models.Record)
	for _, record := range records {
		byStatus[record.Status] = append(byStatus[record.Status], record)
	}

	statuses := make([]int, 0, len(byStatus))
	for status := range byStatus {
		statuses = append(statuses, status)
	}
	sort.Ints(statuses)

	partitions := make([]StatusPartition, 0, len(statuses))
	for _, status := range statuses {
		partitions = append(partitions, StatusPartition{
			Status:  status,
			Records: byStatus[status],
		})
	}
	return partitions
}
