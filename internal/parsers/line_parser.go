package parsers

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"

	"log-insights/internal/models"
	"log-insights/internal/shared/metrics"
)

// recordFieldCount is the fixed column layout: ip,timestamp,url,status,user_agent.
const recordFieldCount = 5

const (
	maxLineBytes       = 1024 * 1024
	initialLineBufSize = 64 * 1024
)

// LineParser converts raw delimited text lines into Records.
//
// Parsing is a pure transform: malformed lines are yielded inline as
// ParseErrors next to successfully parsed Records, and the caller decides
// whether to abort or skip and continue.
type LineParser struct {
	delimiter  string
	skipHeader bool
}

func NewLineParser(delimiter string, skipHeader bool) *LineParser {
	return &LineParser{
		delimiter:  delimiter,
		skipHeader: skipHeader,
	}
}

// Parse returns a lazy sequence over r. Each non-blank line yields either a
// Record or a ParseError carrying the 1-based line number; blank lines yield
// nothing. When header skipping is configured, the first non-blank line is
// consumed without yielding. A failure of the underlying reader is yielded
// last as an internal ParseError.
func (p *LineParser) Parse(r io.Reader) iter.Seq2[*models.Record, *ParseError] {
	return func(yield func(*models.Record, *ParseError) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, initialLineBufSize), maxLineBytes)

		lineNo := 0
		headerPending := p.skipHeader

		for scanner.Scan() {
			lineNo++
			line := strings.TrimRight(scanner.Text(), "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if headerPending {
				headerPending = false
				continue
			}

			record, parseErr := p.parseLine(line, lineNo)
			if parseErr != nil {
				metricLinesParsedTotal.WithLabelValues(parseErr.Err.Code).Inc()
				if !yield(nil, parseErr) {
					return
				}
				continue
			}

			metricLinesParsedTotal.WithLabelValues(metrics.ValueNoError).Inc()
			if !yield(record, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(nil, errInputRead(lineNo+1, err))
		}
	}
}

func (p *LineParser) parseLine(line string, lineNo int) (*models.Record, *ParseError) {
	fields := strings.Split(line, p.delimiter)
	if len(fields) < recordFieldCount {
		return nil, errFieldCount(lineNo, len(fields))
	}

	status, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return nil, errStatusFormat(lineNo, fields[3])
	}

	record := &models.Record{
		IP:        strings.TrimSpace(fields[0]),
		Timestamp: strings.TrimSpace(fields[1]),
		URL:       strings.TrimSpace(fields[2]),
		Status:    status,
		// The user agent may itself contain the delimiter; keep the tail intact.
		UserAgent: strings.TrimSpace(strings.Join(fields[4:], p.delimiter)),
	}

	// All five fields must be non-empty; a missing field is rejected, not defaulted.
	if record.IP == "" {
		return nil, errEmptyField(lineNo, "ip")
	}
	if record.Timestamp == "" {
		return nil, errEmptyField(lineNo, "timestamp")
	}
	if record.URL == "" {
		return nil, errEmptyField(lineNo, "url")
	}
	if record.UserAgent == "" {
		return nil, errEmptyField(lineNo, "user_agent")
	}

	return record, nil
}
