package vmisknn

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ReadTrainingFile parses a tab-separated training corpus with a header
// row and columns SessionId, ItemId, Time (Time may carry a fractional
// part and is rounded to the nearest second). Row order is arbitrary.
func ReadTrainingFile(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []Event
	lineNo := 0
	sawHeader := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !sawHeader {
			sawHeader = true
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 fields, got %d", ErrMalformedInput, lineNo, len(fields))
		}

		session, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: session id: %v", ErrMalformedInput, lineNo, err)
		}
		item, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: item id: %v", ErrMalformedInput, lineNo, err)
		}
		timeVal, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: time: %v", ErrMalformedInput, lineNo, err)
		}

		events = append(events, Event{
			ExternalSession: uint32(session),
			Item:            item,
			Time:            Timestamp(timeVal + 0.5),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(events) == 0 {
		return nil, ErrEmptyCorpus
	}
	return events, nil
}

// ReadAttributesFile parses a tab-separated item attribute file with a
// header row and columns ItemId, IsForSale, IsAdult (booleans as "true"/
// "false" or "1"/"0"). Items absent from the file are left out of the
// returned map, and are treated as non-recommendable by the default
// business rule (see filter.go).
func ReadAttributesFile(r io.Reader) (map[ItemID]ItemAttributes, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	attrs := make(map[ItemID]ItemAttributes)
	lineNo := 0
	sawHeader := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !sawHeader {
			sawHeader = true
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 fields, got %d", ErrMalformedInput, lineNo, len(fields))
		}

		item, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: item id: %v", ErrMalformedInput, lineNo, err)
		}
		isForSale, err := strconv.ParseBool(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: is_for_sale: %v", ErrMalformedInput, lineNo, err)
		}
		isAdult, err := strconv.ParseBool(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: is_adult: %v", ErrMalformedInput, lineNo, err)
		}

		attrs[item] = ItemAttributes{IsForSale: isForSale, IsAdult: isAdult}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return attrs, nil
}

// Ingest groups raw events by external session id, deduplicates items
// within a session, and assigns dense session indices in first-emission
// order (stable order of appearance after sorting by external session
// id). It returns ErrEmptyCorpus if no sessions survive.
func Ingest(events []Event) (*sessions, error) {
	if len(events) == 0 {
		return nil, ErrEmptyCorpus
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ExternalSession < sorted[j].ExternalSession
	})

	out := &sessions{}

	flush := func(seen map[ItemID]struct{}, buf []ItemID, maxTS Timestamp) {
		items := make([]ItemID, len(buf))
		copy(items, buf)
		sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
		out.items = append(out.items, items)
		out.maxTS = append(out.maxTS, maxTS)
		for k := range seen {
			delete(seen, k)
		}
	}

	seen := make(map[ItemID]struct{})
	var buf []ItemID
	var maxTS Timestamp
	currentExternal := sorted[0].ExternalSession
	haveCurrent := false

	for _, ev := range sorted {
		if haveCurrent && ev.ExternalSession != currentExternal {
			flush(seen, buf, maxTS)
			buf = buf[:0]
			maxTS = 0
		}
		currentExternal = ev.ExternalSession
		haveCurrent = true

		if _, dup := seen[ev.Item]; !dup {
			seen[ev.Item] = struct{}{}
			buf = append(buf, ev.Item)
		}
		if ev.Time > maxTS {
			maxTS = ev.Time
		}
	}
	if haveCurrent {
		flush(seen, buf, maxTS)
	}

	if out.count() == 0 {
		return nil, ErrEmptyCorpus
	}
	return out, nil
}
