package codemap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadInstrumentUniverse reads the OrderBookID column out of each
// instrument CSV (§6.3: "instruments: list of CSV file paths; each CSV has
// a column OrderBookID") and returns the de-duplicated union across all
// files. No third-party CSV library appears anywhere in the example
// corpus, so this one ambient concern is implemented on the standard
// library (see DESIGN.md).
func ReadInstrumentUniverse(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var ordered []string

	for _, path := range paths {
		ids, err := readOrderBookIDColumn(path)
		if err != nil {
			return nil, fmt.Errorf("instrument file %s: %w", path, err)
		}
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ordered = append(ordered, id)
		}
	}
	return ordered, nil
}

func readOrderBookIDColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := -1
	for i, name := range header {
		if name == "OrderBookID" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("missing OrderBookID column")
	}

	var ids []string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if col < len(record) && record[col] != "" {
			ids = append(ids, record[col])
		}
	}
	return ids, nil
}
