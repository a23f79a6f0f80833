// Package codemap builds the three code bijections the pipeline needs:
// comcode <-> stockcode, inner_code <-> stockcode, and the full
// orderbookid universe each bare stockcode belongs to. Per spec.md §9's
// own redesign recommendation, Maps is an explicit, immutably-constructed
// value threaded through the pipeline as a parameter — never a package
// singleton.
//
// The original implementation builds these in two steps: stk_code gives a
// bare stockcode (no exchange suffix), which is then composed against a
// second, CSV-derived bare-code -> full-orderbookid map. This port
// collapses that into direct bijections: Build resolves the full
// orderbookid inline while composing the database rows, so Maps holds only
// the bijections callers actually need.
package codemap

import (
	"context"
	"fmt"
	"strings"

	"fundamentals/pkg/store"
)

// Maps holds the three code bijections, built once per pipeline run.
type Maps struct {
	ComCodeToStock   map[string]string
	StockToComCode   map[string]string
	InnerCodeToStock map[string]string
	StockToInnerCode map[string]string
	OrderBookIDs     []string
}

// BareCode strips the exchange suffix from a full order book id, e.g.
// "000001.XSHE" -> "000001".
func BareCode(orderBookID string) string {
	if i := strings.IndexByte(orderBookID, '.'); i >= 0 {
		return orderBookID[:i]
	}
	return orderBookID
}

// BareToOrderBookID indexes a universe of full order book ids by their bare
// code, so that stk_code rows (which carry only the bare code) can be
// resolved to the exchange-qualified identifier used everywhere else in the
// pipeline.
func BareToOrderBookID(orderBookIDs []string) map[string]string {
	m := make(map[string]string, len(orderBookIDs))
	for _, id := range orderBookIDs {
		m[BareCode(id)] = id
	}
	return m
}

type codeRow struct {
	code      string // comcode or inner_code
	bareStock string
}

// composeCodeMap composes stk_code rows (code -> bare stockcode) with the
// bare-code -> orderbookid index to produce the final code -> orderbookid
// bijection, dropping any row whose bare stockcode falls outside the
// configured instrument universe (§4.2.1's "drop the row if its comcode
// maps to no stock in the universe").
func composeCodeMap(rows []codeRow, bareToOrder map[string]string) map[string]string {
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		if stock, ok := bareToOrder[r.bareStock]; ok {
			out[r.code] = stock
		}
	}
	return out
}

// Invert builds the reverse mapping of a bijection. Last write wins on
// duplicate values, which cannot happen for a genuine bijection.
func Invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Build constructs Maps from the instrument universe (CSV paths) and the
// source database's stk_code table, restricted to stockcodes present in the
// universe.
func Build(ctx context.Context, src store.Querier, instrumentPaths []string) (*Maps, error) {
	orderBookIDs, err := ReadInstrumentUniverse(instrumentPaths)
	if err != nil {
		return nil, fmt.Errorf("read instrument universe: %w", err)
	}
	bareToOrder := BareToOrderBookID(orderBookIDs)

	bareCodes := make([]string, 0, len(bareToOrder))
	for bare := range bareToOrder {
		bareCodes = append(bareCodes, bare)
	}

	comRows, err := queryCodeRows(ctx, src, "comcode", bareCodes)
	if err != nil {
		return nil, fmt.Errorf("query comcode map: %w", err)
	}
	innerRows, err := queryCodeRows(ctx, src, "inner_code", bareCodes)
	if err != nil {
		return nil, fmt.Errorf("query inner_code map: %w", err)
	}

	comCodeToStock := composeCodeMap(comRows, bareToOrder)
	innerCodeToStock := composeCodeMap(innerRows, bareToOrder)

	return &Maps{
		ComCodeToStock:   comCodeToStock,
		StockToComCode:   Invert(comCodeToStock),
		InnerCodeToStock: innerCodeToStock,
		StockToInnerCode: Invert(innerCodeToStock),
		OrderBookIDs:     orderBookIDs,
	}, nil
}

func queryCodeRows(ctx context.Context, q store.Querier, codeColumn string, bareCodes []string) ([]codeRow, error) {
	sql := fmt.Sprintf(
		"SELECT %s AS code, stockcode AS bare_stock FROM stk_code WHERE stockcode = ANY($1)",
		codeColumn,
	)
	rows, err := q.Query(ctx, sql, bareCodes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []codeRow
	for rows.Next() {
		var r codeRow
		if err := rows.Scan(&r.code, &r.bareStock); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
