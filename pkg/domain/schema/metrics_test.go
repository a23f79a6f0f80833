package schema

import "testing"

func TestNoDuplicatePhysicalNamesAcrossCatalogues(t *testing.T) {
	seen := make(map[string]string)
	for _, defs := range QuarterTables() {
		for _, d := range defs {
			if prior, ok := seen[d.PhysicalName]; ok {
				t.Errorf("physical name %s appears in both %s and %s", d.PhysicalName, prior, d.SourceTable)
			}
			seen[d.PhysicalName] = d.SourceTable
		}
	}
}

func TestNoDuplicateCanonicalNamesAcrossCatalogues(t *testing.T) {
	seen := make(map[string]string)
	for _, defs := range QuarterTables() {
		for _, d := range defs {
			if prior, ok := seen[d.CanonicalName]; ok {
				t.Errorf("canonical name %s appears in both %s and %s (non-deterministic merge risk, see spec.md §9)", d.CanonicalName, prior, d.SourceTable)
			}
			seen[d.CanonicalName] = d.SourceTable
		}
	}
}

func TestEbitdaFieldPreservedForEvToEbit(t *testing.T) {
	canon := CanonicalNames(IndicatorMetrics)
	if canon["INC_G"] != "ebitda" {
		t.Errorf("INC_G must map to ebitda (preserving the source naming quirk used by ev_to_ebit), got %q", canon["INC_G"])
	}
}

func TestSelectColumnsPreservesOrder(t *testing.T) {
	cols := SelectColumns(DayMetrics)
	if cols[0] != "PE" || cols[len(cols)-1] != "PS" {
		t.Errorf("SelectColumns did not preserve declaration order: %v", cols)
	}
}
