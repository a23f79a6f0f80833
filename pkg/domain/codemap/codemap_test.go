package codemap

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBareCode(t *testing.T) {
	if got := BareCode("000001.XSHE"); got != "000001" {
		t.Errorf("BareCode = %q, want 000001", got)
	}
	if got := BareCode("noSuffix"); got != "noSuffix" {
		t.Errorf("BareCode with no dot should pass through unchanged, got %q", got)
	}
}

func TestBareToOrderBookID(t *testing.T) {
	m := BareToOrderBookID([]string{"000001.XSHE", "600000.XSHG"})
	want := map[string]string{"000001": "000001.XSHE", "600000": "600000.XSHG"}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("BareToOrderBookID = %v, want %v", m, want)
	}
}

func TestComposeCodeMapDropsOutOfUniverse(t *testing.T) {
	bareToOrder := BareToOrderBookID([]string{"000001.XSHE"})
	rows := []codeRow{
		{code: "10000001", bareStock: "000001"},
		{code: "10000002", bareStock: "999999"}, // not in universe
	}
	got := composeCodeMap(rows, bareToOrder)
	want := map[string]string{"10000001": "000001.XSHE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("composeCodeMap = %v, want %v", got, want)
	}
}

func TestInvert(t *testing.T) {
	m := map[string]string{"a": "1", "b": "2"}
	got := Invert(m)
	want := map[string]string{"1": "a", "2": "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Invert = %v, want %v", got, want)
	}
}

func TestReadInstrumentUniverse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.csv")
	content := "OrderBookID,Name\n000001.XSHE,PingAn\n600000.XSHG,PuFa\n000001.XSHE,PingAnDup\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ids, err := ReadInstrumentUniverse([]string{path})
	if err != nil {
		t.Fatalf("ReadInstrumentUniverse error: %v", err)
	}
	want := []string{"000001.XSHE", "600000.XSHG"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ReadInstrumentUniverse = %v, want %v", ids, want)
	}
}

func TestReadInstrumentUniverseMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(path, []byte("Foo,Bar\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadInstrumentUniverse([]string{path}); err == nil {
		t.Fatal("expected error for missing OrderBookID column")
	}
}
