package store

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeQuerier struct {
	lastSQL  string
	lastArgs []any
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL = sql
	f.lastArgs = args
	return pgconn.CommandTag{}, nil
}

func TestUpsertBuildsConflictClause(t *testing.T) {
	q := &fakeQuerier{}
	err := Upsert(context.Background(), q, "strategy_quarter", []string{"stockcode", "end_date"}, map[string]any{
		"stockcode":  "000001.XSHE",
		"end_date":   20200331,
		"net_profit": 100.0,
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if !strings.Contains(q.lastSQL, "INSERT INTO strategy_quarter") {
		t.Errorf("sql missing insert clause: %s", q.lastSQL)
	}
	if !strings.Contains(q.lastSQL, "ON CONFLICT (stockcode, end_date)") {
		t.Errorf("sql missing conflict clause: %s", q.lastSQL)
	}
	if strings.Contains(q.lastSQL, "stockcode = EXCLUDED.stockcode") {
		t.Errorf("key column must not appear in the update set: %s", q.lastSQL)
	}
	if !strings.Contains(q.lastSQL, "net_profit = EXCLUDED.net_profit") {
		t.Errorf("sql missing update clause for non-key column: %s", q.lastSQL)
	}
}

func TestUpsertNoValues(t *testing.T) {
	q := &fakeQuerier{}
	if err := Upsert(context.Background(), q, "orig_day", []string{"stockcode", "trd_date"}, nil); err == nil {
		t.Fatal("expected error for empty values")
	}
}

func TestDeleteBuildsWhereClause(t *testing.T) {
	q := &fakeQuerier{}
	err := Delete(context.Background(), q, "prepare_quarter", map[string]any{
		"stockcode": "000001.XSHE",
		"end_date":  20200331,
	})
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !strings.Contains(q.lastSQL, "DELETE FROM prepare_quarter") {
		t.Errorf("sql missing delete clause: %s", q.lastSQL)
	}
	if !strings.Contains(q.lastSQL, "end_date = $1 AND stockcode = $2") {
		t.Errorf("sql where clause in unexpected order: %s", q.lastSQL)
	}
	if len(q.lastArgs) != 2 {
		t.Fatalf("lastArgs = %v, want 2 args", q.lastArgs)
	}
}

func TestDeleteNoKeyValues(t *testing.T) {
	q := &fakeQuerier{}
	if err := Delete(context.Background(), q, "prepare_quarter", nil); err == nil {
		t.Fatal("expected error for empty key values")
	}
}
