package services

import (
	"database/sql/driver"
	"testing"

	"github.com/go-sql-driver/mysql"
)

var showColumnsHeader = []string{"Field", "Type", "Null", "Key", "Default", "Extra"}

func baseColumnRows(extra ...string) [][]driver.Value {
	names := append([]string{
		"id", "cmt_id", "client_application_id", "branch_id", "customer_id",
		"status", "team_management_docs", "created_at", "updated_at",
	}, extra...)
	rows := make([][]driver.Value, 0, len(names))
	for _, n := range names {
		rows = append(rows, []driver.Value{n, "longtext", "YES", "", nil, ""})
	}
	return rows
}

func TestEnsureTableCreatesOnlyWhenAbsent(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT COUNT\\(\\*\\) FROM information_schema.tables"),
			args:    []driver.Value{"annexure_employment"},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: mustPattern("CREATE TABLE .annexure_employment."),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewDynamicTableService(db)
	if err := svc.EnsureTable("annexure_employment"); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestEnsureTableIdempotentWhenPresent(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT COUNT\\(\\*\\) FROM information_schema.tables"),
			args:    []driver.Value{"annexure_employment"},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewDynamicTableService(db)
	if err := svc.EnsureTable("annexure_employment"); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestEnsureTableRejectsBadIdentifier(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewDynamicTableService(db)
	if err := svc.EnsureTable("annexure; DROP TABLE x"); err == nil {
		t.Fatal("expected identifier rejection")
	}
}

func TestEnsureColumnsAddsOnlyMissing(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SHOW COLUMNS FROM .annexure_employment."),
			columns: showColumnsHeader,
			rows:    baseColumnRows("employer_name"),
		},
		{
			kind:    kindExec,
			pattern: mustPattern("ALTER TABLE .annexure_employment. ADD COLUMN .designation. LONGTEXT"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewDynamicTableService(db)
	if err := svc.EnsureColumns("annexure_employment", []string{"employer_name", "designation"}); err != nil {
		t.Fatalf("EnsureColumns: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestEnsureColumnsNoChangeWhenAllPresent(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SHOW COLUMNS FROM .annexure_employment."),
			columns: showColumnsHeader,
			rows:    baseColumnRows("employer_name", "designation"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewDynamicTableService(db)
	if err := svc.EnsureColumns("annexure_employment", []string{"employer_name", "designation"}); err != nil {
		t.Fatalf("EnsureColumns: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestEnsureColumnsToleratesDuplicateColumnRace(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SHOW COLUMNS FROM .annexure_employment."),
			columns: showColumnsHeader,
			rows:    baseColumnRows(),
		},
		{
			kind:    kindExec,
			pattern: mustPattern("ALTER TABLE .annexure_employment. ADD COLUMN .designation. LONGTEXT"),
			err:     &mysql.MySQLError{Number: 1060, Message: "Duplicate column name 'designation'"},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewDynamicTableService(db)
	if err := svc.EnsureColumns("annexure_employment", []string{"designation"}); err != nil {
		t.Fatalf("duplicate column race should be swallowed, got: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestUpsertInsertsWhenRowAbsent(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT COUNT\\(\\*\\) FROM information_schema.tables"),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SHOW COLUMNS FROM .annexure_employment."),
			columns: showColumnsHeader,
			rows:    baseColumnRows("employer_name"),
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT .id. FROM .annexure_employment. WHERE .client_application_id. = \\? LIMIT 1"),
			args:    []driver.Value{int64(12)},
			columns: []string{"id"},
			rows:    nil,
		},
		{
			kind:    kindExec,
			pattern: mustPattern("INSERT INTO .annexure_employment. \\(.branch_id., .client_application_id., .cmt_id., .employer_name.\\) VALUES \\(\\?, \\?, \\?, \\?\\)"),
			args:    []driver.Value{int64(3), int64(12), int64(7), "Initech"},
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT .id. FROM .annexure_employment. WHERE .client_application_id. = \\? ORDER BY .id. DESC LIMIT 1"),
			args:    []driver.Value{int64(12)},
			columns: []string{"id"},
			rows:    [][]driver.Value{{int64(44)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewDynamicTableService(db)
	id, err := svc.Upsert("annexure_employment", "client_application_id", int64(12),
		map[string]interface{}{"employer_name": "Initech"},
		map[string]interface{}{"cmt_id": int64(7), "branch_id": int64(3)},
	)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if id != 44 {
		t.Errorf("row id = %d, want 44", id)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestUpsertUpdatesWhenRowExists(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT COUNT\\(\\*\\) FROM information_schema.tables"),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SHOW COLUMNS FROM .annexure_employment."),
			columns: showColumnsHeader,
			rows:    baseColumnRows("employer_name"),
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT .id. FROM .annexure_employment. WHERE .client_application_id. = \\? LIMIT 1"),
			args:    []driver.Value{int64(12)},
			columns: []string{"id"},
			rows:    [][]driver.Value{{int64(44)}},
		},
		{
			kind:    kindExec,
			pattern: mustPattern("UPDATE .annexure_employment. SET .employer_name. = \\? WHERE .client_application_id. = \\?"),
			args:    []driver.Value{"Globex", int64(12)},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewDynamicTableService(db)
	id, err := svc.Upsert("annexure_employment", "client_application_id", int64(12),
		map[string]interface{}{"employer_name": "Globex"},
		map[string]interface{}{"cmt_id": int64(7)},
	)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if id != 44 {
		t.Errorf("row id = %d, want 44", id)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestUpsertNormalizesEmptyToNull(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SHOW COLUMNS FROM .cmt_applications."),
			columns: showColumnsHeader,
			rows:    baseColumnRows("overall_status", "remarks"),
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT .id. FROM .cmt_applications."),
			args:    []driver.Value{int64(12)},
			columns: []string{"id"},
			rows:    [][]driver.Value{{int64(9)}},
		},
		{
			kind:    kindExec,
			pattern: mustPattern("UPDATE .cmt_applications. SET .overall_status. = \\?, .remarks. = \\? WHERE .client_application_id. = \\?"),
			args:    []driver.Value{"wip", nil, int64(12)},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewDynamicTableService(db)
	_, err := svc.UpsertRecord("cmt_applications", "client_application_id", int64(12),
		map[string]interface{}{"overall_status": "wip", "remarks": ""},
		nil,
	)
	if err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}
