package services

import (
	"database/sql/driver"
	"testing"
)

func TestNextApplicationIDSequencing(t *testing.T) {
	cases := []struct {
		prefix string
		latest string
		want   string
	}{
		{"CL-99", "", "CL-99-1"},
		{"CL-99", "CL-99-7", "CL-99-8"},
		{"CL-99", "CL-99-X", "CL-99-1"},
		{"ACME", "ACME-12", "ACME-13"},
		{"CL-99", "CL-99-9", "CL-99-10"},
	}
	for _, tc := range cases {
		if got := NextApplicationID(tc.prefix, tc.latest); got != tc.want {
			t.Errorf("NextApplicationID(%q, %q) = %q, want %q", tc.prefix, tc.latest, got, tc.want)
		}
	}
}

func TestGenerateApplicationIDFirstForCustomer(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT \\* FROM .branches."),
			columns: []string{"branch_id", "customer_id", "name"},
			rows:    [][]driver.Value{{int64(4), int64(9), "Head Office"}},
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT \\* FROM .customers."),
			columns: []string{"customer_id", "client_unique_id"},
			rows:    [][]driver.Value{{int64(9), "CL-99"}},
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT \\* FROM .client_applications. WHERE application_id LIKE"),
			columns: []string{"id", "application_id"},
			rows:    nil,
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	got, err := GenerateApplicationID(db, 4)
	if err != nil {
		t.Fatalf("GenerateApplicationID: %v", err)
	}
	if got != "CL-99-1" {
		t.Errorf("got %q, want CL-99-1", got)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestGenerateApplicationIDIncrementsLatest(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT \\* FROM .branches."),
			columns: []string{"branch_id", "customer_id"},
			rows:    [][]driver.Value{{int64(4), int64(9)}},
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT \\* FROM .customers."),
			columns: []string{"customer_id", "client_unique_id"},
			rows:    [][]driver.Value{{int64(9), "CL-99"}},
		},
		{
			kind:    kindQuery,
			pattern: mustPattern("SELECT \\* FROM .client_applications. WHERE application_id LIKE"),
			columns: []string{"id", "application_id"},
			rows:    [][]driver.Value{{int64(31), "CL-99-7"}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	got, err := GenerateApplicationID(db, 4)
	if err != nil {
		t.Fatalf("GenerateApplicationID: %v", err)
	}
	if got != "CL-99-8" {
		t.Errorf("got %q, want CL-99-8", got)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}
