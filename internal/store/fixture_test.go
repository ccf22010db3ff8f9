package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureJSON = `{
  "employees": [
    {"id": "E1", "name": "Asha Rao", "store_id": "S1", "designation": "Cashier"},
    {"id": "E2", "name": "Lee Park", "store_id": "S1", "designation": "Stock"}
  ],
  "shift_types": [
    {"id": "st1", "title": "Morning", "start_time": "09:00", "end_time": "17:00", "week_off": ["sunday"], "active": true}
  ],
  "attendance": [
    {"employee_id": "E1", "date": "2025-04-02", "status": "present"}
  ],
  "leaves": [
    {"employee_id": "E2", "start_date": "2025-04-03", "end_date": "2025-04-04", "status": "approved"}
  ]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportFixture(t *testing.T) {
	s := testStore(t)

	counts, err := ImportFixture(s, writeFixture(t, fixtureJSON))
	require.NoError(t, err)

	assert.Equal(t, 2, counts.Employees)
	assert.Equal(t, 1, counts.ShiftTypes)
	assert.Equal(t, 1, counts.Attendance)
	assert.Equal(t, 1, counts.Leaves)

	snap, err := s.LoadSnapshot("S1", day(2025, 4, 1), day(2025, 4, 7))
	require.NoError(t, err)
	assert.Len(t, snap.Employees, 2)
	assert.Len(t, snap.ShiftTypes, 1)
	assert.Len(t, snap.Attendance, 1)
	assert.Len(t, snap.Leaves, 1)
}

func TestImportFixtureBadDate(t *testing.T) {
	s := testStore(t)

	bad := `{"attendance": [{"employee_id": "E1", "date": "02.04.2025", "status": "present"}]}`
	_, err := ImportFixture(s, writeFixture(t, bad))
	assert.Error(t, err)
}

func TestImportFixtureInvertedLeave(t *testing.T) {
	s := testStore(t)

	bad := `{"leaves": [{"employee_id": "E1", "start_date": "2025-04-05", "end_date": "2025-04-01", "status": "approved"}]}`
	_, err := ImportFixture(s, writeFixture(t, bad))
	assert.Error(t, err)
}

func TestImportFixtureMissingFile(t *testing.T) {
	s := testStore(t)

	_, err := ImportFixture(s, filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
