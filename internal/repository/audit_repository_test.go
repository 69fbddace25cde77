package repository

import (
	"testing"
	"time"

	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditValue(t *testing.T, row []interface{}, column string) interface{} {
	t.Helper()
	require.Len(t, row, len(auditColumns))
	for i, c := range auditColumns {
		if c == column {
			return row[i]
		}
	}
	t.Fatalf("no audit column %q", column)
	return nil
}

func TestAuditRowCount(t *testing.T) {
	day := model.NewDate(2024, time.March, 1)

	seeded := auditRow(model.AttendanceEvent{Type: model.EventSeeded, Date: day, Count: 3})
	if n, ok := auditValue(t, seeded, "count").(*int); assert.True(t, ok) && assert.NotNil(t, n) {
		assert.Equal(t, 3, *n)
	}

	empty := auditRow(model.AttendanceEvent{Type: model.EventSeeded, Date: day})
	if n, ok := auditValue(t, empty, "count").(*int); assert.True(t, ok) && assert.NotNil(t, n) {
		assert.Equal(t, 0, *n)
	}

	marked := auditRow(model.AttendanceEvent{Type: model.EventMarked, Date: day, StudentID: 2, RecordID: 7})
	assert.Nil(t, auditValue(t, marked, "count"))
	if id, ok := auditValue(t, marked, "student_id").(*int); assert.True(t, ok) && assert.NotNil(t, id) {
		assert.Equal(t, 2, *id)
	}
}
