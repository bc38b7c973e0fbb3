package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testColumns = Columns{
	PatientID: "patient_id",
	Accession: "accession_num",
	Modality:  "modality",
	Status:    "perfrmd_status",
	Date:      "sched_start_date",
	Time:      "sched_start_time",
	Tiebreak:  "accession_num",
}

// newDryRunDB builds gorm statements against the postgres dialect without
// a database connection.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func buildSQL(t *testing.T, s Spec) (string, []interface{}) {
	t.Helper()
	rows := []map[string]interface{}{}
	stmt := newDryRunDB(t).
		Table("worklist").
		Scopes(s.Scope(testColumns), s.Paginate(testColumns)).
		Find(&rows).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestScopeScheduledStatusMatchesNullAndEmpty(t *testing.T) {
	sql, vars := buildSQL(t, Spec{Status: StatusScheduled, Page: 1, Limit: 10})

	assert.Contains(t, sql, "(perfrmd_status IS NULL OR perfrmd_status = '' OR perfrmd_status = $1)")
	assert.Contains(t, vars, StatusScheduled)
}

func TestScopeOtherStatusIsExactMatch(t *testing.T) {
	sql, vars := buildSQL(t, Spec{Status: "COMPLETED", Page: 1, Limit: 10})

	assert.Contains(t, sql, "perfrmd_status = $1")
	assert.NotContains(t, sql, "IS NULL")
	assert.Contains(t, vars, "COMPLETED")
}

func TestScopeSubstringFiltersUseILike(t *testing.T) {
	sql, vars := buildSQL(t, Spec{PatientID: "P12", AccessionNum: "ACC", Page: 1, Limit: 10})

	assert.Contains(t, sql, "patient_id ILIKE $1")
	assert.Contains(t, sql, "accession_num ILIKE $2")
	assert.Contains(t, vars, "%P12%")
	assert.Contains(t, vars, "%ACC%")
}

func TestScopeDateRangeBounds(t *testing.T) {
	sql, vars := buildSQL(t, Spec{StartDate: 20250101, EndDate: 20250131, Page: 1, Limit: 10})

	assert.Contains(t, sql, "sched_start_date >= $1")
	assert.Contains(t, sql, "sched_start_date <= $2")
	assert.Contains(t, vars, 20250101)
	assert.Contains(t, vars, 20250131)
}

func TestScopeEmptyFiltersAddNoPredicates(t *testing.T) {
	sql, _ := buildSQL(t, Spec{Page: 1, Limit: 10})

	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "LIMIT")
}

func TestPaginateOrdersAndPages(t *testing.T) {
	sql, _ := buildSQL(t, Spec{Page: 3, Limit: 25})

	assert.Contains(t, sql, "ORDER BY sched_start_date DESC, sched_start_time DESC, accession_num")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
}

func TestPaginateFetchAllSkipsLimitAndOffset(t *testing.T) {
	sql, _ := buildSQL(t, Spec{Page: 1, Limit: 10, All: true})

	assert.Contains(t, sql, "ORDER BY sched_start_date DESC")
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
}
