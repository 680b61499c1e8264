package checks

import (
	"regexp"
	"testing"

	"iplist-automanage/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Error(t, FixSchema(nil))
}

func TestCheckSchema_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	t.Run("Missing Tables", func(t *testing.T) {
		report, err := CheckSchema(db)
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, "sqlite", report.Driver)
		assert.True(t, report.Tables["iplist_runs"].Missing)
		assert.True(t, report.Tables["iplist_run_events"].Missing)
	})

	t.Run("After Migration", func(t *testing.T) {
		require.NoError(t, FixSchema(db))

		report, err := CheckSchema(db)
		require.NoError(t, err)
		assert.True(t, report.Matched, "tables: %+v errors: %v", report.Tables, report.Errors)
		assert.Equal(t, "ok", report.Tables["iplist_runs"].Status)
		assert.Equal(t, "ok", report.Tables["iplist_run_events"].Status)
	})
}

func TestCheckSchema_MySQL_MissingAndMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	runs := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("run_id", "int(11)", "NO", "UNI", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `iplist_runs`")).WillReturnRows(runs)

	events := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `iplist_run_events`")).WillReturnRows(events)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["iplist_runs"]
	assert.Equal(t, "error", tbl.Status)
	assert.Contains(t, tbl.MissingColumns, "started_at")
	assert.Contains(t, tbl.TypeMismatches, "run_id: expected varchar(36), got int(11)")

	assert.True(t, report.Tables["iplist_run_events"].Missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_MySQL_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	mock.ExpectQuery(".*").WillReturnError(assert.AnError)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 2)
}

func TestParseGormTags(t *testing.T) {
	col := parseGormColumn("column:id;primaryKey")
	assert.Equal(t, "id", col)

	col2 := parseGormColumn("primaryKey;column:run_id;type:varchar(36)")
	assert.Equal(t, "run_id", col2)

	typ := parseGormType("column:payload;type:text")
	assert.Equal(t, "text", typ)

	typ2 := parseGormType("column:id")
	assert.Equal(t, "", typ2)

	assert.Equal(t, "", parseGormColumn("foreignKey:RunID;references:RunID"))
}
