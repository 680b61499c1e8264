// Package database handles the run history database connection and schema inspection.
//
// It wraps GORM to configure either a MySQL connection or a local SQLite file
// based on the application's configuration. SQLite is the default so that a
// single operator machine can keep its run history without a server.
//
// # Schema Inspection
//
// GetTableColumns returns the live column definitions of a table. The integrity
// check compares them with the columns expected by the history models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "iplist_runs")
package database
