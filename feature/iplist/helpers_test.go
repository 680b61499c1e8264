package iplist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"iplist-automanage/core/config"
	"iplist-automanage/core/database"
	"iplist-automanage/core/reconcile"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var runDate = time.Date(2024, 3, 22, 9, 30, 0, 0, time.UTC)

const flowsCSV = "\ufeffDestination IP,Destination FQDN\n" +
	"10.0.0.1,api.foo.example.com\n" +
	"10.0.0.2,API.foo.example.com\n" +
	"10.0.0.5,db.example.com\n" +
	"10.0.0.9,ip-10-0-0-9.eu-west-1.compute.internal\n" +
	"10.0.0.8,10-0-0-8.example.com\n" +
	",missing.example.com\n"

const listsCSV = "name,description,include,fqdns,href\n" +
	"DNA_api.foo.example.com-IPL,Last seen at : 2024-03-20,10.0.0.1;10.0.0.3,api.foo.example.com,/orgs/1/sec_policy/draft/ip_lists/10\n" +
	"DNA_old.example.com-IPL,Last seen at : 2024-02-01,10.0.0.7,old.example.com,/orgs/1/sec_policy/draft/ip_lists/11\n" +
	"OTHER_list,,10.9.9.9,,/orgs/1/sec_policy/draft/ip_lists/12\n"

const evidenceCSV = "Destination IP,Destination FQDN\n10.0.0.3,\n10.0.0.4,x.example.com\n"

func testConfig(t *testing.T) config.ReconcileConfig {
	return config.ReconcileConfig{
		Prefix:           "DNA_",
		Suffix:           "-IPL",
		StaleDays:        21,
		RefreshUnchanged: true,
		ExportRoot:       t.TempDir(),
	}
}

// noDNS resolves nothing.
var noDNS = reconcile.ResolverFunc(func(context.Context, string) []string { return nil })

func fixedClock() time.Time { return runDate }

func fixedRunID() string { return "run-1" }

func testDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func writeFile(t *testing.T, dir, name, content string) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}
