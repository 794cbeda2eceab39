package models

import (
	"path/filepath"
	"testing"
)

func TestSqliteDir(t *testing.T) {
	cases := map[string]string{
		"":                               "",
		"storefront.db":                  "",
		"file:test?mode=memory":          "",
		":memory:":                       "",
		filepath.Join("data", "shop.db"): "data",
	}
	for dsn, want := range cases {
		if got := sqliteDir(dsn); got != want {
			t.Fatalf("sqliteDir(%q) want %q got %q", dsn, want, got)
		}
	}
}

func TestOpenCreatesSqliteDirAndMigrates(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "shop.db")
	db, err := Open("sqlite", dsn, DBPoolConfig{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !db.Migrator().HasTable(&Order{}) {
		t.Fatalf("orders table should exist")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "root@/shop", DBPoolConfig{}); err == nil {
		t.Fatalf("unsupported driver should fail")
	}
}
