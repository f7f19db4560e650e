package db

import (
	"strings"
	"testing"

	"bellsync/config"
)

func TestMySQLDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.local",
		DBPort:     "3307",
		DBUser:     "bell",
		DBPassword: "s3cret",
		DBName:     "school",
	}

	dsn := MySQLDSN(cfg)
	if !strings.HasPrefix(dsn, "bell:s3cret@tcp(db.local:3307)/school?") {
		t.Fatalf("MySQLDSN() = %q, want user, address and database prefix", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("MySQLDSN() = %q, want parseTime=true", dsn)
	}
	if !strings.Contains(dsn, "charset=utf8mb4") {
		t.Fatalf("MySQLDSN() = %q, want charset=utf8mb4", dsn)
	}
}
