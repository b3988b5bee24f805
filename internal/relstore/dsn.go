package relstore

import (
	"fmt"
	"strings"
)

// ParsedDSN is the dialect and driver-ready connection target resolved
// from a DSN string (spec.md §6 "Output: database sinks").
type ParsedDSN struct {
	Dialect Dialect
	// Target is the SQLite file path (or ":memory:") or the raw
	// PostgreSQL connection string, ready to hand to the driver.
	Target string
}

// ParseDSN implements the DSN mapping rules of spec.md §6:
//
//	sqlite:///<relative>   -> relative path (strip one leading slash)
//	sqlite:////<absolute>  -> absolute path (strip one leading slash, keep the next)
//	sqlite:///:memory:     -> in-memory
//	postgresql://... / postgres://...  -> passed through verbatim
//	<plain path>           -> SQLite file path, taken as-is
func ParseDSN(dsn string) (ParsedDSN, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite:///:memory:"):
		return ParsedDSN{Dialect: DialectSQLite, Target: ":memory:"}, nil
	case strings.HasPrefix(dsn, "sqlite:///"):
		// Stripping exactly the scheme plus three slashes leaves a bare
		// relative path for "sqlite:///rel" and, for "sqlite:////abs",
		// one slash still attached to the path — an absolute path.
		return ParsedDSN{Dialect: DialectSQLite, Target: strings.TrimPrefix(dsn, "sqlite:///")}, nil
	case strings.HasPrefix(dsn, "postgresql://"), strings.HasPrefix(dsn, "postgres://"):
		return ParsedDSN{Dialect: DialectPostgres, Target: dsn}, nil
	case strings.Contains(dsn, "://"):
		return ParsedDSN{}, fmt.Errorf("unsupported DSN scheme: %q", dsn)
	default:
		// spec.md §6: "a plain path" is also a valid SQLite DSN.
		return ParsedDSN{Dialect: DialectSQLite, Target: dsn}, nil
	}
}
