package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/juju/errors"
)

// Flavor names the server family behind a connection.
type Flavor string

const (
	FlavorMySQL   Flavor = "mysql"
	FlavorMariaDB Flavor = "mariadb"
	FlavorTiDB    Flavor = "tidb"
)

// Server describes the connected server.
type Server struct {
	Flavor  Flavor
	Version string
}

func (s Server) String() string {
	if s.Version == "" {
		return string(s.Flavor)
	}
	return string(s.Flavor) + " " + s.Version
}

func detectServer(ctx context.Context, db *sql.DB) (Server, error) {
	var varName, comment string
	err := db.QueryRowContext(ctx, "SHOW VARIABLES LIKE 'version_comment'").Scan(&varName, &comment)
	if err != nil && err != sql.ErrNoRows {
		return Server{}, errors.Annotate(err, "detect server")
	}

	var version string
	_ = db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&version)
	return classify(comment, version), nil
}

func classify(comment, version string) Server {
	lower := strings.ToLower(comment + " " + version)

	s := Server{Flavor: FlavorMySQL, Version: version}
	switch {
	case strings.Contains(lower, "mariadb"):
		s.Flavor = FlavorMariaDB
	case strings.Contains(lower, "tidb"):
		s.Flavor = FlavorTiDB
	}
	if idx := strings.Index(s.Version, "-"); idx > 0 {
		s.Version = s.Version[:idx]
	}
	return s
}
