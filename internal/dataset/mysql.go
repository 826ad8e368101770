package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql"
	"ngr-insights-go/internal/logger"
	"ngr-insights-go/internal/types"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// OpenDB opens a MySQL/MariaDB handle and pings it with exponential backoff
// until it answers or maxWait elapses.
func OpenDB(ctx context.Context, dsn string, maxWait time.Duration, l *logger.Logger) (*sql.DB, error) {
	log := l.Component("dataset.mysql")

	driverDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, &types.DataLoadError{Source: "mysql", Err: err}
	}
	db, err := sql.Open("mysql", driverDSN)
	if err != nil {
		return nil, &types.DataLoadError{Source: "mysql", Err: err}
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxWait
	attempt := 0
	ping := func() error {
		attempt++
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pctx); err != nil {
			log.WithField("attempt", attempt).WithError(err).Warn("ping failed")
			return err
		}
		return nil
	}
	if err := backoff.Retry(ping, backoff.WithContext(b, ctx)); err != nil {
		db.Close()
		return nil, &types.DataLoadError{Source: "mysql", Err: fmt.Errorf("connect: %w", err)}
	}
	log.WithField("attempts", attempt).Info("connected")
	return db, nil
}

// toMySQLDSN converts mysql:// and mariadb:// URLs to the driver's DSN form.
// Other strings are passed through unchanged.
func toMySQLDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", errors.New("empty dsn")
	}
	if !strings.HasPrefix(dsn, "mariadb://") && !strings.HasPrefix(dsn, "mysql://") {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || u.Host == "" || db == "" {
		return "", errors.New("dsn must name user, host and database")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", user, pass, u.Host, db), nil
}

// LoadTable reads a whole table into a Dataset. Values are fetched as text and go
// through the same parsing as file sources.
func LoadTable(ctx context.Context, db *sql.DB, table string, fs types.FeatureSet, l *logger.Logger) (*types.Dataset, error) {
	source := "mysql:" + table
	log := l.Component("dataset.mysql").WithField("table", table).WithField("dataset", fs.Name)

	if !tableNamePattern.MatchString(table) {
		return nil, &types.DataLoadError{Source: source, Err: errors.New("invalid table name")}
	}
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM `%s`", table))
	if err != nil {
		return nil, &types.DataLoadError{Source: source, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &types.DataLoadError{Source: source, Err: err}
	}
	grid := [][]string{cols}
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &types.DataLoadError{Source: source, Err: err}
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		grid = append(grid, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.DataLoadError{Source: source, Err: err}
	}

	ds, err := FromRows(source, grid, fs)
	if err != nil {
		return nil, err
	}
	log.WithField("records", ds.Len()).Info("table loaded")
	return ds, nil
}
