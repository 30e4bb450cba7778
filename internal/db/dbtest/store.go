// Package dbtest serves an in-memory product code table through database/sql
// so repository code can be exercised without a running postgres.
package dbtest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

var driverSeq atomic.Int64

// Store holds customer_id -> product_code rows.
type Store struct {
	mu      sync.Mutex
	rows    map[string]string
	queries int
	opened  int
	closed  int

	// QueryErr, when set, is returned by every query.
	QueryErr error
	// PingErr, when set, is returned by every ping.
	PingErr error
}

// NewStore returns a store seeded with rows.
func NewStore(rows map[string]string) *Store {
	cp := make(map[string]string, len(rows))
	for k, v := range rows {
		cp[k] = v
	}
	return &Store{rows: cp}
}

// DB returns a *sql.DB backed by the store.
func (s *Store) DB() *sql.DB {
	return sql.OpenDB(&connector{store: s})
}

// Register registers the store under a fresh driver name and returns the name.
func (s *Store) Register() string {
	name := fmt.Sprintf("dbtest-%d", driverSeq.Add(1))
	sql.Register(name, &storeDriver{store: s})
	return name
}

// Queries is the number of queries executed.
func (s *Store) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}

// OpenConns is the number of driver connections opened and not yet closed.
func (s *Store) OpenConns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened - s.closed
}

func (s *Store) lookup(args []driver.NamedValue) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	if s.QueryErr != nil {
		return "", false, s.QueryErr
	}
	if len(args) != 1 {
		return "", false, fmt.Errorf("dbtest: expected 1 argument, got %d", len(args))
	}
	id, ok := args[0].Value.(string)
	if !ok {
		return "", false, fmt.Errorf("dbtest: customer_id must be a string, got %T", args[0].Value)
	}
	code, found := s.rows[id]
	return code, found, nil
}

type storeDriver struct{ store *Store }

func (d *storeDriver) Open(string) (driver.Conn, error) {
	return d.store.newConn(), nil
}

type connector struct{ store *Store }

func (c *connector) Connect(context.Context) (driver.Conn, error) { return c.store.newConn(), nil }
func (c *connector) Driver() driver.Driver                      { return &storeDriver{store: c.store} }

func (s *Store) newConn() *conn {
	s.mu.Lock()
	s.opened++
	s.mu.Unlock()
	return &conn{store: s}
}

type conn struct{ store *Store }

var errUnsupported = errors.New("dbtest: unsupported")

func (c *conn) Prepare(string) (driver.Stmt, error) { return nil, errUnsupported }
func (c *conn) Begin() (driver.Tx, error)          { return nil, errUnsupported }

func (c *conn) Close() error {
	c.store.mu.Lock()
	c.store.closed++
	c.store.mu.Unlock()
	return nil
}

func (c *conn) Ping(context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.store.PingErr
}

func (c *conn) QueryContext(_ context.Context, _ string, args []driver.NamedValue) (driver.Rows, error) {
	code, found, err := c.store.lookup(args)
	if err != nil {
		return nil, err
	}
	r := &rows{}
	if found {
		r.values = []string{code}
	}
	return r, nil
}

type rows struct {
	values []string
	pos    int
}

func (r *rows) Columns() []string { return []string{"product_code"} }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	dest[0] = r.values[r.pos]
	r.pos++
	return nil
}
