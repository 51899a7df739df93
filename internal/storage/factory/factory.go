package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/polybench/internal/bench/spec"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/DjordjeVuckovic/polybench/internal/storage/es"
	"github.com/DjordjeVuckovic/polybench/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/polybench/internal/storage/mongo"
	"github.com/DjordjeVuckovic/polybench/internal/storage/pg"
	pkgserver "github.com/DjordjeVuckovic/polybench/pkg/server"
	"github.com/elastic/go-elasticsearch/v8"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Backends are the adapters of one benchmark setup, in declaration order.
type Backends struct {
	List         []storage.Backend
	Types        map[string]storage.Type
	HealthChecks map[string]pkgserver.HealthChecker
}

// connections opens at most one client per storage type; backends of the
// same type share it.
type connections struct {
	cfg *StorageConfig

	pgPool      *pg.ConnectionPool
	mongoClient *driver.Client
	esClient    *elasticsearch.TypedClient

	cleanups []func()
}

// NewBackends builds an adapter for every database in dbs. Clients connect
// lazily, so an unreachable database still gets a backend and is reported
// by the runner's connection check. The returned cleanup closes all clients;
// it is safe to call on error paths.
func NewBackends(ctx context.Context, cfg *StorageConfig, dbs spec.Databases, opts ...storage.Option) (*Backends, func(), error) {
	types := make([]storage.Type, 0, len(dbs))
	for _, db := range dbs {
		types = append(types, storage.Type(db.Type))
	}
	if err := cfg.Validate(types...); err != nil {
		return nil, func() {}, err
	}

	conns := &connections{cfg: cfg}
	b := &Backends{
		Types:        make(map[string]storage.Type, len(dbs)),
		HealthChecks: make(map[string]pkgserver.HealthChecker),
	}

	for _, db := range dbs {
		backend, err := conns.backend(ctx, db, opts)
		if err != nil {
			conns.close()
			return nil, func() {}, fmt.Errorf("create backend %q: %w", db.Name, err)
		}
		b.List = append(b.List, backend)
		b.Types[db.Name] = storage.Type(db.Type)
	}

	for _, hc := range conns.healthCheckers() {
		b.HealthChecks[hc.Name()] = hc
	}

	return b, conns.close, nil
}

func (c *connections) backend(ctx context.Context, db spec.Database, opts []storage.Option) (storage.Backend, error) {
	switch storage.Type(db.Type) {
	case storage.PG:
		pool, err := c.pg(ctx)
		if err != nil {
			return nil, err
		}
		return pg.NewStorer(db.Name, pool.GetConn(), opts...), nil

	case storage.Mongo:
		client, err := c.mongo(ctx)
		if err != nil {
			return nil, err
		}
		return mongo.NewStorer(db.Name, c.mongoCollection(client), opts...), nil

	case storage.ES:
		client, err := c.es(ctx)
		if err != nil {
			return nil, err
		}
		return es.NewStorer(db.Name, client, c.cfg.Es.IndexName, opts...), nil

	case storage.InMem:
		return in_mem.NewInMemStorer(db.Name, opts...), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), db.Type)
	}
}

// ensureSchema runs setup only when the database answers. An unreachable
// database is left to the runner's connection check.
func (c *connections) ensureSchema(ctx context.Context, typ storage.Type, ping func(context.Context) error, setup func(context.Context) error) error {
	if !c.cfg.EnsureSchema {
		return nil
	}
	if err := ping(ctx); err != nil {
		slog.Warn("database unreachable, skipping schema setup", "type", typ, "error", err)
		return nil
	}
	return setup(ctx)
}

func (c *connections) pg(ctx context.Context) (*pg.ConnectionPool, error) {
	if c.pgPool != nil {
		return c.pgPool, nil
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: c.cfg.Pg.ConnStr, MaxConns: c.cfg.Pg.MaxConns})
	if err != nil {
		return nil, err
	}
	c.cleanups = append(c.cleanups, pool.Close)
	c.pgPool = pool

	err = c.ensureSchema(ctx, storage.PG, pool.Ping, func(ctx context.Context) error {
		return pg.EnsureSchema(ctx, pool.GetConn())
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (c *connections) mongo(ctx context.Context) (*driver.Client, error) {
	if c.mongoClient != nil {
		return c.mongoClient, nil
	}

	client, err := mongo.NewClient(ctx, mongo.ClientConfig{
		URI:            c.cfg.Mongo.URI,
		ConnectTimeout: c.cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		return nil, err
	}
	c.cleanups = append(c.cleanups, func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Warn("failed to disconnect mongo client", "error", err)
		}
	})
	c.mongoClient = client

	ping := func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
	err = c.ensureSchema(ctx, storage.Mongo, ping, func(ctx context.Context) error {
		return mongo.EnsureIndexes(ctx, c.mongoCollection(client))
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (c *connections) mongoCollection(client *driver.Client) *driver.Collection {
	return client.Database(c.cfg.Mongo.Database).Collection(c.cfg.Mongo.Collection)
}

func (c *connections) es(ctx context.Context) (*elasticsearch.TypedClient, error) {
	if c.esClient != nil {
		return c.esClient, nil
	}

	client, err := es.NewClient(es.ClientConfig{
		Addresses: c.cfg.Es.Addresses,
		IndexName: c.cfg.Es.IndexName,
		Username:  c.cfg.Es.Username,
		Password:  c.cfg.Es.Password,
	})
	if err != nil {
		return nil, err
	}
	c.esClient = client

	ping := func(ctx context.Context) error {
		ok, err := client.Ping().Do(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("cluster did not answer ping")
		}
		return nil
	}
	err = c.ensureSchema(ctx, storage.ES, ping, func(ctx context.Context) error {
		return es.EnsureIndex(ctx, client, c.cfg.Es.IndexName)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

type namedHealthChecker interface {
	pkgserver.HealthChecker
	Name() string
}

func (c *connections) healthCheckers() []namedHealthChecker {
	var out []namedHealthChecker
	if c.pgPool != nil {
		out = append(out, pg.NewHealthChecker(c.pgPool))
	}
	if c.mongoClient != nil {
		out = append(out, mongo.NewHealthChecker(c.mongoClient))
	}
	if c.esClient != nil {
		out = append(out, es.NewHealthChecker(c.esClient))
	}
	return out
}

func (c *connections) close() {
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil
}
