package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gcue/pkg/types"
)

// Neo4jClient executes queries over bolt.
type Neo4jClient struct {
	driver   neo4j.DriverWithContext
	database string
	dbURI    string
	logger   *zap.Logger
}

// NewNeo4jClient creates the driver and verifies connectivity, so an
// unreachable server or rejected credentials fail here rather than on the
// first query.
func NewNeo4jClient(ctx context.Context, cfg types.ConnectionConfig, logger *zap.Logger) (*Neo4jClient, error) {
	auth := neo4j.BasicAuth(cfg.User, cfg.Password, "")

	driver, err := neo4j.NewDriverWithContext(cfg.DBURI, auth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConnection, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("%w at %s: %w", types.ErrConnection, cfg.DBURI, err)
	}

	logger.Info("connected to neo4j", zap.String("db_uri", cfg.DBURI), zap.String("database", cfg.Database))

	return &Neo4jClient{
		driver:   driver,
		database: cfg.Database,
		dbURI:    cfg.DBURI,
		logger:   logger,
	}, nil
}

// DBURI returns the bolt URI.
func (c *Neo4jClient) DBURI() string {
	return c.dbURI
}

// ExecuteQuery runs query in its own session and streams every record into
// the result.
func (c *Neo4jClient) ExecuteQuery(ctx context.Context, query string) (types.QueryResults, error) {
	start := time.Now()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return types.QueryResults{}, fmt.Errorf("%w: %w", types.ErrExecution, err)
	}

	rows, err := collectRows(ctx, result)
	if err != nil {
		return types.QueryResults{}, err
	}

	c.logger.Debug("query executed",
		zap.String("backend", types.SchemeBolt),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return types.ResultsFrom(rows), nil
}

// Close closes the driver.
func (c *Neo4jClient) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}
	err := c.driver.Close(ctx)
	c.driver = nil
	return err
}

// recordStream is the part of neo4j.ResultWithContext used to read rows.
type recordStream interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
}

func collectRows(ctx context.Context, stream recordStream) ([]any, error) {
	var rows []any
	for stream.Next(ctx) {
		rows = append(rows, recordToValue(stream.Record()))
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%w: couldn't get row from results: %w", types.ErrExecution, err)
	}
	return rows, nil
}
