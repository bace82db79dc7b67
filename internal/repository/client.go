// Package repository implements the QueryExecutor backends: a Neo4j client
// speaking bolt and an Amazon Neptune client using the openCypher data API.
// The backend is chosen once, from the scheme of the connection URI.
package repository

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gcue/pkg/types"
)

// Connect validates cfg and returns the executor for its URI scheme:
// bolt:// connects to Neo4j, http:// and https:// to Neptune. Configuration
// problems are reported before any connection attempt.
func Connect(ctx context.Context, cfg types.ConnectionConfig, logger *zap.Logger) (types.QueryExecutor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}
	logger.Debug("selecting backend", zap.String("scheme", scheme), zap.String("db_uri", cfg.DBURI))

	switch scheme {
	case types.SchemeBolt:
		client, err := NewNeo4jClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: couldn't load AWS config: %w", types.ErrConnection, err)
		}
		if awsCfg.Credentials != nil {
			if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
				return nil, fmt.Errorf("%w: couldn't fetch AWS credentials: %w", types.ErrConnection, err)
			}
		}
		return NewNeptuneClient(awsCfg, cfg.DBURI, logger), nil
	}
}
