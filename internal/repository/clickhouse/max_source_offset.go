package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/txlens/txlens-backend/internal/model"
)

// MaxSourceOffset returns the highest archive offset already stored for a
// network. Zero means nothing is stored yet.
func (r *Repository) MaxSourceOffset(ctx context.Context, network model.Network) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_source_offset", network, err, start)
	}()

	const query = `
SELECT coalesce(max(source_offset), toUInt64(0)) AS max_offset
FROM rawtx_transactions
WHERE network = ?`

	rows, err := r.conn.Query(ctx, query, network)
	if err != nil {
		return 0, fmt.Errorf("query max source offset: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var offset uint64
	if !rows.Next() {
		return 0, fmt.Errorf("max source offset not found")
	}

	if err = rows.Scan(&offset); err != nil {
		return 0, fmt.Errorf("scan max source offset: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate max source offset: %w", err)
	}

	return offset, nil
}
