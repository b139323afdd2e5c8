package archive_ingestor

import (
	"context"

	"github.com/txlens/txlens-backend/internal/model"
)

type recordFetcher struct {
	source     ArchiveSource
	repository ClickhouseRepository
	network    model.Network
	limit      int
}

func (f *recordFetcher) FetchBatch(ctx context.Context) ([]model.RawRecord, error) {
	offset, err := f.repository.MaxSourceOffset(ctx, f.network)
	if err != nil {
		return nil, err
	}
	return f.source.ReadBatch(ctx, offset, f.limit)
}
