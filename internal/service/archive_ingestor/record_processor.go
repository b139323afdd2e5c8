package archive_ingestor

import (
	"context"
	"fmt"
	"time"

	"github.com/txlens/txlens-backend/internal/model"
	"github.com/txlens/txlens-backend/pkg/workerpool"
	"go.uber.org/zap"
)

type recordProcessor struct {
	workerCount   int
	converter     Converter
	recordWriter  RecordWriter
	metrics       ArchiveIngesterMetrics
	logger        *zap.Logger
	cancelBatcher func()
}

func (p *recordProcessor) SetCancelBatcher(cancel func()) {
	p.cancelBatcher = cancel
}

func (p *recordProcessor) Process(ctx context.Context, records []model.RawRecord) error {
	return workerpool.Process(ctx, p.workerCount, records, p.processRecord, p.cancelBatcher)
}

func (p *recordProcessor) processRecord(ctx context.Context, record model.RawRecord) error {
	started := time.Now()
	tx, err := p.converter.ConvertHex(record.Hex, record.Offset)
	if err != nil {
		p.observeRecord(err, started)
		if p.logger != nil {
			p.logger.Error("convert record failed", zap.Uint64("offset", record.Offset), zap.Error(err))
		}
		return fmt.Errorf("convert record offset %d: %w", record.Offset, err)
	}

	defer p.observeRecord(err, started)

	err = p.recordWriter.WriteTransaction(ctx, *tx)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("write transaction failed", zap.Uint64("offset", record.Offset), zap.Error(err))
		}
		return fmt.Errorf("write transaction offset %d: %w", record.Offset, err)
	}
	return nil
}

func (p *recordProcessor) observeRecord(err error, started time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.ObserveProcessRecord(err, started)
}
