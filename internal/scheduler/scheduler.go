package scheduler

import (
	"context"
	"time"

	"app/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// 定期処理。毎朝、発注点を下回った商品をログに出す。
type Scheduler struct {
	cron    *cron.Cron
	reports *usecase.ReportUsecase
	spec    string
	logger  *zap.Logger
}

func New(spec string, reports *usecase.ReportUsecase, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(),
		reports: reports,
		spec:    spec,
		logger:  logger,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("reorder_cron", s.spec))

	if _, err := s.cron.AddFunc(s.spec, s.runReorderReport); err != nil {
		s.logger.Error("failed to schedule reorder report", zap.Error(err))
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runReorderReport() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rows, err := s.reports.ReorderLevels(ctx)
	if err != nil {
		s.logger.Error("failed to generate reorder report", zap.Error(err))
		return
	}

	if len(rows) == 0 {
		s.logger.Info("reorder report: all products above reorder level")
		return
	}

	for _, row := range rows {
		s.logger.Warn("reorder needed",
			zap.String("product_code", row.ProductCode),
			zap.Int64("total", row.Total),
		)
	}
}
