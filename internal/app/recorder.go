package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/petuhovskiy/qsampler/internal/models"
)

var (
	DrawsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qsampler_draws_total",
		Help: "Questions drawn from the pool",
	})
	PoolResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qsampler_pool_resets_total",
		Help: "Times an exhausted pool was refilled",
	})
	PoolActiveItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qsampler_pool_active_items",
		Help: "Questions left eligible for the next draw",
	})
)

type DrawSaver interface {
	Save(draw *models.Draw) error
}

// DrawRecorder updates metrics and saves draws to the journal, if any.
type DrawRecorder struct {
	saver DrawSaver
}

// NewDrawRecorder creates a recorder. saver may be nil.
func NewDrawRecorder(saver DrawSaver) *DrawRecorder {
	return &DrawRecorder{saver: saver}
}

func (r *DrawRecorder) Record(_ context.Context, draw *models.Draw) error {
	DrawsTotal.Inc()
	if draw.Reset {
		PoolResetsTotal.Inc()
	}
	PoolActiveItems.Set(float64(draw.Active))

	if r.saver == nil {
		return nil
	}
	return r.saver.Save(draw)
}
