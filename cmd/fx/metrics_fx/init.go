package metrics_fx

import (
	"go.uber.org/fx"

	"gompa/pkg/metrics"
)

var Module = fx.Provide(metrics.NewRegistry)
