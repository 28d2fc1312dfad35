package config_fx

import (
	"go.uber.org/fx"
	"superagent/internal/config"
	"superagent/pkg/utils"
)

var Module = fx.Provide(config.Load, provideClock)

// provideClock pins every service to the configured wall-clock zone.
func provideClock(cfg config.Config) utils.Clock {
	return utils.ClockIn(utils.LoadLocation(cfg.Timezone))
}
