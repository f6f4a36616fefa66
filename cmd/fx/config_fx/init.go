package config_fx

import (
	"go.uber.org/fx"

	"tripsync/internal/config"
)

var Module = fx.Provide(config.Load)
