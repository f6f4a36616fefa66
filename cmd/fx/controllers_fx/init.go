package controllers_fx

import (
	"go.uber.org/fx"

	"tripsync/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewHealthController))
