package history

import (
	"github.com/smallbiznis/invoicer/internal/history/service"
	"go.uber.org/fx"
)

var Module = fx.Module("history.service",
	fx.Provide(service.New),
)
