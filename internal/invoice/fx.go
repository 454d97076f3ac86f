package invoice

import (
	"github.com/smallbiznis/invoicer/internal/invoice/render"
	"github.com/smallbiznis/invoicer/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
