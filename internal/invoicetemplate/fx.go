package invoicetemplate

import (
	"github.com/smallbiznis/invoicer/internal/invoicetemplate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoicetemplate.service",
	fx.Provide(service.New),
)
