package main

import (
	"github.com/smallbiznis/invoicer/internal/clock"
	"github.com/smallbiznis/invoicer/internal/config"
	"github.com/smallbiznis/invoicer/internal/draft"
	"github.com/smallbiznis/invoicer/internal/history"
	"github.com/smallbiznis/invoicer/internal/invoice"
	"github.com/smallbiznis/invoicer/internal/invoicetemplate"
	"github.com/smallbiznis/invoicer/internal/kvstore"
	"github.com/smallbiznis/invoicer/internal/numbering"
	"github.com/smallbiznis/invoicer/internal/observability"
	"github.com/smallbiznis/invoicer/internal/providers"
	"github.com/smallbiznis/invoicer/internal/server"
	"github.com/smallbiznis/invoicer/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		clock.Module,
		db.Module,
		kvstore.Module,

		// Functional domains
		numbering.Module,
		history.Module,
		draft.Module,
		invoicetemplate.Module,
		providers.Module,
		invoice.Module,

		server.Module,
	)
	app.Run()
}
