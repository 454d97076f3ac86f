package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/invoicer/internal/config"
	draftsvc "github.com/smallbiznis/invoicer/internal/draft"
	historydomain "github.com/smallbiznis/invoicer/internal/history/domain"
	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
	invoicetemplatedomain "github.com/smallbiznis/invoicer/internal/invoicetemplate/domain"
	"github.com/smallbiznis/invoicer/internal/observability"
	obsmiddleware "github.com/smallbiznis/invoicer/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/invoicer/internal/observability/metrics"
	obstracing "github.com/smallbiznis/invoicer/internal/observability/tracing"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine             *gin.Engine
	cfg                config.Config
	invoiceSvc         invoicedomain.Service
	historySvc         historydomain.Service
	draftSvc           draftsvc.Service
	invoiceTemplateSvc invoicetemplatedomain.Service
}

type ServerParams struct {
	fx.In

	Gin                *gin.Engine
	Cfg                config.Config
	InvoiceSvc         invoicedomain.Service
	HistorySvc         historydomain.Service
	DraftSvc           draftsvc.Service
	InvoiceTemplateSvc invoicetemplatedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:             p.Gin,
		cfg:                p.Cfg,
		invoiceSvc:         p.InvoiceSvc,
		historySvc:         p.HistorySvc,
		draftSvc:           p.DraftSvc,
		invoiceTemplateSvc: p.InvoiceTemplateSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	invoices := v1.Group("/invoices")
	invoices.POST("/preview", s.PreviewInvoice)
	invoices.POST("", s.GenerateInvoice)
	invoices.GET("/:id/pdf", s.DownloadInvoicePDF)
	invoices.GET("/:id/html", s.RenderInvoiceHTML)

	history := v1.Group("/history")
	history.GET("", s.ListHistory)
	history.GET("/stats", s.HistoryStats)
	history.GET("/:id", s.GetHistoryItem)
	history.PATCH("/:id/status", s.UpdateHistoryStatus)
	history.DELETE("/:id", s.DeleteHistoryItem)
	history.DELETE("", s.ClearHistory)

	draft := v1.Group("/draft")
	draft.GET("", s.GetDraft)
	draft.PUT("", s.SaveDraft)
	draft.DELETE("", s.ClearDraft)

	templates := v1.Group("/templates")
	templates.POST("", s.CreateInvoiceTemplate)
	templates.GET("", s.ListInvoiceTemplates)
	templates.GET("/:id", s.GetInvoiceTemplateByID)
	templates.DELETE("/:id", s.DeleteInvoiceTemplate)
}
