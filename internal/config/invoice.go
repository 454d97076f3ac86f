package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// InvoiceConfig holds invoice generation defaults. It is hot-reloadable so
// operators can change the numbering scheme or payment terms without a restart.
type InvoiceConfig struct {
	NumberTemplate  string        `mapstructure:"numberTemplate"`
	DueOffsetDays   int           `mapstructure:"dueOffsetDays"`
	DefaultCurrency string        `mapstructure:"defaultCurrency"`
	DraftDebounce   time.Duration `mapstructure:"draftDebounce"`
}

func DefaultInvoiceConfig() InvoiceConfig {
	return InvoiceConfig{
		NumberTemplate:  "{SEQ3}/VI/AGS-I/{YYYY}",
		DueOffsetDays:   14,
		DefaultCurrency: "IDR",
		DraftDebounce:   2 * time.Second,
	}
}

type InvoiceConfigHolder struct {
	current atomic.Value // holds InvoiceConfig
}

func NewInvoiceConfigHolder() (*InvoiceConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("invoicer")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/invoicer/config") // Volume-mounted config
	v.AddConfigPath("/etc/invoicer")            // System config
	v.AddConfigPath(".")                        // Current directory (dev mode)

	v.SetEnvPrefix("INVOICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultInvoiceConfig()
	v.SetDefault("invoice.numberTemplate", defaults.NumberTemplate)
	v.SetDefault("invoice.dueOffsetDays", defaults.DueOffsetDays)
	v.SetDefault("invoice.defaultCurrency", defaults.DefaultCurrency)
	v.SetDefault("invoice.draftDebounce", defaults.DraftDebounce)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg InvoiceConfig
	if err := v.UnmarshalKey("invoice", &cfg); err != nil {
		return nil, err
	}
	if err := validateInvoiceConfig(cfg); err != nil {
		return nil, err
	}

	holder := &InvoiceConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated InvoiceConfig
		if err := v.UnmarshalKey("invoice", &updated); err != nil {
			log.Printf("[invoice-config] reload failed: %v", err)
			return
		}
		if err := validateInvoiceConfig(updated); err != nil {
			log.Printf("[invoice-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[invoice-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticInvoiceConfigHolder wraps a fixed config, bypassing file watching.
func NewStaticInvoiceConfigHolder(cfg InvoiceConfig) *InvoiceConfigHolder {
	holder := &InvoiceConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *InvoiceConfigHolder) Get() InvoiceConfig {
	return h.current.Load().(InvoiceConfig)
}

func validateInvoiceConfig(cfg InvoiceConfig) error {
	if strings.TrimSpace(cfg.NumberTemplate) == "" {
		return errors.New("invoice.numberTemplate cannot be empty")
	}
	if cfg.DueOffsetDays < 0 {
		return errors.New("invoice.dueOffsetDays cannot be negative")
	}
	if cfg.DraftDebounce < 0 {
		return errors.New("invoice.draftDebounce cannot be negative")
	}
	return nil
}
