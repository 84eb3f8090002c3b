package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/NoaSegev3/travel-assistant-ai/internal/adapters/http"
	"github.com/NoaSegev3/travel-assistant-ai/internal/adapters/llm"
	memstore "github.com/NoaSegev3/travel-assistant-ai/internal/adapters/storage/memory"
	"github.com/NoaSegev3/travel-assistant-ai/internal/adapters/tools"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/assistant"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/decision"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/intent"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/recovery"
	"github.com/NoaSegev3/travel-assistant-ai/internal/app/respond"
	"github.com/NoaSegev3/travel-assistant-ai/internal/config"
	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
	"github.com/NoaSegev3/travel-assistant-ai/internal/metrics"
	"github.com/NoaSegev3/travel-assistant-ai/internal/observability"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	observability.Init(cfg.LogLevel)
	logger := observability.Logger()

	var (
		generator domain.TextGenerator
		err       error
	)
	if cfg.UseMockLLM {
		logger.Info("using mock text generator")
		generator = llm.NewMockGenerator()
	} else {
		logger.Info("using gemini text generator", "model", cfg.ModelName)
		generator, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing gemini client: %v", err)
		}
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	store := memstore.NewSessionStore(cfg.MaxHistoryMessages, cfg.SessionTTL)

	httpClient := &http.Client{Timeout: cfg.ToolTimeout}
	weatherTool := tools.NewWeatherClient(httpClient, cfg.ForecastHorizonDays)
	currencyTool := tools.NewCurrencyClient(httpClient)

	svc := assistant.New(assistant.Deps{
		Store:        store,
		Resolver:     intent.NewResolver(generator, cfg.GenerationTimeout),
		Router:       decision.NewRouter(cfg.ForecastHorizonDays, cfg.CurrencyLookback),
		Responder:    respond.NewGenerator(generator, cfg.GenerationTimeout),
		WeatherTool:  weatherTool,
		CurrencyTool: currencyTool,
		Recovery:     recovery.NewHandler(generator, cfg.GenerationTimeout),
		Metrics:      m,
		ToolTimeout:  cfg.ToolTimeout,
	})

	go sweepLoop(store, m, cfg.SweepInterval)

	handler := httpadapter.NewServer(svc, registry)

	addr := ":" + cfg.Port
	logger.Info("travel assistant api listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}

func sweepLoop(store *memstore.SessionStore, m *metrics.Metrics, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for now := range ticker.C {
		if removed := store.SweepExpired(now); removed > 0 {
			m.SessionsSweptTotal.Add(float64(removed))
			observability.Logger().Info("swept expired sessions", "removed", removed)
		}
	}
}
