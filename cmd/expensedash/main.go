package main

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"

	"expensedash/internal/clients/exchangerate"
	"expensedash/internal/config"
	"expensedash/internal/entity/currency"
	"expensedash/internal/handlers"
	"expensedash/internal/logger"
	"expensedash/internal/model/conversion"
	"expensedash/internal/model/dashboard"
	"expensedash/internal/model/ledger"
	"expensedash/internal/model/rates"
)

const serviceName = "expensedash"

func main() {
	logger.Info("Dashboard init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	if !currency.IsSupported(conf.App().BaseCurrency()) {
		logger.Fatal("unknown base currency", zap.String("currency", conf.App().BaseCurrency()))
	}

	closer, err := initTracing()
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	store := ledger.NewFileStore(conf.Ledger())
	client := exchangerate.New(conf.Rates())
	resolver := rates.NewResolver(client, conf.Rates())
	converter := conversion.NewService(resolver, conf.App())
	service := dashboard.NewService(store, converter)

	router := gin.Default()
	handlers.Register(router, service)

	logger.Info("Dashboard init - end", zap.String("addr", conf.Server().Addr()))

	if err = router.Run(conf.Server().Addr()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func initTracing() (io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
	}
	return cfg.InitGlobalTracer(serviceName)
}
