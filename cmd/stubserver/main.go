package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/adapter/config"
	"github.com/mokhtarjo21/storehub-client/internal/adapter/logger"
	"github.com/mokhtarjo21/storehub-client/internal/stubapi"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	store := stubapi.NewStore()
	store.Seed()

	tokens := stubapi.NewTokenService(conf.Stub.Secret)

	catalog := stubapi.NewCatalogHandler()
	catalog.SeedDefaults()

	r, err := stubapi.NewRouter(store, tokens, catalog, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	log.Info("stub backend listening", zap.String("address", conf.Stub.HostString))
	err = r.Serve(conf.Stub.HostString)
	if err != nil {
		log.Error("stub serve error", zap.Error(err))
		return
	}
}
