package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/adapter/client/storehub"
	"github.com/mokhtarjo21/storehub-client/internal/adapter/config"
	"github.com/mokhtarjo21/storehub-client/internal/adapter/logger"
	"github.com/mokhtarjo21/storehub-client/internal/adapter/session"
	"github.com/mokhtarjo21/storehub-client/internal/core/service"
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

	sessionPath := conf.Session.FilePath
	if sessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("resolving home dir", zap.Error(err))
			return
		}
		sessionPath = filepath.Join(home, ".storehub", "session.json")
	}

	sess, err := session.NewFileSession(sessionPath)
	if err != nil {
		log.Error("session error", zap.Error(err))
		return
	}

	client, err := storehub.NewClient(conf.API, sess, log.Named("Client"))
	if err != nil {
		log.Error("client creating error", zap.Error(err))
		return
	}

	cache := service.NewSnapshotCache()
	reconciler, err := service.NewReconciler(client, cache, log.Named("Reconciler"))
	if err != nil {
		log.Error("reconciler creating error", zap.Error(err))
		return
	}

	notifier, err := service.NewNotifier(client, conf.Notifications.PollInterval, log.Named("Notifier"))
	if err != nil {
		log.Error("notifier creating error", zap.Error(err))
		return
	}

	app := &app{
		client:     client,
		session:    sess,
		reconciler: reconciler,
		notifier:   notifier,
		logger:     log,
	}

	ctx := context.Background()
	if err := app.run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
