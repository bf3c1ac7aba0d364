package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/nzai/divdash/config"
	"github.com/nzai/divdash/notifiers"
	"github.com/nzai/divdash/schedulers"
	"github.com/nzai/divdash/sources"
	"github.com/nzai/divdash/stores"
	"github.com/nzai/divdash/utils"
	"go.uber.org/zap"
)

var configPath = flag.String("c", "config.toml", "config file path")

func main() {
	flag.Parse()

	c, err := config.Parse(*configPath)
	if err != nil {
		panic(err)
	}

	logger, err := utils.NewLogger(c.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	source, err := sources.Parse(c.Source)
	if err != nil {
		zap.L().Fatal("parse source argument failed", zap.Error(err), zap.String("arg", c.Source))
	}

	store, err := stores.Parse(c.Store)
	if err != nil {
		zap.L().Fatal("parse store argument failed", zap.Error(err), zap.String("arg", c.Store))
	}
	defer store.Close()

	var notifier notifiers.Notifier = notifiers.Log{}
	if c.Nsq.Broker != "" {
		notifier, err = notifiers.NewNsq(c.Nsq.Broker, c.Nsq.Topic, c.Nsq.TLSCert, c.Nsq.TLSKey)
		if err != nil {
			zap.L().Fatal("create nsq notifier failed", zap.Error(err), zap.String("broker", c.Nsq.Broker))
		}
	}
	defer notifier.Close()

	tickers := c.Tickers
	if len(tickers) == 0 {
		tickers = []string{c.Ticker}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := schedulers.NewScheduler(sources.NewCached(source, store), notifier, tickers...)
	scheduler.Run(ctx)
}
