package command

import (
	"github.com/nzai/divdash/config"
	"github.com/nzai/divdash/sources"
	"github.com/nzai/divdash/stores"
	"github.com/nzai/divdash/utils"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

type Commander interface {
	Command() *cli.Command
}

var Commands = []Commander{}

func RegisterCommand(cmd Commander) {
	Commands = append(Commands, cmd)
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "config file path, defaults are used when empty",
}

// environment config and the cached source built from it
type environment struct {
	config *config.Config
	store  stores.Store
	source *sources.Cached
}

// open load config, replace the global logger and open the snapshot store
func open(configPath string) (*environment, error) {
	c := config.Default()
	if configPath != "" {
		var err error
		c, err = config.Parse(configPath)
		if err != nil {
			zap.L().Error("parse config failed", zap.Error(err), zap.String("path", configPath))
			return nil, err
		}
	}

	logger, err := utils.NewLogger(c.Log)
	if err != nil {
		zap.L().Error("create logger failed", zap.Error(err), zap.Any("log", c.Log))
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	source, err := sources.Parse(c.Source)
	if err != nil {
		return nil, err
	}

	store, err := stores.Parse(c.Store)
	if err != nil {
		return nil, err
	}

	return &environment{
		config: c,
		store:  store,
		source: sources.NewCached(source, store),
	}, nil
}

func (e environment) Close() {
	err := e.store.Close()
	if err != nil {
		zap.L().Warn("close store failed", zap.Error(err))
	}

	zap.L().Sync() // nolint: errcheck
}
