package command

import (
	"context"

	"github.com/nzai/divdash/api"
	"github.com/nzai/divdash/renderers"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func init() {
	RegisterCommand(&Serve{})
}

// Serve start the dashboard web server
type Serve struct{}

func (s Serve) Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the dashboard web server",
		Flags: []cli.Flag{
			configFlag,
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "listen address, overrides config",
			},
			&cli.StringFlag{
				Name:    "renderer",
				Aliases: []string{"r"},
				Usage:   "default dashboard renderer, overrides config",
			},
		},
		Action: s.run,
	}
}

func (s Serve) run(ctx context.Context, c *cli.Command) error {
	env, err := open(c.String("config"))
	if err != nil {
		return err
	}
	defer env.Close()

	listen := env.config.Listen
	if c.String("listen") != "" {
		listen = c.String("listen")
	}

	renderer := env.config.Renderer
	if c.String("renderer") != "" {
		renderer = c.String("renderer")
	}

	_, err = renderers.Get(renderer)
	if err != nil {
		zap.L().Error("renderer invalid", zap.Error(err), zap.String("renderer", renderer))
		return err
	}

	return api.NewServer(env.source, renderer).Run(ctx, listen)
}
