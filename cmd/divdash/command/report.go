package command

import (
	"context"
	"io"
	"os"

	"github.com/nzai/divdash/analysis"
	"github.com/nzai/divdash/quotes"
	"github.com/nzai/divdash/renderers"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func init() {
	RegisterCommand(&Report{})
}

// Report render the dashboard of one ticker to a file or stdout
type Report struct{}

func (r Report) Command() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "render the dividend dashboard of a ticker",
		ArgsUsage: "[ticker]",
		Flags: []cli.Flag{
			configFlag,
			&cli.StringFlag{
				Name:    "renderer",
				Aliases: []string{"r"},
				Usage:   "renderer: echarts markdown plot terminal xlsx",
				Value:   "terminal",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file, stdout when empty",
			},
		},
		Action: r.run,
	}
}

func (r Report) run(ctx context.Context, c *cli.Command) error {
	env, err := open(c.String("config"))
	if err != nil {
		return err
	}
	defer env.Close()

	renderer, err := renderers.Get(c.String("renderer"))
	if err != nil {
		return err
	}

	ticker := env.config.Ticker
	if c.Args().Present() {
		ticker, err = quotes.NormalizeTicker(c.Args().First())
		if err != nil {
			zap.L().Error("ticker invalid", zap.Error(err), zap.String("ticker", c.Args().First()))
			return err
		}
	}

	history, err := env.source.History(ctx, ticker)
	if err != nil {
		return err
	}

	dashboard, err := analysis.Analyze(history)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	output := c.String("output")
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			zap.L().Error("create output file failed", zap.Error(err), zap.String("path", output))
			return err
		}
		defer file.Close()
		w = file
	}

	err = renderer.Render(w, dashboard)
	if err != nil {
		return err
	}

	if output != "" {
		zap.L().Info("report saved", zap.String("ticker", ticker), zap.String("path", output))
	}

	return nil
}
