package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bytedance/sonic"
	"github.com/nzai/divdash/analysis"
	"github.com/nzai/divdash/api"
	"github.com/nzai/divdash/config"
	"github.com/nzai/divdash/quotes"
	"github.com/nzai/divdash/sources"
	"github.com/nzai/divdash/stores"
	"github.com/nzai/divdash/utils"
	"go.uber.org/zap"
)

func main() {
	c := new(Config)
	c.GetFromEnvironmentVariable()

	logger, err := utils.NewLogger(config.LogConfig{Level: c.LogLevel})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	source, err := sources.Parse(c.Source)
	if err != nil {
		zap.L().Fatal("parse source failed", zap.Error(err), zap.String("source", c.Source))
	}

	store, err := stores.Parse(c.Store)
	if err != nil {
		zap.L().Fatal("parse store failed", zap.Error(err), zap.String("store", c.Store))
	}
	defer store.Close()

	lambda.Start(NewHandler(sources.NewCached(source, store)).Handle)
}

// Config define lambda config
type Config struct {
	Source   string
	Store    string
	LogLevel string
}

// GetFromEnvironmentVariable read config from environment variables, eg: Store=s3:bucket@us-east-1
func (c *Config) GetFromEnvironmentVariable() {
	c.Source = strings.TrimSpace(os.Getenv("Source"))
	c.Store = strings.TrimSpace(os.Getenv("Store"))
	c.LogLevel = strings.TrimSpace(os.Getenv("LogLevel"))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Report lambda response body
type Report struct {
	Ticker      string                   `json:"ticker"`
	Currency    string                   `json:"currency"`
	NoDividends bool                     `json:"no_dividends"`
	Dividends   *analysis.DividendReport `json:"dividends"`
	Summary     *analysis.PriceSummary   `json:"summary,omitempty"`
}

// Handler api gateway handler
type Handler struct {
	source sources.Source
}

// NewHandler create api gateway handler
func NewHandler(source sources.Source) *Handler {
	return &Handler{source: source}
}

// Handle answer GET /{ticker} with the json report
func (h Handler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ticker := request.PathParameters["ticker"]
	if ticker == "" {
		ticker = request.QueryStringParameters["ticker"]
	}

	ticker, err := quotes.NormalizeTicker(ticker)
	if err != nil {
		return h.fail(err), nil
	}

	history, err := h.source.History(ctx, ticker)
	if err != nil {
		zap.L().Warn("get history failed", zap.Error(err), zap.String("ticker", ticker))
		return h.fail(err), nil
	}

	dashboard, err := analysis.Analyze(history)
	if err != nil {
		return h.fail(err), nil
	}

	body, err := sonic.Marshal(Report{
		Ticker:      dashboard.Ticker,
		Currency:    dashboard.Currency,
		NoDividends: dashboard.Dividends.NoDividends(),
		Dividends:   dashboard.Dividends,
		Summary:     dashboard.Summary,
	})
	if err != nil {
		zap.L().Error("marshal report failed", zap.Error(err), zap.String("ticker", ticker))
		return h.fail(err), nil
	}

	return h.response(http.StatusOK, body), nil
}

func (h Handler) fail(err error) events.APIGatewayProxyResponse {
	body, _ := sonic.Marshal(api.Response{Error: err.Error()})
	return h.response(api.StatusOf(err), body)
}

func (h Handler) response(status int, body []byte) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
