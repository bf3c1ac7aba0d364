package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nzai/divdash/analysis"
	"github.com/nzai/divdash/quotes"
	"github.com/nzai/divdash/renderers"
	"go.uber.org/zap"
)

// Response api response body
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// DividendsData dividend report of a ticker
type DividendsData struct {
	Ticker      string `json:"ticker"`
	Currency    string `json:"currency"`
	NoDividends bool   `json:"no_dividends"`
	*analysis.DividendReport
}

// PriceSummaryData price summary of a ticker
type PriceSummaryData struct {
	Ticker   string `json:"ticker"`
	Currency string `json:"currency"`
	*analysis.PriceSummary
}

// StatusOf map an error to the http status it is answered with
func StatusOf(err error) int {
	var malformed *quotes.MalformedRecordError

	switch {
	case errors.Is(err, quotes.ErrInvalidTicker):
		return http.StatusBadRequest
	case errors.Is(err, quotes.ErrSymbolNotFound), errors.Is(err, analysis.ErrNoData):
		return http.StatusNotFound
	case errors.As(err, &malformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s Server) fail(c *gin.Context, err error) {
	c.AbortWithStatusJSON(StatusOf(err), Response{Error: err.Error()})
}

// dashboard fetch and analyze the ticker in the path
func (s Server) dashboard(c *gin.Context) (*analysis.Dashboard, error) {
	ticker, err := quotes.NormalizeTicker(c.Param("ticker"))
	if err != nil {
		zap.L().Debug("invalid ticker", zap.String("ticker", c.Param("ticker")))
		return nil, err
	}

	history, err := s.source.History(c.Request.Context(), ticker)
	if err != nil {
		zap.L().Warn("get history failed", zap.Error(err), zap.String("ticker", ticker))
		return nil, err
	}

	return analysis.Analyze(history)
}

func (s Server) getDividends(c *gin.Context) {
	d, err := s.dashboard(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Data: DividendsData{
		Ticker:         d.Ticker,
		Currency:       d.Currency,
		NoDividends:    d.Dividends.NoDividends(),
		DividendReport: d.Dividends,
	}})
}

func (s Server) getPriceSummary(c *gin.Context) {
	d, err := s.dashboard(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	if d.Summary == nil {
		s.fail(c, analysis.ErrNoData)
		return
	}

	c.JSON(http.StatusOK, Response{Data: PriceSummaryData{
		Ticker:       d.Ticker,
		Currency:     d.Currency,
		PriceSummary: d.Summary,
	}})
}

// render draw the dashboard with the named renderer, ?renderer= overrides it
func (s Server) render(name string, attachment bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderer, err := renderers.Get(c.DefaultQuery("renderer", name))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, Response{Error: err.Error()})
			return
		}

		d, err := s.dashboard(c)
		if err != nil {
			s.fail(c, err)
			return
		}

		buffer := new(bytes.Buffer)
		err = renderer.Render(buffer, d)
		if err != nil {
			zap.L().Error("render dashboard failed", zap.Error(err), zap.String("ticker", d.Ticker))
			s.fail(c, err)
			return
		}

		if attachment {
			c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, d.Ticker, renderer.Extension()))
		}

		c.Data(http.StatusOK, renderer.ContentType(), buffer.Bytes())
	}
}
