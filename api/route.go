package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/renderers"
	"go.uber.org/zap"
)

//go:embed page/index.html
var pageFS embed.FS

var indexTemplate = template.Must(template.ParseFS(pageFS, "page/index.html"))

func (s Server) registerRoute() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{Error: "not found"})
	})

	s.engine.GET("/", s.index)
	s.engine.GET("/dashboard", s.redirectDashboard)
	s.engine.GET("/dashboard/:ticker", s.render(s.renderer, false))
	s.engine.GET("/chart/:ticker", s.render("plot", false))
	s.engine.GET("/export/:ticker", s.render("xlsx", true))

	group := s.engine.Group("/api")
	group.GET("/ping", s.ping)
	group.GET("/dividends/:ticker", s.getDividends)
	group.GET("/prices/:ticker/summary", s.getPriceSummary)
}

func (s Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (s Server) index(c *gin.Context) {
	view := struct {
		Ticker    string
		Renderer  string
		Renderers []string
	}{
		Ticker:    constants.DefaultTicker,
		Renderer:  s.renderer,
		Renderers: renderers.Names(),
	}

	buffer := new(bytes.Buffer)
	err := indexTemplate.Execute(buffer, view)
	if err != nil {
		zap.L().Error("execute index template failed", zap.Error(err))
		s.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buffer.Bytes())
}

// redirectDashboard the index form submits the ticker as a query argument
func (s Server) redirectDashboard(c *gin.Context) {
	ticker := c.DefaultQuery("ticker", constants.DefaultTicker)
	location := "/dashboard/" + url.PathEscape(ticker)
	if renderer := c.Query("renderer"); renderer != "" {
		location += "?renderer=" + url.QueryEscape(renderer)
	}

	c.Redirect(http.StatusFound, location)
}
