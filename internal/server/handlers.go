package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/site"
)

const htmlContentType = "text/html; charset=utf-8"

type errorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	TextCode string `json:"text_code,omitempty"`
}

func (s *Server) handleListing(c *gin.Context) {
	filter := site.ParseFilter(c.Request.URL.RawQuery)
	var buf bytes.Buffer
	status, err := s.site.Listing(c.Request.Context(), &buf, filter)
	if err != nil {
		s.renderFailed(c, err)
		return
	}
	c.Data(status, htmlContentType, buf.Bytes())
}

func (s *Server) handleArticle(c *gin.Context) {
	var buf bytes.Buffer
	status, err := s.site.Article(c.Request.Context(), &buf, c.Query("post"))
	if err != nil {
		s.renderFailed(c, err)
		return
	}
	c.Data(status, htmlContentType, buf.Bytes())
}

func (s *Server) handlePosts(c *gin.Context) {
	listing := s.site.Load(c.Request.Context())
	if listing.Err != nil {
		c.JSON(mapError(listing.Err))
		return
	}
	records := site.Apply(site.ParseFilter(c.Request.URL.RawQuery), listing.Records)
	if records == nil {
		records = []posts.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": records, "count": len(records)})
}

func (s *Server) handlePost(c *gin.Context) {
	record, err := s.site.Post(c.Request.Context(), c.Query("post"))
	if err != nil {
		c.JSON(mapError(err))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleCategories(c *gin.Context) {
	listing := s.site.Load(c.Request.Context())
	if listing.Err != nil {
		c.JSON(mapError(listing.Err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": listing.Categories})
}

func (s *Server) handleHealth(c *gin.Context) {
	loaded := false
	if s.state != nil {
		loaded = s.state.Loaded()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "loaded": loaded})
}

func (s *Server) renderFailed(c *gin.Context, err error) {
	s.logger.WithContext(c.Request.Context()).Error("server.render_failed", "error", err)
	c.String(http.StatusInternalServerError, "internal error")
}

func mapError(err error) (int, errorResponse) {
	var e *goerrors.Error
	textCode := ""
	if goerrors.As(err, &e) {
		textCode = e.TextCode
	}
	switch {
	case posts.IsNoData(err):
		return http.StatusServiceUnavailable, errorResponse{Error: "no_data", Message: err.Error(), TextCode: textCode}
	case goerrors.IsNotFound(err):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error(), TextCode: textCode}
	case goerrors.IsCategory(err, goerrors.CategoryBadInput):
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error(), TextCode: textCode}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error(), TextCode: textCode}
}
