package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/apperr"
	"github.com/linkup-social/linkup/graph"
	"github.com/linkup-social/linkup/ranking"
	"github.com/linkup-social/linkup/search"
	"github.com/linkup-social/linkup/server/middlewares"
)

const (
	defaultPageLimit     = 20
	defaultTrendingLimit = 10
)

// Handler bundles the search/recommendation entry points behind the HTTP
// routes. It is the only place aware of requests; the library packages work
// on explicit arguments.
type Handler struct {
	Store   graph.Store
	Engine  *search.Engine
	Trender *search.Trender
	Indexer *search.Indexer
}

func NewHandler(store graph.Store, engine *search.Engine, trender *search.Trender, indexer *search.Indexer) *Handler {
	return &Handler{Store: store, Engine: engine, Trender: trender, Indexer: indexer}
}

// GlobalSearch handles GET /search/global.
func (h *Handler) GlobalSearch(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.Engine.GlobalSearch(c.Query("query"), c.Query("type"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result, "ok")
}

// RecommendedUsers handles GET /search/users/recommended.
func (h *Handler) RecommendedUsers(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := ranking.Recommend(h.Store, middlewares.ViewerID(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result, "ok")
}

// SearchUsers handles GET /search/users.
func (h *Handler) SearchUsers(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	filter := graph.UserFilter{
		Query:    c.Query("query"),
		Location: c.Query("location"),
	}
	if interests := strings.TrimSpace(c.Query("interests")); interests != "" {
		for _, interest := range strings.Split(interests, ",") {
			if trimmed := strings.TrimSpace(interest); trimmed != "" {
				filter.Interests = append(filter.Interests, trimmed)
			}
		}
	}
	if verified := c.Query("isVerified"); verified != "" {
		parsed, err := strconv.ParseBool(verified)
		if err != nil {
			respondError(c, apperr.InvalidArgument("isVerified must be a boolean"))
			return
		}
		filter.IsVerified = &parsed
	}

	result, err := h.Engine.SearchUsers(middlewares.ViewerID(c), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result, "ok")
}

// TrendingHashtags handles GET /search/hashtags/trending.
func (h *Handler) TrendingHashtags(c *gin.Context) {
	limit := defaultTrendingLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, apperr.InvalidArgument("limit must be a number"))
			return
		}
		limit = parsed
	}
	result, err := h.Trender.Trending(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result, "ok")
}

// UpsertIndex handles POST /search/index.
func (h *Handler) UpsertIndex(c *gin.Context) {
	var req search.IndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidArgument("malformed index request body"))
		return
	}
	entry, err := h.Indexer.Upsert(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, entry, "indexed")
}

// parsePage reads the page/limit query params with their defaults. Values
// that are present but not numbers fail InvalidArgument; range checks happen
// in PageRequest.Sanitize.
func parsePage(c *gin.Context) (ranking.PageRequest, error) {
	page := ranking.PageRequest{Page: 1, Limit: defaultPageLimit}
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return page, apperr.InvalidArgument("page must be a number")
		}
		page.Page = parsed
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return page, apperr.InvalidArgument("limit must be a number")
		}
		page.Limit = parsed
	}
	return page.Sanitize()
}
