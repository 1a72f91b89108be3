package catalog

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"animehub/pkg/models"
)

type Handler struct {
	Repo  *Repo
	cache *cache.Cache
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{
		Repo:  repo,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", h.status)              // GET /api/status
	rg.GET("/search_anime", h.searchAnime)   // GET /api/search_anime?q=
	rg.GET("/search_genres", h.searchGenres) // GET /api/search_genres?q=
}

func (h *Handler) status(c *gin.Context) {
	stats, err := h.Repo.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": "store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "online", "stats": stats})
}

func (h *Handler) searchAnime(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		c.JSON(http.StatusOK, []models.Anime{})
		return
	}

	key := "anime:" + strings.ToLower(q)
	if hit, ok := h.cache.Get(key); ok {
		c.JSON(http.StatusOK, hit)
		return
	}

	items, err := h.Repo.SearchAnime(c.Request.Context(), q, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	h.cache.Set(key, items, cache.DefaultExpiration)
	c.JSON(http.StatusOK, items)
}

func (h *Handler) searchGenres(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []string{})
		return
	}

	key := "genre:" + strings.ToLower(q)
	if hit, ok := h.cache.Get(key); ok {
		c.JSON(http.StatusOK, hit)
		return
	}

	items, err := h.Repo.SearchGenres(c.Request.Context(), q, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	h.cache.Set(key, items, cache.DefaultExpiration)
	c.JSON(http.StatusOK, items)
}
