package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/services"
)

// ArticleHandler proxies the third-party article feed.
type ArticleHandler struct {
	articleService *services.ArticleService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
	}
}

// ListArticles returns one page of articles for a tag.
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tag := c.Query("tag")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	articles, err := h.articleService.ListByTag(c.Request.Context(), tag, page, perPage)
	if err != nil {
		if errors.Is(err, services.ErrArticleFeedUnavailable) {
			apierrors.RespondWithError(c, http.StatusBadGateway,
				apierrors.NewAPIError(apierrors.ErrCodeServiceUnavailable, "Article feed is unavailable"))
			return
		}
		apierrors.InternalError(c, "Failed to fetch articles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
	})
}
