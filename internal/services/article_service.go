package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yukikurage/daily-planner-api/internal/constants"
)

var ErrArticleFeedUnavailable = errors.New("article feed is unavailable")

// Article is one item from the third-party feed, passed through as-is.
type Article struct {
	ID                  int           `json:"id"`
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	CoverImage          string        `json:"cover_image"`
	ReadablePublishDate string        `json:"readable_publish_date"`
	URL                 string        `json:"url"`
	TagList             []string      `json:"tag_list"`
	ReadingTimeMinutes  int           `json:"reading_time_minutes"`
	User                ArticleAuthor `json:"user"`
}

// ArticleAuthor identifies the article's author on the feed.
type ArticleAuthor struct {
	Name           string `json:"name"`
	ProfileImage90 string `json:"profile_image_90"`
}

// ArticleService proxies a paginated third-party article API.
type ArticleService struct {
	baseURL string
	client  *http.Client
}

// NewArticleService creates an ArticleService against the given feed base URL.
func NewArticleService(baseURL string) *ArticleService {
	return &ArticleService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListByTag fetches one page of articles for a tag.
func (s *ArticleService) ListByTag(ctx context.Context, tag string, page, perPage int) ([]Article, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > constants.MaxPageSize {
		perPage = constants.DefaultPageSize
	}

	endpoint, err := url.Parse(s.baseURL + "/articles")
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL: %w", err)
	}
	query := endpoint.Query()
	if tag != "" {
		query.Set("tag", tag)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArticleFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned %d", ErrArticleFeedUnavailable, resp.StatusCode)
	}

	var articles []Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	return articles, nil
}
