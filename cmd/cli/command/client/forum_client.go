package client

import (
	"net/http"
	"net/url"
	"strconv"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/reaction"
)

// Topics

func (c *HTTPClient) ListTopics(category string, page, pageSize int) (*dto.PaginatedTopicResponse, error) {
	query := pageQuery(page, pageSize)
	if category != "" {
		query.Set("category", category)
	}
	var result dto.PaginatedTopicResponse
	if err := c.do(http.MethodGet, "/api/topics", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) MyTopics(page, pageSize int) (*dto.PaginatedTopicResponse, error) {
	var result dto.PaginatedTopicResponse
	if err := c.do(http.MethodGet, "/api/topics/mine", pageQuery(page, pageSize), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetTopic(topicID string) (*dto.TopicResponse, error) {
	var result dto.TopicResponse
	if err := c.do(http.MethodGet, "/api/topics/"+url.PathEscape(topicID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateTopic(request dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	var result dto.TopicResponse
	if err := c.do(http.MethodPost, "/api/topics", nil, request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteTopic(topicID string) error {
	return c.do(http.MethodDelete, "/api/topics/"+url.PathEscape(topicID), nil, nil, nil)
}

func (c *HTTPClient) ToggleTopicLike(topicID string) (*dto.LikeResponse, error) {
	var result dto.LikeResponse
	if err := c.do(http.MethodPost, "/api/topics/"+url.PathEscape(topicID)+"/like", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) TopicLikeStatus(topicID string) (*dto.LikeResponse, error) {
	var result dto.LikeResponse
	if err := c.do(http.MethodGet, "/api/topics/"+url.PathEscape(topicID)+"/like", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Comments

type commentList struct {
	Data []dto.CommentResponse `json:"data"`
}

func (c *HTTPClient) TopicComments(topicID string) ([]dto.CommentResponse, error) {
	var result commentList
	if err := c.do(http.MethodGet, "/api/topics/"+url.PathEscape(topicID)+"/comments", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *HTTPClient) MovieComments(movieID int64) ([]dto.CommentResponse, error) {
	var result commentList
	if err := c.do(http.MethodGet, moviePath(movieID)+"/comments", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *HTTPClient) AddTopicComment(topicID, content string) (*dto.CommentResponse, error) {
	var result dto.CommentResponse
	path := "/api/topics/" + url.PathEscape(topicID) + "/comments"
	if err := c.do(http.MethodPost, path, nil, dto.CreateCommentRequest{Content: content}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) AddMovieComment(movieID int64, content string) (*dto.CommentResponse, error) {
	var result dto.CommentResponse
	if err := c.do(http.MethodPost, moviePath(movieID)+"/comments", nil, dto.CreateCommentRequest{Content: content}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteComment(commentID string) error {
	return c.do(http.MethodDelete, "/api/comments/"+url.PathEscape(commentID), nil, nil, nil)
}

func (c *HTTPClient) ReactToComment(commentID string, kind reaction.Kind) (*dto.ReactionResponse, error) {
	var result dto.ReactionResponse
	path := "/api/comments/" + url.PathEscape(commentID) + "/reaction"
	if err := c.do(http.MethodPost, path, nil, dto.ReactionRequest{Kind: string(kind)}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Favorites

func (c *HTTPClient) Favorites() ([]dto.FavoriteResponse, error) {
	var result struct {
		Data []dto.FavoriteResponse `json:"data"`
	}
	if err := c.do(http.MethodGet, "/api/favorites", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *HTTPClient) AddFavorite(request dto.AddFavoriteRequest) (*dto.FavoriteResponse, error) {
	var result dto.FavoriteResponse
	if err := c.do(http.MethodPost, "/api/favorites", nil, request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) RemoveFavorite(movieID int64) error {
	return c.do(http.MethodDelete, "/api/favorites/"+strconv.FormatInt(movieID, 10), nil, nil, nil)
}

func (c *HTTPClient) IsFavorite(movieID int64) (bool, error) {
	var result dto.FavoriteStatusResponse
	if err := c.do(http.MethodGet, "/api/favorites/"+strconv.FormatInt(movieID, 10), nil, nil, &result); err != nil {
		return false, err
	}
	return result.IsFavorite, nil
}

func (c *HTTPClient) CountFavorites() (int64, error) {
	var result dto.CountResponse
	if err := c.do(http.MethodGet, "/api/favorites/count", nil, nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func pageQuery(page, pageSize int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	return query
}

func moviePath(movieID int64) string {
	return "/api/movies/" + strconv.FormatInt(movieID, 10)
}
