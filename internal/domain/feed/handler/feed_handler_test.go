package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"social_feed/internal/domain/feed/model"
	"social_feed/internal/domain/feed/service"
	userModel "social_feed/internal/domain/user/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFeedService is a mock of FeedService
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) CreatePost(principal *userModel.Principal, content string) (*service.PostView, error) {
	args := m.Called(principal, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostView), args.Error(1)
}

func (m *MockFeedService) GetPostDetail(id string) (*service.PostView, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostView), args.Error(1)
}

func (m *MockFeedService) CreateComment(principal *userModel.Principal, postID string, parentID *string, content string) (string, error) {
	args := m.Called(principal, postID, parentID, content)
	return args.String(0), args.Error(1)
}

func (m *MockFeedService) ToggleLike(principal *userModel.Principal, target model.LikeTarget) (*service.LikeResult, error) {
	args := m.Called(principal, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeResult), args.Error(1)
}

func (m *MockFeedService) ListFeed() ([]service.PostView, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PostView), args.Error(1)
}

func (m *MockFeedService) Leaderboard(now time.Time) ([]model.KarmaEntry, error) {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.KarmaEntry), args.Error(1)
}

func newTestRouter(svc service.FeedService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewFeedHandler(svc, nil)

	r := gin.New()
	r.GET("/posts/:id", h.GetPost)
	r.GET("/posts-json", h.FeedJSON)
	r.GET("/leaderboard", h.Leaderboard)
	r.POST("/posts", h.CreatePost)
	r.POST("/comments", h.CreateComment)
	r.POST("/likes", h.ToggleLike)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestToggleLikeHandler(t *testing.T) {
	t.Run("Both targets set is a validation error", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		w := doJSON(r, http.MethodPost, "/likes", gin.H{"post": "p1", "comment": "c1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything)
	})

	t.Run("Neither target set is a validation error", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		w := doJSON(r, http.MethodPost, "/likes", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Liked responds 201 with fresh count", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		svc.On("ToggleLike", (*userModel.Principal)(nil), model.PostTarget("p1")).
			Return(&service.LikeResult{Action: service.ActionLiked, LikeCount: 4}, nil)

		w := doJSON(r, http.MethodPost, "/likes", gin.H{"post": "p1"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"liked"`)
		assert.Contains(t, w.Body.String(), `"like_count":4`)
	})

	t.Run("Unliked responds 200", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		svc.On("ToggleLike", (*userModel.Principal)(nil), model.CommentTarget("c1")).
			Return(&service.LikeResult{Action: service.ActionUnliked, LikeCount: 0}, nil)

		w := doJSON(r, http.MethodPost, "/likes", gin.H{"comment": "c1"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unliked"`)
	})

	t.Run("Unauthorized maps to 401", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		svc.On("ToggleLike", (*userModel.Principal)(nil), model.PostTarget("p1")).
			Return(nil, service.ErrUnauthorized)

		w := doJSON(r, http.MethodPost, "/likes", gin.H{"post": "p1"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Duplicate like maps to 400", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		svc.On("ToggleLike", (*userModel.Principal)(nil), model.PostTarget("p1")).
			Return(nil, service.ErrDuplicateLike)

		w := doJSON(r, http.MethodPost, "/likes", gin.H{"post": "p1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreatePostHandler(t *testing.T) {
	t.Run("Empty content maps to 400", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		svc.On("CreatePost", (*userModel.Principal)(nil), "  ").Return(nil, service.ErrEmptyContent)

		w := doJSON(r, http.MethodPost, "/posts", gin.H{"content": "  "})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Anonymous maps to 401", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		svc.On("CreatePost", (*userModel.Principal)(nil), "hello").Return(nil, service.ErrUnauthorized)

		w := doJSON(r, http.MethodPost, "/posts", gin.H{"content": "hello"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetPostHandler(t *testing.T) {
	t.Run("Missing post maps to 404", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		svc.On("GetPostDetail", "ghost").Return(nil, service.ErrPostNotFound)

		w := doJSON(r, http.MethodGet, "/posts/ghost", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFeedJSONHandler(t *testing.T) {
	t.Run("Timestamps rendered in fixed format", func(t *testing.T) {
		svc := new(MockFeedService)
		r := newTestRouter(svc)

		createdAt := time.Date(2024, 5, 1, 12, 34, 56, 0, time.UTC)
		views := []service.PostView{{
			ID:        "p1",
			Author:    "alice",
			Content:   "hello",
			CreatedAt: createdAt,
			LikeCount: 2,
			Comments: []service.CommentView{{
				ID:        "c1",
				Author:    "Anonymous",
				Content:   "hi",
				CreatedAt: createdAt.Add(time.Minute),
				Replies: []service.CommentView{{
					ID:        "c2",
					Author:    "bob",
					Content:   "nested",
					CreatedAt: createdAt.Add(2 * time.Minute),
				}},
			}},
		}}
		svc.On("ListFeed").Return(views, nil)

		w := doJSON(r, http.MethodGet, "/posts-json", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"created_at":"2024-05-01 12:34"`)
		assert.Contains(t, body, `"created_at":"2024-05-01 12:35"`)
		assert.Contains(t, body, `"created_at":"2024-05-01 12:36"`)
		assert.Contains(t, body, `"like_count":2`)
		assert.Contains(t, body, `"author":"Anonymous"`)
	})
}
