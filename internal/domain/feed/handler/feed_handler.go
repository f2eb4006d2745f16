package handler

import (
	"errors"
	"net/http"
	"time"

	"social_feed/internal/domain/feed/model"
	"social_feed/internal/domain/feed/service"
	"social_feed/internal/pkg/middleware"
	"social_feed/pkg/metrics"
	"social_feed/pkg/response"

	"github.com/gin-gonic/gin"
)

// feedTimeLayout 批量 feed 接口的时间戳格式
// 详情/创建接口返回结构化时间 (RFC3339)，仅 /posts-json 用该定长格式
const feedTimeLayout = "2006-01-02 15:04"

type FeedHandler struct {
	service   service.FeedService
	collector *metrics.Collector
}

func NewFeedHandler(s service.FeedService, collector *metrics.Collector) *FeedHandler {
	return &FeedHandler{service: s, collector: collector}
}

// PostInput 发帖输入
type PostInput struct {
	Content string `json:"content"`
}

// CommentInput 评论输入
type CommentInput struct {
	Post    string  `json:"post" binding:"required"`
	Parent  *string `json:"parent"`
	Content string  `json:"content"`
}

// LikeInput 点赞输入，post/comment 必须且只能设置一个
type LikeInput struct {
	Post    *string `json:"post"`
	Comment *string `json:"comment"`
}

// CreatePost 发帖
// @Summary 发帖
// @Tags Feed
// @Accept json
// @Produce json
// @Param input body PostInput true "帖子内容"
// @Success 201 {object} response.Response{data=service.PostView}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /posts [post]
func (h *FeedHandler) CreatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	principal := middleware.GetPrincipal(c)
	view, err := h.service.CreatePost(principal, input.Content)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Created(c, view)
}

// GetPost 帖子详情
// @Summary 帖子详情（含嵌套评论树和点赞数）
// @Tags Feed
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=service.PostView}
// @Failure 404 {object} response.Response
// @Router /posts/{id} [get]
func (h *FeedHandler) GetPost(c *gin.Context) {
	view, err := h.service.GetPostDetail(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, view)
}

// CreateComment 发表评论
// @Summary 发表评论（parent 可选，支持任意深度回复）
// @Tags Feed
// @Accept json
// @Produce json
// @Param input body CommentInput true "评论内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /comments [post]
func (h *FeedHandler) CreateComment(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	principal := middleware.GetPrincipal(c)
	id, err := h.service.CreateComment(principal, input.Post, input.Parent, input.Content)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Created(c, gin.H{"id": id})
}

// ToggleLike 点赞/取消点赞
// @Summary 点赞或取消点赞（幂等切换）
// @Tags Feed
// @Accept json
// @Produce json
// @Param input body LikeInput true "点赞目标"
// @Success 200 {object} response.Response{data=service.LikeResult}
// @Success 201 {object} response.Response{data=service.LikeResult}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /likes [post]
func (h *FeedHandler) ToggleLike(c *gin.Context) {
	var input LikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	// 两个字段的线上形态在这里折叠成标签变体
	target, err := input.target()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidTarget, err.Error())
		return
	}

	principal := middleware.GetPrincipal(c)
	result, err := h.service.ToggleLike(principal, target)
	if err != nil {
		h.renderError(c, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordLikeToggle(result.Action)
	}

	if result.Action == service.ActionLiked {
		response.Created(c, result)
		return
	}
	response.Success(c, result)
}

// Leaderboard 24小时 karma 榜单
// @Summary karma 榜单（滚动24h，前5名）
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Response{data=[]model.KarmaEntry}
// @Router /leaderboard [get]
func (h *FeedHandler) Leaderboard(c *gin.Context) {
	entries, err := h.service.Leaderboard(time.Now())
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, entries)
}

// FeedJSON 批量 feed
// @Summary 全量 feed（帖子倒序，含评论树和点赞数，定长时间戳）
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Response
// @Router /posts-json [get]
func (h *FeedHandler) FeedJSON(c *gin.Context) {
	views, err := h.service.ListFeed()
	if err != nil {
		h.renderError(c, err)
		return
	}

	items := make([]feedPost, 0, len(views))
	for i := range views {
		items = append(items, renderFeedPost(&views[i]))
	}
	response.Success(c, items)
}

func (i *LikeInput) target() (model.LikeTarget, error) {
	if (i.Post == nil) == (i.Comment == nil) {
		return model.LikeTarget{}, model.ErrInvalidLikeTarget
	}
	if i.Post != nil {
		return model.PostTarget(*i.Post), nil
	}
	return model.CommentTarget(*i.Comment), nil
}

// renderError 把业务错误翻译成 HTTP 响应，进程不因任何业务错误退出
func (h *FeedHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, response.ErrEmptyContent, err.Error())
	case errors.Is(err, service.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
	case errors.Is(err, service.ErrParentNotFound), errors.Is(err, service.ErrParentMismatch):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParent, err.Error())
	case errors.Is(err, service.ErrInvalidTarget), errors.Is(err, service.ErrTargetNotFound):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidTarget, err.Error())
	case errors.Is(err, service.ErrDuplicateLike):
		response.Error(c, http.StatusBadRequest, response.ErrDuplicateLike, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// 批量 feed 的外部表示，时间戳渲染为定长字符串
type feedComment struct {
	ID        string        `json:"id"`
	Author    string        `json:"author"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	Replies   []feedComment `json:"replies"`
}

type feedPost struct {
	ID        string        `json:"id"`
	Author    string        `json:"author"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	LikeCount int64         `json:"like_count"`
	Comments  []feedComment `json:"comments"`
}

func renderFeedPost(view *service.PostView) feedPost {
	return feedPost{
		ID:        view.ID,
		Author:    view.Author,
		Content:   view.Content,
		CreatedAt: view.CreatedAt.Format(feedTimeLayout),
		LikeCount: view.LikeCount,
		Comments:  renderFeedComments(view.Comments),
	}
}

func renderFeedComments(views []service.CommentView) []feedComment {
	comments := make([]feedComment, 0, len(views))
	for i := range views {
		v := &views[i]
		comments = append(comments, feedComment{
			ID:        v.ID,
			Author:    v.Author,
			Content:   v.Content,
			CreatedAt: v.CreatedAt.Format(feedTimeLayout),
			Replies:   renderFeedComments(v.Replies),
		})
	}
	return comments
}
