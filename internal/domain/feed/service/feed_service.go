package service

import (
	"errors"
	"strings"
	"time"

	"social_feed/internal/domain/feed/model"
	"social_feed/internal/domain/feed/repository"
	userModel "social_feed/internal/domain/user/model"

	"gorm.io/gorm"
)

var (
	// ErrUnauthorized 写操作要求已认证主体
	ErrUnauthorized = errors.New("authentication required")
	// ErrEmptyContent 内容为空或全空白
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrPostNotFound 帖子不存在
	ErrPostNotFound = errors.New("post not found")
	// ErrParentNotFound 父评论不存在
	ErrParentNotFound = errors.New("parent comment not found")
	// ErrParentMismatch 父评论属于其他帖子
	ErrParentMismatch = errors.New("parent comment does not belong to this post")
	// ErrInvalidTarget 点赞目标必须且只能指定 post/comment 之一
	ErrInvalidTarget = errors.New("exactly one of post or comment must be set")
	// ErrTargetNotFound 点赞目标不存在
	ErrTargetNotFound = errors.New("like target not found")
	// ErrDuplicateLike 并发竞争落败的重复点赞，非致命
	ErrDuplicateLike = errors.New("already liked")
)

type FeedService interface {
	CreatePost(principal *userModel.Principal, content string) (*PostView, error)
	GetPostDetail(id string) (*PostView, error)
	CreateComment(principal *userModel.Principal, postID string, parentID *string, content string) (string, error)
	ToggleLike(principal *userModel.Principal, target model.LikeTarget) (*LikeResult, error)
	ListFeed() ([]PostView, error)
	Leaderboard(now time.Time) ([]model.KarmaEntry, error)
}

type feedService struct {
	repo repository.FeedRepository
}

func NewFeedService(repo repository.FeedRepository) FeedService {
	return &feedService{repo: repo}
}

// CreatePost 发帖
// 空白内容先于认证校验拒绝，不落任何行
func (s *feedService) CreatePost(principal *userModel.Principal, content string) (*PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if principal == nil {
		return nil, ErrUnauthorized
	}

	authorID := principal.UserID
	post := &model.Post{
		AuthorID: &authorID,
		Content:  content,
	}
	if err := s.repo.CreatePost(post); err != nil {
		return nil, err
	}

	// 新帖无评论无点赞，直接组装
	view := composePost(post, []CommentView{}, 0)
	view.Author = principal.Username
	return view, nil
}

// GetPostDetail 帖子详情：本体 + 完整评论树 + 点赞数
func (s *feedService) GetPostDetail(id string) (*PostView, error) {
	post, err := s.repo.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comments, err := s.repo.GetCommentsByPostID(id)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.repo.CountLikes(model.PostTarget(id))
	if err != nil {
		return nil, err
	}

	return composePost(post, BuildCommentTree(comments), likeCount), nil
}

// CreateComment 发评论，parentID 非空时必须指向同一帖子下的已有评论
func (s *feedService) CreateComment(principal *userModel.Principal, postID string, parentID *string, content string) (string, error) {
	if principal == nil {
		return "", ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}

	if _, err := s.repo.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPostNotFound
		}
		return "", err
	}

	if parentID != nil {
		parent, err := s.repo.GetCommentByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrParentNotFound
			}
			return "", err
		}
		if parent.PostID != postID {
			return "", ErrParentMismatch
		}
	}

	authorID := principal.UserID
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: &authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return "", err
	}
	return comment.ID, nil
}

// ToggleLike 点赞/取消点赞
// 已有则删（unliked），没有则插（liked）；插入撞上唯一索引说明
// 并发竞争落败，按业务冲突上报而不是崩溃。唯一索引是一致性的
// 最终依据，先查后写只是常规路径的优化
func (s *feedService) ToggleLike(principal *userModel.Principal, target model.LikeTarget) (*LikeResult, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}
	if err := target.Validate(); err != nil {
		return nil, ErrInvalidTarget
	}

	action := ActionLiked
	existing, err := s.repo.FindLike(principal.UserID, target)
	switch {
	case err == nil:
		if err := s.repo.DeleteLike(existing); err != nil {
			return nil, err
		}
		action = ActionUnliked

	case errors.Is(err, gorm.ErrRecordNotFound):
		like := model.NewLike(principal.UserID, target)
		if createErr := s.repo.CreateLike(like); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateLike) {
				return nil, ErrDuplicateLike
			}
			if errors.Is(createErr, repository.ErrTargetMissing) {
				return nil, ErrTargetNotFound
			}
			return nil, createErr
		}

	default:
		return nil, err
	}

	// 变更后重新计数，保证读到刚写入的结果
	count, err := s.repo.CountLikes(target)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Action: action, LikeCount: count}, nil
}

// ListFeed 全量 feed：帖子倒序，每帖带评论树和点赞数
// 固定三次查询（帖子、评论 IN、点赞 GROUP BY），与帖子数无关
func (s *feedService) ListFeed() ([]PostView, error) {
	posts, err := s.repo.ListPosts()
	if err != nil {
		return nil, err
	}

	postIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	comments, err := s.repo.GetCommentsByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	commentsByPost := make(map[string][]model.Comment)
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], c)
	}

	likeCounts, err := s.repo.CountLikesByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for i := range posts {
		post := &posts[i]
		tree := BuildCommentTree(commentsByPost[post.ID])
		views = append(views, *composePost(post, tree, likeCounts[post.ID]))
	}
	return views, nil
}
