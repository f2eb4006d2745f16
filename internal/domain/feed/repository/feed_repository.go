package repository

import (
	"errors"
	"time"

	"social_feed/internal/domain/feed/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateLike 唯一约束冲突：同一 (user, target) 已存在点赞行
	// 并发重复请求靠数据库唯一索引兜底，应用逻辑只是提前探测
	ErrDuplicateLike = errors.New("like already exists for this user and target")
	// ErrTargetMissing 点赞目标不存在（外键约束冲突）
	ErrTargetMissing = errors.New("like target does not exist")
)

// PostgreSQL 错误码
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type FeedRepository interface {
	CreatePost(post *model.Post) error
	GetPostByID(id string) (*model.Post, error)
	ListPosts() ([]model.Post, error)

	CreateComment(comment *model.Comment) error
	GetCommentByID(id string) (*model.Comment, error)
	GetCommentsByPostID(postID string) ([]model.Comment, error)
	GetCommentsByPostIDs(postIDs []string) ([]model.Comment, error)

	CreateLike(like *model.Like) error
	FindLike(userID string, target model.LikeTarget) (*model.Like, error)
	DeleteLike(like *model.Like) error
	CountLikes(target model.LikeTarget) (int64, error)
	CountLikesByPostIDs(postIDs []string) (map[string]int64, error)
	ListLikeEventsSince(since time.Time) ([]model.LikeEvent, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// --- Post ---

func (r *feedRepository) CreatePost(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *feedRepository) GetPostByID(id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Preload("Author").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *feedRepository) ListPosts() ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Preload("Author").Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// --- Comment ---

func (r *feedRepository) CreateComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *feedRepository) GetCommentByID(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID 单次取出帖子的全部评论，树由内存组装
func (r *feedRepository) GetCommentsByPostID(postID string) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsByPostIDs 批量取评论，供 feed 视图一次装配多个帖子
func (r *feedRepository) GetCommentsByPostIDs(postIDs []string) ([]model.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var comments []model.Comment
	if err := r.db.Preload("Author").
		Where("post_id IN ?", postIDs).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// --- Like ---

// CreateLike 插入点赞行
// (user_id, post_id) 和 (user_id, comment_id) 上各有部分唯一索引，
// 并发竞争以插入是否成功为准
func (r *feedRepository) CreateLike(like *model.Like) error {
	err := r.db.Create(like).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateLike
		case pgForeignKeyViolation:
			return ErrTargetMissing
		}
	}
	return err
}

func (r *feedRepository) FindLike(userID string, target model.LikeTarget) (*model.Like, error) {
	var like model.Like
	clause, arg := targetClause(target)
	if err := r.db.Where("user_id = ?", userID).Where(clause, arg).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *feedRepository) DeleteLike(like *model.Like) error {
	return r.db.Delete(like).Error
}

func (r *feedRepository) CountLikes(target model.LikeTarget) (int64, error) {
	var count int64
	clause, arg := targetClause(target)
	err := r.db.Model(&model.Like{}).Where(clause, arg).Count(&count).Error
	return count, err
}

// CountLikesByPostIDs 单条 GROUP BY 查询取多个帖子的点赞数
func (r *feedRepository) CountLikesByPostIDs(postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID string `gorm:"column:post_id"`
		Count  int64  `gorm:"column:count"`
	}
	if err := r.db.Model(&model.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

// ListLikeEventsSince 取出窗口内全部点赞事件并联表出目标作者
// 榜单权重在业务层累加，这里只做一次批量扫描
func (r *feedRepository) ListLikeEventsSince(since time.Time) ([]model.LikeEvent, error) {
	var events []model.LikeEvent
	err := r.db.Raw(`
		SELECT (l.post_id IS NOT NULL) AS is_post, u.username AS author
		FROM likes l
		LEFT JOIN posts p ON p.id = l.post_id
		LEFT JOIN comments c ON c.id = l.comment_id
		LEFT JOIN users u ON u.id = COALESCE(p.author_id, c.author_id)
		WHERE l.created_at >= ?`, since).Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func targetClause(target model.LikeTarget) (string, interface{}) {
	if target.Kind == model.TargetPost {
		return "post_id = ?", target.ID
	}
	return "comment_id = ?", target.ID
}
