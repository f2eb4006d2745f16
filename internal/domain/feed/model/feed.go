package model

import (
	"errors"

	userModel "social_feed/internal/domain/user/model"
	baseModel "social_feed/pkg/model"
)

// AnonymousName 作者缺失（已注销/匿名化）时的展示名
const AnonymousName = "Anonymous"

// Post 帖子模型
// 作者列可空：用户注销后帖子保留并匿名化展示
type Post struct {
	baseModel.BaseModel
	AuthorID *string         `gorm:"type:uuid" json:"authorId"`
	Author   *userModel.User `gorm:"foreignKey:AuthorID" json:"-"`
	Content  string          `json:"content"`
}

// Comment 评论模型
// ParentID 为空表示一级评论，否则构成任意深度的回复树
// 不变量：所有子孙评论的 PostID 与根评论一致，由业务层在创建时校验
type Comment struct {
	baseModel.BaseModel
	PostID   string          `gorm:"type:uuid" json:"postId"`
	AuthorID *string         `gorm:"type:uuid" json:"authorId"`
	Author   *userModel.User `gorm:"foreignKey:AuthorID" json:"-"`
	ParentID *string         `gorm:"type:uuid" json:"parentId"`
	Content  string          `json:"content"`
}

// TargetKind 点赞目标类型
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// ErrInvalidLikeTarget 目标类型非法或 ID 缺失
var ErrInvalidLikeTarget = errors.New("like target must reference exactly one post or comment")

// LikeTarget 点赞目标，post 或 comment 二选一
// 用标签变体替代两个可空外键，消除两者皆空/皆非空的非法状态
type LikeTarget struct {
	Kind TargetKind
	ID   string
}

// PostTarget 指向帖子的点赞目标
func PostTarget(id string) LikeTarget {
	return LikeTarget{Kind: TargetPost, ID: id}
}

// CommentTarget 指向评论的点赞目标
func CommentTarget(id string) LikeTarget {
	return LikeTarget{Kind: TargetComment, ID: id}
}

// Validate 校验目标合法性
func (t LikeTarget) Validate() error {
	if t.ID == "" {
		return ErrInvalidLikeTarget
	}
	if t.Kind != TargetPost && t.Kind != TargetComment {
		return ErrInvalidLikeTarget
	}
	return nil
}

// Like 点赞行
// 存储层仍是两个可空外键列（配合部分唯一索引和 CHECK 约束），
// 域内统一通过 LikeTarget 读写
type Like struct {
	baseModel.BaseModel
	UserID    string  `gorm:"type:uuid" json:"userId"`
	PostID    *string `gorm:"type:uuid" json:"postId"`
	CommentID *string `gorm:"type:uuid" json:"commentId"`
}

// NewLike 由目标构造点赞行
func NewLike(userID string, target LikeTarget) *Like {
	like := &Like{UserID: userID}
	id := target.ID
	if target.Kind == TargetPost {
		like.PostID = &id
	} else {
		like.CommentID = &id
	}
	return like
}

// Target 还原点赞行的目标
func (l *Like) Target() LikeTarget {
	if l.PostID != nil {
		return PostTarget(*l.PostID)
	}
	if l.CommentID != nil {
		return CommentTarget(*l.CommentID)
	}
	return LikeTarget{}
}

// LikeEvent 榜单聚合用的点赞事件，目标作者已联表取出
// Author 为 nil 表示目标作者已匿名化，不参与计分
type LikeEvent struct {
	IsPost bool    `gorm:"column:is_post"`
	Author *string `gorm:"column:author"`
}

// KarmaEntry 榜单条目
type KarmaEntry struct {
	Username string `json:"username"`
	Karma    int64  `json:"karma"`
}
