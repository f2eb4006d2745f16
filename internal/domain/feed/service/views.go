package service

import (
	"time"

	"social_feed/internal/domain/feed/model"
	userModel "social_feed/internal/domain/user/model"
)

// CommentView 评论视图，Replies 递归嵌套
type CommentView struct {
	ID        string        `json:"id"`
	Author    string        `json:"author"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Replies   []CommentView `json:"replies"`
}

// PostView 帖子视图：帖子本体 + 评论树 + 点赞数
type PostView struct {
	ID        string        `json:"id"`
	Author    string        `json:"author"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	LikeCount int64         `json:"like_count"`
	Comments  []CommentView `json:"comments"`
}

// LikeResult 点赞操作结果：实际动作 + 变更后的最新计数
type LikeResult struct {
	Action    string `json:"status"`
	LikeCount int64  `json:"like_count"`
}

const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"
)

func displayName(author *userModel.User) string {
	if author == nil {
		return model.AnonymousName
	}
	return author.Username
}

func composePost(post *model.Post, comments []CommentView, likeCount int64) *PostView {
	return &PostView{
		ID:        post.ID,
		Author:    displayName(post.Author),
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		LikeCount: likeCount,
		Comments:  comments,
	}
}
