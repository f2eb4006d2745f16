package service

import (
	"sort"

	"social_feed/internal/domain/feed/model"
)

// BuildCommentTree 把一个帖子的平铺评论集组装成嵌套回复树
// 输入是一次批量查询的结果，组装纯内存完成，不再产生任何 I/O
// 每一层都按 created_at 升序排列，时间相同按 id 升序保证确定性
func BuildCommentTree(comments []model.Comment) []CommentView {
	sorted := make([]model.Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	// 按父评论分组，nil 父归入顶层
	children := make(map[string][]model.Comment)
	var roots []model.Comment
	for _, c := range sorted {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	return buildSubtrees(roots, children)
}

func buildSubtrees(comments []model.Comment, children map[string][]model.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			ID:        c.ID,
			Author:    displayName(c.Author),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Replies:   buildSubtrees(children[c.ID], children),
		})
	}
	return views
}
