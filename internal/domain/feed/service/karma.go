package service

import (
	"sort"
	"time"

	"social_feed/internal/domain/feed/model"
)

// 榜单参数：滚动 24 小时窗口，帖子赞 5 分、评论赞 1 分，取前 5 名
const (
	LeaderboardWindow = 24 * time.Hour
	LeaderboardSize   = 5

	PostLikeWeight    = 5
	CommentLikeWeight = 1
)

// Leaderboard 计算滚动窗口内的 karma 榜单
// 窗口过滤和作者联表由仓库层一次批量查询完成，加权求和在内存进行；
// 分数记给被赞内容的作者，作者已匿名化的点赞不计入任何人
func (s *feedService) Leaderboard(now time.Time) ([]model.KarmaEntry, error) {
	events, err := s.repo.ListLikeEventsSince(now.Add(-LeaderboardWindow))
	if err != nil {
		return nil, err
	}

	scores := make(map[string]int64)
	for _, e := range events {
		if e.Author == nil {
			continue
		}
		weight := int64(CommentLikeWeight)
		if e.IsPost {
			weight = PostLikeWeight
		}
		scores[*e.Author] += weight
	}

	entries := make([]model.KarmaEntry, 0, len(scores))
	for username, karma := range scores {
		entries = append(entries, model.KarmaEntry{Username: username, Karma: karma})
	}

	// karma 降序，同分按用户名字典序，保证输出可复现
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Karma == entries[j].Karma {
			return entries[i].Username < entries[j].Username
		}
		return entries[i].Karma > entries[j].Karma
	})

	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	return entries, nil
}
