package service

import (
	"fmt"
	"testing"
	"time"

	"social_feed/internal/domain/feed/model"
	userModel "social_feed/internal/domain/user/model"
	baseModel "social_feed/pkg/model"

	"github.com/stretchr/testify/assert"
)

func testComment(id, postID string, parentID *string, author *userModel.User, createdAt time.Time) model.Comment {
	c := model.Comment{
		PostID:   postID,
		ParentID: parentID,
		Content:  "comment " + id,
		Author:   author,
	}
	c.BaseModel = baseModel.BaseModel{ID: id, CreatedAt: createdAt}
	if author != nil {
		c.AuthorID = &author.ID
	}
	return c
}

func testUser(id, username string) *userModel.User {
	u := &userModel.User{Username: username}
	u.ID = id
	return u
}

func strPtr(s string) *string { return &s }

func TestBuildCommentTree(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	alice := testUser("u1", "alice")
	bob := testUser("u2", "bob")
	carol := testUser("u3", "carol")

	t.Run("Top-level comment with one nested reply", func(t *testing.T) {
		c1 := testComment("c1", "p1", nil, bob, base)
		c2 := testComment("c2", "p1", strPtr("c1"), carol, base.Add(time.Minute))

		tree := BuildCommentTree([]model.Comment{c1, c2})

		assert.Len(t, tree, 1)
		assert.Equal(t, "c1", tree[0].ID)
		assert.Equal(t, "bob", tree[0].Author)
		assert.Len(t, tree[0].Replies, 1)
		assert.Equal(t, "c2", tree[0].Replies[0].ID)
		assert.Equal(t, "carol", tree[0].Replies[0].Author)
		assert.Empty(t, tree[0].Replies[0].Replies)
	})

	t.Run("Every comment appears exactly once under its true parent", func(t *testing.T) {
		comments := []model.Comment{
			testComment("c1", "p1", nil, alice, base),
			testComment("c2", "p1", nil, bob, base.Add(time.Minute)),
			testComment("c3", "p1", strPtr("c1"), carol, base.Add(2*time.Minute)),
			testComment("c4", "p1", strPtr("c1"), alice, base.Add(3*time.Minute)),
			testComment("c5", "p1", strPtr("c3"), bob, base.Add(4*time.Minute)),
		}

		tree := BuildCommentTree(comments)

		assert.Len(t, tree, 2)
		assert.Equal(t, "c1", tree[0].ID)
		assert.Equal(t, "c2", tree[1].ID)

		assert.Len(t, tree[0].Replies, 2)
		assert.Equal(t, "c3", tree[0].Replies[0].ID)
		assert.Equal(t, "c4", tree[0].Replies[1].ID)

		assert.Len(t, tree[0].Replies[0].Replies, 1)
		assert.Equal(t, "c5", tree[0].Replies[0].Replies[0].ID)

		// 总节点数等于输入数
		assert.Equal(t, len(comments), countNodes(tree))
	})

	t.Run("Unbounded reply depth", func(t *testing.T) {
		comments := []model.Comment{testComment("c0", "p1", nil, alice, base)}
		for i := 1; i < 6; i++ {
			parent := comments[i-1].ID
			comments = append(comments, testComment(
				fmt.Sprintf("c%d", i), "p1", &parent, bob, base.Add(time.Duration(i)*time.Minute)))
		}

		tree := BuildCommentTree(comments)

		assert.Len(t, tree, 1)
		depth := 0
		node := tree
		for len(node) > 0 {
			depth++
			node = node[0].Replies
		}
		assert.Equal(t, 6, depth)
	})

	t.Run("Ordering by created_at then id at every level", func(t *testing.T) {
		same := base.Add(time.Hour)
		comments := []model.Comment{
			testComment("b", "p1", nil, alice, same),
			testComment("a", "p1", nil, bob, same),
			testComment("z", "p1", nil, carol, base), // 更早，排最前
		}

		tree := BuildCommentTree(comments)

		assert.Equal(t, []string{"z", "a", "b"}, []string{tree[0].ID, tree[1].ID, tree[2].ID})
	})

	t.Run("Anonymous author renders as Anonymous", func(t *testing.T) {
		c := testComment("c1", "p1", nil, nil, base)

		tree := BuildCommentTree([]model.Comment{c})

		assert.Equal(t, "Anonymous", tree[0].Author)
	})

	t.Run("Empty input yields empty tree", func(t *testing.T) {
		assert.Empty(t, BuildCommentTree(nil))
	})
}

func countNodes(views []CommentView) int {
	n := 0
	for _, v := range views {
		n += 1 + countNodes(v.Replies)
	}
	return n
}
