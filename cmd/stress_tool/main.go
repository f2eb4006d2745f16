package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// Config
const (
	BaseURL      = "http://localhost:8080"
	TotalToggles = 200 // 同一 (user, target) 的并发切换次数
)

var httpClient *http.Client

func init() {
	// 优化 HTTP Client 配置
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 500
	t.MaxIdleConnsPerHost = 500
	t.MaxConnsPerHost = 500
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

// 针对点赞切换竞态的压测：
// 同一用户对同一帖子并发发起大量 toggle 请求，结束后帖子的点赞数
// 必须是 0 或 1 —— 唯一索引兜底的不变量，多一行即是 bug
func main() {
	username := fmt.Sprintf("racer_%d", time.Now().UnixNano())
	token := register(username)
	postID := createPost(token)

	fmt.Printf("开始压测：用户 %s 对帖子 %s 并发 toggle %d 次...\n", username, postID, TotalToggles)

	var wg sync.WaitGroup
	liked, unliked, conflicts, failures := 0, 0, 0, 0
	var mu sync.Mutex

	start := time.Now()
	for i := 0; i < TotalToggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := toggleLike(token, postID)
			mu.Lock()
			switch status {
			case "liked":
				liked++
			case "unliked":
				unliked++
			case "conflict":
				conflicts++
			default:
				failures++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	duration := time.Since(start)

	count := likeCount(token, postID)

	fmt.Printf("完成：耗时 %v, liked=%d unliked=%d conflict=%d failed=%d\n",
		duration, liked, unliked, conflicts, failures)
	fmt.Printf("最终点赞数: %d\n", count)
	if count != 0 && count != 1 {
		log.Fatalf("❌ 不变量被破坏：同一 (user, target) 出现 %d 行点赞", count)
	}
	fmt.Println("✅ 唯一性不变量成立")
}

func register(username string) string {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": "password123",
	})
	resp, err := httpClient.Post(BaseURL+"/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("register failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Data.Token == "" {
		log.Fatalf("register: bad response (status %d)", resp.StatusCode)
	}
	return out.Data.Token
}

func createPost(token string) string {
	body, _ := json.Marshal(map[string]string{"content": "like race test post"})
	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Fatalf("create post failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Data.ID == "" {
		log.Fatalf("create post: bad response (status %d)", resp.StatusCode)
	}
	return out.Data.ID
}

func toggleLike(token, postID string) string {
	body, _ := json.Marshal(map[string]string{"post": postID})
	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/likes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "error"
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusBadRequest {
		// 竞争落败的重复点赞按业务冲突返回
		return "conflict"
	}

	var out struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "error"
	}
	return out.Data.Status
}

func likeCount(token, postID string) int64 {
	resp, err := httpClient.Get(BaseURL + "/posts/" + postID)
	if err != nil {
		log.Fatalf("fetch post failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Data struct {
			LikeCount int64 `json:"like_count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("fetch post: bad response (status %d)", resp.StatusCode)
	}
	return out.Data.LikeCount
}
