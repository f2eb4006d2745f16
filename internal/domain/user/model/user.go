package model

import (
	baseModel "social_feed/pkg/model"
)

// User 用户模型
type User struct {
	baseModel.BaseModel
	Username string `gorm:"unique" json:"username"`
	Password string `json:"-"` // 密码不返回给前端
}

// Principal 已认证主体
// 匿名请求用 nil *Principal 表示，由业务层统一判断
type Principal struct {
	UserID   string
	Username string
}
