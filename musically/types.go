package musically

import (
	json "github.com/goccy/go-json"
)

// BaseResponse carries the application-level status fields every aweme
// endpoint embeds in its 200-level JSON body.
type BaseResponse struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg,omitempty"`
}

// Err returns an *APIError when the remote service reported a non-zero
// application status, or nil. The client never calls this on the caller's
// behalf: the remote service is the source of truth for domain rules, and
// interpreting its verdict is left to the caller.
func (r BaseResponse) Err() error {
	if r.StatusCode == 0 {
		return nil
	}
	return &APIError{Code: r.StatusCode, Message: r.StatusMsg}
}

// User is a remote user profile. Identifiers are json.Number because they
// exceed float64's safe integer range.
type User struct {
	UID            json.Number `json:"uid"`
	ShortID        json.Number `json:"short_id"`
	Nickname       string      `json:"nickname"`
	UniqueID       string      `json:"unique_id"`
	Signature      string      `json:"signature"`
	FollowerCount  int64       `json:"follower_count"`
	FollowingCount int64       `json:"following_count"`
	AwemeCount     int64       `json:"aweme_count"`
	TotalFavorited int64       `json:"total_favorited"`
	FollowStatus   int         `json:"follow_status"`
	Verified       bool        `json:"is_verified"`
}

// UserResponse is the body of aweme/v1/user/.
type UserResponse struct {
	BaseResponse
	User User `json:"user"`
}

// PostStatistics holds the counters attached to a post.
type PostStatistics struct {
	DiggCount    int64 `json:"digg_count"`
	CommentCount int64 `json:"comment_count"`
	PlayCount    int64 `json:"play_count"`
	ShareCount   int64 `json:"share_count"`
}

// Post is a single published video.
type Post struct {
	AwemeID    json.Number    `json:"aweme_id"`
	Desc       string         `json:"desc"`
	CreateTime int64          `json:"create_time"`
	Author     User           `json:"author"`
	Statistics PostStatistics `json:"statistics"`
	UserDigged int            `json:"user_digged"`
}

// PostListResponse is the body of aweme/v1/aweme/post/.
type PostListResponse struct {
	BaseResponse
	Posts     []Post      `json:"aweme_list"`
	MaxCursor json.Number `json:"max_cursor"`
	MinCursor json.Number `json:"min_cursor"`
	HasMore   int         `json:"has_more"`
}

// FollowerListResponse is the body of aweme/v1/user/follower/list/.
type FollowerListResponse struct {
	BaseResponse
	Followers []User      `json:"followers"`
	Total     int64       `json:"total"`
	Cursor    json.Number `json:"cursor"`
	HasMore   bool        `json:"has_more"`
}

// FollowingListResponse is the body of aweme/v1/user/following/list/.
type FollowingListResponse struct {
	BaseResponse
	Followings []User      `json:"followings"`
	Total      int64       `json:"total"`
	Cursor     json.Number `json:"cursor"`
	HasMore    bool        `json:"has_more"`
}

// FollowResponse is the body of aweme/v1/commit/follow/user/.
type FollowResponse struct {
	BaseResponse
	FollowStatus int `json:"follow_status"`
}

// DiggResponse is the body of aweme/v1/commit/item/digg/.
type DiggResponse struct {
	BaseResponse
	IsDigg int `json:"is_digg"`
}

// LoginData is the payload of a successful passport login.
type LoginData struct {
	UserID      json.Number `json:"user_id"`
	SessionKey  string      `json:"session_key"`
	Email       string      `json:"email"`
	ErrorCode   json.Number `json:"error_code"`
	Description string      `json:"description"`
}

// LoginResponse is the body of passport/user/login/.
type LoginResponse struct {
	Message string    `json:"message"`
	Data    LoginData `json:"data"`
}
