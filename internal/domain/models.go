package domain

// ============================================
// Domain Models
// ============================================

type User struct {
	ID     int64  `json:"id"`
	APIKey string `json:"-"`
	Name   string `json:"name"`
}

type Tweet struct {
	ID       int64  `json:"id"`
	Content  string `json:"content"`
	AuthorID int64  `json:"author_id"`
}

type Media struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"-"`
	TweetID     *int64 `json:"tweet_id"`
}

// TweetDetail is a fully loaded tweet graph: the author row, attachment ids
// and liker rows are resolved before it leaves the repository.
type TweetDetail struct {
	ID            int64
	Content       string
	Author        User
	AttachmentIDs []int64
	Likers        []User
}

type Profile struct {
	User      User
	Followers []User
	Following []User
}

// ============================================
// Request/Response Models
// ============================================

type CreateTweetRequest struct {
	TweetData     string  `json:"tweet_data" validate:"required"`
	TweetMediaIDs []int64 `json:"tweet_media_ids"`
}

type ResultResponse struct {
	Result bool `json:"result"`
}

type ErrorResponse struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

type MediaCreatedResponse struct {
	Result  bool  `json:"result"`
	MediaID int64 `json:"media_id"`
}

type TweetCreatedResponse struct {
	Result  bool  `json:"result"`
	TweetID int64 `json:"tweet_id"`
}

type AuthorView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type LikeView struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type TweetView struct {
	ID          int64      `json:"id"`
	Content     string     `json:"content"`
	Attachments []string   `json:"attachments"`
	Author      AuthorView `json:"author"`
	Likes       []LikeView `json:"likes"`
}

type TweetsResponse struct {
	Result bool        `json:"result"`
	Tweets []TweetView `json:"tweets"`
}

type UserView struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Followers []AuthorView `json:"followers"`
	Following []AuthorView `json:"following"`
}

type UserResponse struct {
	Result bool     `json:"result"`
	User   UserView `json:"user"`
}
