// Package view maps fully loaded entity graphs to wire-level response
// shapes. Pure functions only; nothing here touches the database.
package view

import (
	"fmt"

	"github.com/sanscolte/twitter/internal/domain"
)

// MediaPath is the addressable path of an attachment.
func MediaPath(mediaID int64) string {
	return fmt.Sprintf("/api/medias/%d", mediaID)
}

func Result(ok bool) domain.ResultResponse {
	return domain.ResultResponse{Result: ok}
}

func Error(errorType, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Result:       false,
		ErrorType:    errorType,
		ErrorMessage: message,
	}
}

func MediaCreated(mediaID int64) domain.MediaCreatedResponse {
	return domain.MediaCreatedResponse{Result: true, MediaID: mediaID}
}

func TweetCreated(tweet *domain.Tweet) domain.TweetCreatedResponse {
	return domain.TweetCreatedResponse{Result: true, TweetID: tweet.ID}
}

func Tweet(t domain.TweetDetail) domain.TweetView {
	attachments := make([]string, 0, len(t.AttachmentIDs))
	for _, id := range t.AttachmentIDs {
		attachments = append(attachments, MediaPath(id))
	}

	likes := make([]domain.LikeView, 0, len(t.Likers))
	for _, liker := range t.Likers {
		likes = append(likes, domain.LikeView{UserID: liker.ID, Name: liker.Name})
	}

	return domain.TweetView{
		ID:          t.ID,
		Content:     t.Content,
		Attachments: attachments,
		Author:      domain.AuthorView{ID: t.Author.ID, Name: t.Author.Name},
		Likes:       likes,
	}
}

func Tweets(tweets []domain.TweetDetail) domain.TweetsResponse {
	views := make([]domain.TweetView, 0, len(tweets))
	for _, t := range tweets {
		views = append(views, Tweet(t))
	}
	return domain.TweetsResponse{Result: true, Tweets: views}
}

func User(p *domain.Profile) domain.UserResponse {
	return domain.UserResponse{
		Result: true,
		User: domain.UserView{
			ID:        p.User.ID,
			Name:      p.User.Name,
			Followers: authors(p.Followers),
			Following: authors(p.Following),
		},
	}
}

func authors(users []domain.User) []domain.AuthorView {
	// empty lists must serialize as [], never null
	views := make([]domain.AuthorView, 0, len(users))
	for _, u := range users {
		views = append(views, domain.AuthorView{ID: u.ID, Name: u.Name})
	}
	return views
}
