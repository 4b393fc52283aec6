package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanscolte/twitter/internal/domain"
)

type TweetRepository struct {
	conn *pgxpool.Pool
}

func NewTweetRepository(conn *pgxpool.Pool) *TweetRepository {
	return &TweetRepository{conn: conn}
}

// CreateTweet persists the tweet and claims the listed media rows in one
// transaction. Media ids that do not resolve (or are already claimed) attach
// nothing; they never abort tweet creation.
func (r *TweetRepository) CreateTweet(ctx context.Context, authorID int64, content string, mediaIDs []int64) (*domain.Tweet, error) {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var tweet domain.Tweet
	err = tx.QueryRow(ctx,
		"INSERT INTO tweet (content, author_id) VALUES ($1, $2) RETURNING id, content, author_id",
		content, authorID,
	).Scan(&tweet.ID, &tweet.Content, &tweet.AuthorID)
	if err != nil {
		return nil, err
	}

	if len(mediaIDs) > 0 {
		_, err = tx.Exec(ctx,
			"UPDATE media SET tweet_id = $1 WHERE id = ANY($2) AND tweet_id IS NULL",
			tweet.ID, mediaIDs,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &tweet, nil
}

// DeleteTweet removes the tweet only when authorID owns it. Not-owner and
// not-found are indistinguishable in the result. Likes and attachments go
// with it via ON DELETE CASCADE.
func (r *TweetRepository) DeleteTweet(ctx context.Context, tweetID, authorID int64) (bool, error) {
	tag, err := r.conn.Exec(ctx,
		"DELETE FROM tweet WHERE id = $1 AND author_id = $2",
		tweetID, authorID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// Feed returns the tweets authored by userID or anyone userID follows,
// ranked by like count descending (id ascending on ties), with author,
// attachments and likers fully loaded.
func (r *TweetRepository) Feed(ctx context.Context, userID int64) ([]domain.TweetDetail, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT t.id, t.content, u.id, u.api_key, u.name
		 FROM tweet t
		 INNER JOIN "user" u ON u.id = t.author_id
		 LEFT JOIN tweet_like l ON l.tweet_id = t.id
		 WHERE t.author_id = $1
		    OR t.author_id IN (SELECT following_id FROM follower WHERE follower_id = $1)
		 GROUP BY t.id, t.content, u.id, u.api_key, u.name
		 ORDER BY COUNT(l.user_id) DESC, t.id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tweets []domain.TweetDetail
	var tweetIDs []int64
	index := make(map[int64]int)
	for rows.Next() {
		var tweet domain.TweetDetail
		err := rows.Scan(
			&tweet.ID,
			&tweet.Content,
			&tweet.Author.ID,
			&tweet.Author.APIKey,
			&tweet.Author.Name,
		)
		if err != nil {
			return nil, err
		}
		index[tweet.ID] = len(tweets)
		tweets = append(tweets, tweet)
		tweetIDs = append(tweetIDs, tweet.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(tweets) == 0 {
		return nil, nil
	}

	if err := r.loadAttachments(ctx, tweetIDs, index, tweets); err != nil {
		return nil, err
	}
	if err := r.loadLikers(ctx, tweetIDs, index, tweets); err != nil {
		return nil, err
	}

	return tweets, nil
}

func (r *TweetRepository) loadAttachments(ctx context.Context, tweetIDs []int64, index map[int64]int, tweets []domain.TweetDetail) error {
	rows, err := r.conn.Query(ctx,
		"SELECT tweet_id, id FROM media WHERE tweet_id = ANY($1) ORDER BY id",
		tweetIDs,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tweetID, mediaID int64
		if err := rows.Scan(&tweetID, &mediaID); err != nil {
			return err
		}
		i := index[tweetID]
		tweets[i].AttachmentIDs = append(tweets[i].AttachmentIDs, mediaID)
	}

	return rows.Err()
}

func (r *TweetRepository) loadLikers(ctx context.Context, tweetIDs []int64, index map[int64]int, tweets []domain.TweetDetail) error {
	rows, err := r.conn.Query(ctx,
		`SELECT l.tweet_id, u.id, u.api_key, u.name
		 FROM tweet_like l
		 INNER JOIN "user" u ON u.id = l.user_id
		 WHERE l.tweet_id = ANY($1)
		 ORDER BY u.id`,
		tweetIDs,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tweetID int64
		var user domain.User
		if err := rows.Scan(&tweetID, &user.ID, &user.APIKey, &user.Name); err != nil {
			return err
		}
		i := index[tweetID]
		tweets[i].Likers = append(tweets[i].Likers, user)
	}

	return rows.Err()
}
