package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sanscolte/twitter/internal/domain"
)

type likeKey struct{ userID, tweetID int64 }
type followKey struct{ followerID, followingID int64 }

// MockStore is an in-memory Store for tests. It mirrors the schema's
// constraints: unique likes and follow edges, FK checks on inserts, and
// cascade deletion of a tweet's likes and attachments.
type MockStore struct {
	mu sync.Mutex

	users   map[int64]domain.User
	tweets  map[int64]domain.Tweet
	media   map[int64]domain.Media
	likes   map[likeKey]struct{}
	follows map[followKey]struct{}

	nextUserID  int64
	nextTweetID int64
	nextMediaID int64

	ShouldFail bool // flag to simulate database failures
}

var _ Store = (*MockStore)(nil)

func NewMock() *MockStore {
	return &MockStore{
		users:   make(map[int64]domain.User),
		tweets:  make(map[int64]domain.Tweet),
		media:   make(map[int64]domain.Media),
		likes:   make(map[likeKey]struct{}),
		follows: make(map[followKey]struct{}),
	}
}

// AddUser seeds a user row, standing in for out-of-band seeding.
func (m *MockStore) AddUser(apiKey, name string) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextUserID++
	user := domain.User{ID: m.nextUserID, APIKey: apiKey, Name: name}
	m.users[user.ID] = user
	return user
}

func (m *MockStore) fail() error {
	if m.ShouldFail {
		return errors.New("mock: store failure")
	}
	return nil
}

func (m *MockStore) UserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}

	for _, user := range m.users {
		if user.APIKey == apiKey {
			u := user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockStore) ProfileByAPIKey(ctx context.Context, apiKey string) (*domain.Profile, error) {
	user, err := m.UserByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return m.profile(*user), nil
}

func (m *MockStore) ProfileByID(ctx context.Context, userID int64) (*domain.Profile, error) {
	m.mu.Lock()
	if err := m.fail(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	user, ok := m.users[userID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return m.profile(user), nil
}

func (m *MockStore) profile(user domain.User) *domain.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &domain.Profile{User: user}
	for edge := range m.follows {
		if edge.followingID == user.ID {
			p.Followers = append(p.Followers, m.users[edge.followerID])
		}
		if edge.followerID == user.ID {
			p.Following = append(p.Following, m.users[edge.followingID])
		}
	}
	sortUsers(p.Followers)
	sortUsers(p.Following)
	return p
}

func (m *MockStore) CreateTweet(ctx context.Context, authorID int64, content string, mediaIDs []int64) (*domain.Tweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}

	m.nextTweetID++
	tweet := domain.Tweet{ID: m.nextTweetID, Content: content, AuthorID: authorID}
	m.tweets[tweet.ID] = tweet

	for _, id := range mediaIDs {
		media, ok := m.media[id]
		if !ok || media.TweetID != nil {
			continue // unresolvable ids attach nothing
		}
		tweetID := tweet.ID
		media.TweetID = &tweetID
		m.media[id] = media
	}

	return &tweet, nil
}

func (m *MockStore) DeleteTweet(ctx context.Context, tweetID, authorID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return false, err
	}

	tweet, ok := m.tweets[tweetID]
	if !ok || tweet.AuthorID != authorID {
		return false, nil
	}

	delete(m.tweets, tweetID)
	for key := range m.likes {
		if key.tweetID == tweetID {
			delete(m.likes, key)
		}
	}
	for id, media := range m.media {
		if media.TweetID != nil && *media.TweetID == tweetID {
			delete(m.media, id)
		}
	}
	return true, nil
}

func (m *MockStore) Feed(ctx context.Context, userID int64) ([]domain.TweetDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}

	authors := map[int64]bool{userID: true}
	for edge := range m.follows {
		if edge.followerID == userID {
			authors[edge.followingID] = true
		}
	}

	var feed []domain.TweetDetail
	for _, tweet := range m.tweets {
		if !authors[tweet.AuthorID] {
			continue
		}
		detail := domain.TweetDetail{
			ID:      tweet.ID,
			Content: tweet.Content,
			Author:  m.users[tweet.AuthorID],
		}
		for id, media := range m.media {
			if media.TweetID != nil && *media.TweetID == tweet.ID {
				detail.AttachmentIDs = append(detail.AttachmentIDs, id)
			}
		}
		sort.Slice(detail.AttachmentIDs, func(i, j int) bool {
			return detail.AttachmentIDs[i] < detail.AttachmentIDs[j]
		})
		for key := range m.likes {
			if key.tweetID == tweet.ID {
				detail.Likers = append(detail.Likers, m.users[key.userID])
			}
		}
		sortUsers(detail.Likers)
		feed = append(feed, detail)
	}

	// like count descending, id ascending on ties
	sort.Slice(feed, func(i, j int) bool {
		if len(feed[i].Likers) != len(feed[j].Likers) {
			return len(feed[i].Likers) > len(feed[j].Likers)
		}
		return feed[i].ID < feed[j].ID
	})

	return feed, nil
}

func (m *MockStore) CreateLike(ctx context.Context, userID, tweetID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return false, err
	}

	if _, ok := m.tweets[tweetID]; !ok {
		return false, nil
	}
	key := likeKey{userID, tweetID}
	if _, ok := m.likes[key]; ok {
		return false, nil
	}
	m.likes[key] = struct{}{}
	return true, nil
}

func (m *MockStore) DeleteLike(ctx context.Context, userID, tweetID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return false, err
	}

	key := likeKey{userID, tweetID}
	if _, ok := m.likes[key]; !ok {
		return false, nil
	}
	delete(m.likes, key)
	return true, nil
}

func (m *MockStore) CreateFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return false, err
	}

	if _, ok := m.users[followingID]; !ok {
		return false, nil
	}
	key := followKey{followerID, followingID}
	if _, ok := m.follows[key]; ok {
		return false, nil
	}
	m.follows[key] = struct{}{}
	return true, nil
}

func (m *MockStore) DeleteFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return false, err
	}

	key := followKey{followerID, followingID}
	if _, ok := m.follows[key]; !ok {
		return false, nil
	}
	delete(m.follows, key)
	return true, nil
}

func (m *MockStore) CreateMedia(ctx context.Context, filename, contentType string, body []byte) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return 0, err
	}

	m.nextMediaID++
	m.media[m.nextMediaID] = domain.Media{
		ID:          m.nextMediaID,
		Filename:    filename,
		ContentType: contentType,
		Body:        body,
	}
	return m.nextMediaID, nil
}

func (m *MockStore) MediaByID(ctx context.Context, mediaID int64) (*domain.Media, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}

	media, ok := m.media[mediaID]
	if !ok {
		return nil, ErrMediaNotFound
	}
	return &media, nil
}

func sortUsers(users []domain.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
}
