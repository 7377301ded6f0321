package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn    func(context.Context, uint, int, int) ([]*models.Post, error)
	listFn           func(context.Context, string, int, int) ([]*models.Post, error)
	listByAuthorsFn  func(context.Context, []uint, int, int) ([]*models.Post, error)
	searchFn         func(context.Context, string, int, int) ([]*models.Post, error)
	idsByAuthorFn    func(context.Context, uint) ([]uint, error)
	totalsByAuthorFn func(context.Context, uint) (*repository.AuthorTotals, error)
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	recordViewFn     func(context.Context, uint, time.Time) error
	recordShareFn    func(context.Context, uint) (int, error)
	likeFn           func(context.Context, uint, uint, time.Time) error
	unlikeFn         func(context.Context, uint, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	bookmarkFn       func(context.Context, uint, uint) (bool, error)
	unbookmarkFn     func(context.Context, uint, uint) error
	listBookmarkedFn func(context.Context, uint, int, int) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) List(ctx context.Context, sort string, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, sort, limit, offset)
}
func (s *postRepoStub) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorsFn(ctx, authorIDs, limit, offset)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *postRepoStub) IDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	return s.idsByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) TotalsByAuthor(ctx context.Context, authorID uint) (*repository.AuthorTotals, error) {
	return s.totalsByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) RecordView(ctx context.Context, postID uint, at time.Time) error {
	return s.recordViewFn(ctx, postID, at)
}
func (s *postRepoStub) RecordShare(ctx context.Context, postID uint) (int, error) {
	return s.recordShareFn(ctx, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint, at time.Time) error {
	return s.likeFn(ctx, userID, postID, at)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Bookmark(ctx context.Context, userID, postID uint) (bool, error) {
	return s.bookmarkFn(ctx, userID, postID)
}
func (s *postRepoStub) Unbookmark(ctx context.Context, userID, postID uint) error {
	return s.unbookmarkFn(ctx, userID, postID)
}
func (s *postRepoStub) ListBookmarked(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listBookmarkedFn(ctx, userID, limit, offset)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 10}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		listFn:        func(_ context.Context, _ string, _, _ int) ([]*models.Post, error) { return nil, nil },
		listByAuthorsFn: func(_ context.Context, _ []uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		searchFn:      func(_ context.Context, _ string, _, _ int) ([]*models.Post, error) { return nil, nil },
		idsByAuthorFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		totalsByAuthorFn: func(_ context.Context, _ uint) (*repository.AuthorTotals, error) {
			return &repository.AuthorTotals{}, nil
		},
		updateFn:      func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		recordViewFn:  func(_ context.Context, _ uint, _ time.Time) error { return nil },
		recordShareFn: func(_ context.Context, _ uint) (int, error) { return 1, nil },
		likeFn:        func(_ context.Context, _, _ uint, _ time.Time) error { return nil },
		unlikeFn:      func(_ context.Context, _, _ uint) error { return nil },
		isLikedFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		bookmarkFn:    func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unbookmarkFn:  func(_ context.Context, _, _ uint) error { return nil },
		listBookmarkedFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint) ([]*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
	appendReplyFn func(context.Context, uint, models.Reply) (*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) AppendReply(ctx context.Context, commentID uint, reply models.Reply) (*models.Comment, error) {
	return s.appendReplyFn(ctx, commentID, reply)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 20, PostID: 1}, nil
		},
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		appendReplyFn: func(_ context.Context, id uint, reply models.Reply) (*models.Comment, error) {
			return &models.Comment{ID: id, Replies: models.ReplyList{reply}}, nil
		},
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	listByRecipientFn func(context.Context, uint) ([]*models.Notification, error)
	unreadCountFn     func(context.Context, uint) (int64, error)
	markReadFn        func(context.Context, uint) error
	markAllReadFn     func(context.Context, uint) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, userID uint) ([]*models.Notification, error) {
	return s.listByRecipientFn(ctx, userID)
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.unreadCountFn(ctx, userID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id uint) error {
	return s.markReadFn(ctx, id)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.markAllReadFn(ctx, userID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(_ context.Context, _ *models.Notification) error { return nil },
		listByRecipientFn: func(_ context.Context, _ uint) ([]*models.Notification, error) {
			return nil, nil
		},
		unreadCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		markReadFn:    func(_ context.Context, _ uint) error { return nil },
		markAllReadFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// eventRepoStub is a stub for repository.EventRepository.
type eventRepoStub struct {
	viewsForPostsFn    func(context.Context, []uint) ([]models.PostViewEvent, error)
	likesForPostsFn    func(context.Context, []uint) ([]models.PostLikeEvent, error)
	commentsForPostsFn func(context.Context, []uint) ([]models.PostCommentEvent, error)
	viewCountsFn       func(context.Context) ([]repository.PostCount, error)
	likeRowCountsFn    func(context.Context) ([]repository.PostCount, error)
	liveCommentsFn     func(context.Context) ([]repository.PostCount, error)
}

func (s *eventRepoStub) ViewsForPosts(ctx context.Context, postIDs []uint) ([]models.PostViewEvent, error) {
	return s.viewsForPostsFn(ctx, postIDs)
}
func (s *eventRepoStub) LikesForPosts(ctx context.Context, postIDs []uint) ([]models.PostLikeEvent, error) {
	return s.likesForPostsFn(ctx, postIDs)
}
func (s *eventRepoStub) CommentsForPosts(ctx context.Context, postIDs []uint) ([]models.PostCommentEvent, error) {
	return s.commentsForPostsFn(ctx, postIDs)
}
func (s *eventRepoStub) ViewCountsByPost(ctx context.Context) ([]repository.PostCount, error) {
	return s.viewCountsFn(ctx)
}
func (s *eventRepoStub) LikeRowCountsByPost(ctx context.Context) ([]repository.PostCount, error) {
	return s.likeRowCountsFn(ctx)
}
func (s *eventRepoStub) LiveCommentCountsByPost(ctx context.Context) ([]repository.PostCount, error) {
	return s.liveCommentsFn(ctx)
}

func noopEventRepo() *eventRepoStub {
	return &eventRepoStub{
		viewsForPostsFn: func(_ context.Context, _ []uint) ([]models.PostViewEvent, error) { return nil, nil },
		likesForPostsFn: func(_ context.Context, _ []uint) ([]models.PostLikeEvent, error) { return nil, nil },
		commentsForPostsFn: func(_ context.Context, _ []uint) ([]models.PostCommentEvent, error) {
			return nil, nil
		},
		viewCountsFn:    func(_ context.Context) ([]repository.PostCount, error) { return nil, nil },
		likeRowCountsFn: func(_ context.Context) ([]repository.PostCount, error) { return nil, nil },
		liveCommentsFn:  func(_ context.Context) ([]repository.PostCount, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	followFn        func(context.Context, uint, uint) (bool, error)
	unfollowFn      func(context.Context, uint, uint) error
	followingIDsFn  func(context.Context, uint) ([]uint, error)
	followerCountFn func(context.Context, uint) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *userRepoStub) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	return s.followerCountFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		followFn:        func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unfollowFn:      func(_ context.Context, _, _ uint) error { return nil },
		followingIDsFn:  func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		followerCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
