package service

import (
	"context"
	"sort"
	"time"

	"inkwell/internal/repository"
)

// ViewPoint is one day of view activity.
type ViewPoint struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// LikePoint is one day of like activity.
type LikePoint struct {
	Date  string `json:"date"`
	Likes int    `json:"likes"`
}

// CommentPoint is one day of comment activity.
type CommentPoint struct {
	Date     string `json:"date"`
	Comments int    `json:"comments"`
}

// PostAnalytics is the per-author engagement report: totals snapshotted from
// the denormalized counters, and day-bucketed series computed from the
// append-only event logs.
type PostAnalytics struct {
	TotalPosts       int64          `json:"total_posts"`
	TotalViews       int64          `json:"total_views"`
	TotalLikes       int64          `json:"total_likes"`
	TotalComments    int64          `json:"total_comments"`
	TotalShares      int64          `json:"total_shares"`
	ViewsOverTime    []ViewPoint    `json:"views_over_time"`
	LikesOverTime    []LikePoint    `json:"likes_over_time"`
	CommentsOverTime []CommentPoint `json:"comments_over_time"`
}

// AnalyticsService produces per-author engagement reports. Read-only.
type AnalyticsService struct {
	postRepo  repository.PostRepository
	eventRepo repository.EventRepository
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(postRepo repository.PostRepository, eventRepo repository.EventRepository) *AnalyticsService {
	return &AnalyticsService{postRepo: postRepo, eventRepo: eventRepo}
}

const dateLayout = "2006-01-02"

// GetPostAnalytics computes the engagement report for an author. An unknown
// author id yields a zeroed report, not an error: this is a report, not a
// strict lookup.
//
// The date axis follows the view log: dates that saw likes or comments but
// zero views do not appear in any series. The axis is sorted chronologically.
func (s *AnalyticsService) GetPostAnalytics(ctx context.Context, authorID uint) (*PostAnalytics, error) {
	postIDs, err := s.postRepo.IDsByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	totals, err := s.postRepo.TotalsByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	result := &PostAnalytics{
		TotalPosts:       totals.TotalPosts,
		TotalViews:       totals.TotalViews,
		TotalLikes:       totals.TotalLikes,
		TotalComments:    totals.TotalComments,
		TotalShares:      totals.TotalShares,
		ViewsOverTime:    []ViewPoint{},
		LikesOverTime:    []LikePoint{},
		CommentsOverTime: []CommentPoint{},
	}
	if len(postIDs) == 0 {
		return result, nil
	}

	views, err := s.eventRepo.ViewsForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	likes, err := s.eventRepo.LikesForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.eventRepo.CommentsForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	viewsByDate := make(map[string]int)
	likesByDate := make(map[string]int)
	commentsByDate := make(map[string]int)

	for _, v := range views {
		viewsByDate[bucket(v.OccurredAt)]++
	}
	for _, l := range likes {
		likesByDate[bucket(l.OccurredAt)]++
	}
	for _, c := range comments {
		commentsByDate[bucket(c.OccurredAt)]++
	}

	dates := make([]string, 0, len(viewsByDate))
	for date := range viewsByDate {
		dates = append(dates, date)
	}
	// ISO dates sort lexicographically in chronological order.
	sort.Strings(dates)

	for _, date := range dates {
		result.ViewsOverTime = append(result.ViewsOverTime, ViewPoint{Date: date, Views: viewsByDate[date]})
		result.LikesOverTime = append(result.LikesOverTime, LikePoint{Date: date, Likes: likesByDate[date]})
		result.CommentsOverTime = append(result.CommentsOverTime, CommentPoint{Date: date, Comments: commentsByDate[date]})
	}

	return result, nil
}

// bucket reduces a timestamp to its UTC calendar date.
func bucket(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
