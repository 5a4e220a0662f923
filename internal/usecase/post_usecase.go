package usecase

import (
	"context"

	"iecnexus/internal/domain/entity"
	"iecnexus/internal/domain/repository"
	"iecnexus/pkg/errors"
)

const feedPageSize = 20

type PostUseCase struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	dispatcher NotificationDispatcher
}

func NewPostUseCase(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	dispatcher NotificationDispatcher,
) *PostUseCase {
	return &PostUseCase{
		postRepo:   postRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

type PostResponse struct {
	*entity.Post
	Author  *entity.PublicProfile `json:"author,omitempty"`
	IsLiked bool                  `json:"is_liked"`
}

type PostsPage struct {
	Items      []*PostResponse
	NextCursor string
}

type LikeResult struct {
	IsLiked   bool `json:"isLiked"`
	LikeCount int  `json:"like_count"`
}

type CommentResponse struct {
	*entity.Comment
	Author *entity.PublicProfile `json:"author,omitempty"`
}

func (uc *PostUseCase) CreatePost(ctx context.Context, userID, content, resourceLink string) (*PostResponse, error) {
	if content == "" {
		return nil, errors.BadRequest("Content is required", nil)
	}

	author, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		AuthorID:     userID,
		Content:      content,
		ResourceLink: resourceLink,
		Likes:        []string{},
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return &PostResponse{Post: post, Author: author.Public()}, nil
}

func (uc *PostUseCase) ListPosts(ctx context.Context, userID, cursor string) (*PostsPage, error) {
	posts, nextCursor, err := uc.postRepo.ListPage(ctx, cursor, feedPageSize)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]*entity.PublicProfile)
	items := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		profile, ok := profiles[post.AuthorID]
		if !ok {
			if author, err := uc.userRepo.GetByID(ctx, post.AuthorID); err == nil {
				profile = author.Public()
			}
			profiles[post.AuthorID] = profile
		}
		items = append(items, &PostResponse{
			Post:    post,
			Author:  profile,
			IsLiked: post.LikedBy(userID),
		})
	}

	return &PostsPage{Items: items, NextCursor: nextCursor}, nil
}

func (uc *PostUseCase) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return errors.Forbidden("Only the author can delete a post", nil)
	}

	if err := uc.postRepo.DeleteAllComments(ctx, postID); err != nil {
		return err
	}
	return uc.postRepo.Delete(ctx, postID)
}

func (uc *PostUseCase) ToggleLike(ctx context.Context, userID, postID string) (*LikeResult, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, count, err := uc.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if liked && post.AuthorID != userID {
		if actor, err := uc.userRepo.GetByID(ctx, userID); err == nil {
			uc.dispatcher.DispatchAsync(post.AuthorID, actor.Name, "liked your post", "/posts/"+postID, CategoryFeed)
		}
	}

	return &LikeResult{IsLiked: liked, LikeCount: count}, nil
}

func (uc *PostUseCase) AddComment(ctx context.Context, userID, postID, content string) (*CommentResponse, error) {
	if content == "" {
		return nil, errors.BadRequest("Content is required", nil)
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	author, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  content,
	}
	if err := uc.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		uc.dispatcher.DispatchAsync(post.AuthorID, author.Name, "commented: "+content, "/posts/"+postID, CategoryFeed)
	}

	return &CommentResponse{Comment: comment, Author: author.Public()}, nil
}

func (uc *PostUseCase) ListComments(ctx context.Context, postID string) ([]*CommentResponse, error) {
	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := uc.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]*entity.PublicProfile)
	responses := make([]*CommentResponse, 0, len(comments))
	for _, comment := range comments {
		profile, ok := profiles[comment.AuthorID]
		if !ok {
			if author, err := uc.userRepo.GetByID(ctx, comment.AuthorID); err == nil {
				profile = author.Public()
			}
			profiles[comment.AuthorID] = profile
		}
		responses = append(responses, &CommentResponse{Comment: comment, Author: profile})
	}

	return responses, nil
}
