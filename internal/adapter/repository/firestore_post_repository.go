package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"iecnexus/internal/domain/entity"
	"iecnexus/internal/domain/repository"
	"iecnexus/pkg/errors"
)

type firestorePostRepository struct {
	client *firestore.Client
}

func NewFirestorePostRepository(client *firestore.Client) repository.PostRepository {
	return &firestorePostRepository{
		client: client,
	}
}

func (r *firestorePostRepository) posts() *firestore.CollectionRef {
	return r.client.Collection("posts")
}

func (r *firestorePostRepository) comments(postID string) *firestore.CollectionRef {
	return r.posts().Doc(postID).Collection("comments")
}

func (r *firestorePostRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []string{}
	}

	_, err := r.posts().Doc(post.ID).Set(ctx, post)
	if err != nil {
		return errors.Internal("Failed to create post", err)
	}
	return nil
}

func (r *firestorePostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	doc, err := r.posts().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Post", err)
		}
		return nil, errors.Internal("Failed to get post", err)
	}

	var post entity.Post
	if err := doc.DataTo(&post); err != nil {
		return nil, errors.Internal("Failed to parse post data", err)
	}
	post.ID = doc.Ref.ID
	return &post, nil
}

func (r *firestorePostRepository) ListPage(ctx context.Context, cursor string, pageSize int) ([]*entity.Post, string, error) {
	// DocumentID breaks createdAt ties so posts sharing a timestamp at a
	// page boundary are not skipped.
	query := r.posts().
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)

	if cursor != "" {
		cursorDoc, err := r.posts().Doc(cursor).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, "", errors.BadRequest("Invalid cursor", err)
			}
			return nil, "", errors.Internal("Failed to resolve cursor", err)
		}
		query = query.StartAfter(cursorDoc.Data()["createdAt"], cursorDoc.Ref.ID)
	}

	iter := query.Limit(pageSize).Documents(ctx)
	var posts []*entity.Post
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", errors.Internal("Failed to iterate posts", err)
		}

		var post entity.Post
		if err := doc.DataTo(&post); err != nil {
			return nil, "", errors.Internal("Failed to parse post data", err)
		}
		post.ID = doc.Ref.ID
		posts = append(posts, &post)
	}

	nextCursor := ""
	if len(posts) == pageSize {
		nextCursor = posts[len(posts)-1].ID
	}

	return posts, nextCursor, nil
}

func (r *firestorePostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.posts().Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete post", err)
	}
	return nil
}

func (r *firestorePostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	ref := r.posts().Doc(postID)

	var liked bool
	var count int
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var post entity.Post
		if err := doc.DataTo(&post); err != nil {
			return err
		}

		likes := post.Likes
		if post.LikedBy(userID) {
			liked = false
			filtered := make([]string, 0, len(likes))
			for _, id := range likes {
				if id != userID {
					filtered = append(filtered, id)
				}
			}
			likes = filtered
		} else {
			liked = true
			likes = append(likes, userID)
		}
		count = len(likes)

		return tx.Update(ref, []firestore.Update{
			{Path: "likes", Value: likes},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, 0, errors.NotFound("Post", err)
		}
		return false, 0, errors.Internal("Failed to toggle like", err)
	}

	return liked, count, nil
}

func (r *firestorePostRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()

	postRef := r.posts().Doc(comment.PostID)
	commentRef := r.comments(comment.PostID).Doc(comment.ID)

	// Comment insert and counter bump commit together or not at all.
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(postRef); err != nil {
			return err
		}
		if err := tx.Set(commentRef, comment); err != nil {
			return err
		}
		return tx.Update(postRef, []firestore.Update{
			{Path: "commentCount", Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Post", err)
		}
		return errors.Internal("Failed to create comment", err)
	}

	return nil
}

func (r *firestorePostRepository) ListComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	iter := r.comments(postID).OrderBy("createdAt", firestore.Asc).Documents(ctx)

	var comments []*entity.Comment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate comments", err)
		}

		var comment entity.Comment
		if err := doc.DataTo(&comment); err != nil {
			continue
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, &comment)
	}
	return comments, nil
}

func (r *firestorePostRepository) DeleteAllComments(ctx context.Context, postID string) error {
	docs, err := r.comments(postID).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to fetch comments for delete", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := bw.Delete(doc.Ref); err != nil {
			return errors.Internal("Failed to queue comment delete", err)
		}
	}
	bw.End()

	return nil
}
