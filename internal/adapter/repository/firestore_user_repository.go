package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"iecnexus/internal/domain/entity"
	"iecnexus/internal/domain/repository"
	"iecnexus/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.NameLower = strings.ToLower(user.Name)
	if user.Following == nil {
		user.Following = []string{}
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"updatedAt": time.Now(),
	}
	if user.Name != "" {
		updateData["name"] = user.Name
		updateData["nameLower"] = strings.ToLower(user.Name)
	}
	if user.Avatar != "" {
		updateData["avatar"] = user.Avatar
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, updateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) SetDeviceToken(ctx context.Context, userID, token string) error {
	// Last write wins; a user has at most one registered device.
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "fcmToken", Value: token},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to set device token", err)
	}
	return nil
}

func (r *firestoreUserRepository) SetBanned(ctx context.Context, userID string, banned bool) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "isBanned", Value: banned},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update ban state", err)
	}
	return nil
}

func (r *firestoreUserRepository) ToggleFollow(ctx context.Context, followerID, targetID string) (bool, error) {
	followerRef := r.client.Collection("users").Doc(followerID)
	targetRef := r.client.Collection("users").Doc(targetID)

	var nowFollowing bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		followerDoc, err := tx.Get(followerRef)
		if err != nil {
			return err
		}
		if _, err := tx.Get(targetRef); err != nil {
			return err
		}

		var follower entity.User
		if err := followerDoc.DataTo(&follower); err != nil {
			return err
		}

		// Both sides of the relationship flip inside this transaction so the
		// follower/following mirror can never diverge.
		if follower.IsFollowing(targetID) {
			nowFollowing = false
			if err := tx.Update(followerRef, []firestore.Update{
				{Path: "following", Value: firestore.ArrayRemove(targetID)},
			}); err != nil {
				return err
			}
			return tx.Update(targetRef, []firestore.Update{
				{Path: "followers", Value: firestore.ArrayRemove(followerID)},
			})
		}

		nowFollowing = true
		if err := tx.Update(followerRef, []firestore.Update{
			{Path: "following", Value: firestore.ArrayUnion(targetID)},
		}); err != nil {
			return err
		}
		return tx.Update(targetRef, []firestore.Update{
			{Path: "followers", Value: firestore.ArrayUnion(followerID)},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, errors.NotFound("User", err)
		}
		return false, errors.Internal("Failed to toggle follow", err)
	}

	return nowFollowing, nil
}

func (r *firestoreUserRepository) SearchByName(ctx context.Context, prefix string, limit int) ([]*entity.User, error) {
	lower := strings.ToLower(prefix)
	query := r.client.Collection("users").
		Where("nameLower", ">=", lower).
		Where("nameLower", "<=", lower+"\uf8ff").
		Limit(limit)

	return r.collectUsers(query.Documents(ctx))
}

func (r *firestoreUserRepository) TopByScore(ctx context.Context, limit int) ([]*entity.User, error) {
	query := r.client.Collection("users").
		Where("isBanned", "==", false).
		OrderBy("score", firestore.Desc).
		Limit(limit)

	return r.collectUsers(query.Documents(ctx))
}

func (r *firestoreUserRepository) AddScore(ctx context.Context, userID string, delta int) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "score", Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to add score", err)
	}
	return nil
}

func (r *firestoreUserRepository) ResetAllScores(ctx context.Context) error {
	docs, err := r.client.Collection("users").Where("score", ">", 0).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to list users for score reset", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := bw.Update(doc.Ref, []firestore.Update{
			{Path: "score", Value: 0},
		}); err != nil {
			return errors.Internal("Failed to queue score reset", err)
		}
	}
	bw.End()

	return nil
}

func (r *firestoreUserRepository) ListWithDeviceTokens(ctx context.Context) ([]*entity.User, error) {
	query := r.client.Collection("users").Where("fcmToken", "!=", "")
	return r.collectUsers(query.Documents(ctx))
}

func (r *firestoreUserRepository) collectUsers(iter *firestore.DocumentIterator) ([]*entity.User, error) {
	var users []*entity.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate users", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			continue // Skip malformed documents
		}
		user.ID = doc.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}
