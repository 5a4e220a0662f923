package usecase

import (
	"context"

	"iecnexus/internal/domain/entity"
	"iecnexus/internal/domain/repository"
	"iecnexus/internal/infrastructure/firebase"
	"iecnexus/pkg/errors"
)

const searchLimit = 20

type UserUseCase struct {
	userRepo   repository.UserRepository
	dispatcher NotificationDispatcher
}

func NewUserUseCase(userRepo repository.UserRepository, dispatcher NotificationDispatcher) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

type ProfileResponse struct {
	*entity.PublicProfile
	FollowerCount  int  `json:"follower_count"`
	FollowingCount int  `json:"following_count"`
	IsFollowing    bool `json:"is_following"`
}

type FollowResult struct {
	IsFollowing bool `json:"is_following"`
}

// EnsureUser upserts the profile document keyed by the external identity.
// Called on the first authenticated request of a session so the document
// store always has a row for a verified user.
func (uc *UserUseCase) EnsureUser(ctx context.Context, identity *firebase.Identity) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, identity.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	role := identity.Role
	if role != entity.RoleFaculty {
		role = entity.RoleStudent
	}
	user = &entity.User{
		ID:     identity.UID,
		Name:   identity.Name,
		Email:  identity.Email,
		Avatar: identity.Avatar,
		Role:   role,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) GetMe(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID, name, avatar string) (*entity.User, error) {
	if name == "" && avatar == "" {
		return nil, errors.BadRequest("Nothing to update", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Only the provided fields change; a partial update must not blank the
	// other one.
	if name != "" {
		user.Name = name
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) GetProfile(ctx context.Context, requesterID, userID string) (*ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		PublicProfile:  user.Public(),
		FollowerCount:  len(user.Followers),
		FollowingCount: len(user.Following),
		IsFollowing:    containsString(user.Followers, requesterID),
	}, nil
}

// ToggleFollow flips the follow edge; both mirror fields commit atomically in
// the repository.
func (uc *UserUseCase) ToggleFollow(ctx context.Context, userID, targetID string) (*FollowResult, error) {
	if userID == targetID {
		return nil, errors.BadRequest("You cannot follow yourself", nil)
	}

	nowFollowing, err := uc.userRepo.ToggleFollow(ctx, userID, targetID)
	if err != nil {
		return nil, err
	}

	if nowFollowing {
		if follower, err := uc.userRepo.GetByID(ctx, userID); err == nil {
			uc.dispatcher.DispatchAsync(targetID, follower.Name, "started following you", "/profile/"+userID, CategoryFollow)
		}
	}

	return &FollowResult{IsFollowing: nowFollowing}, nil
}

func (uc *UserUseCase) RegisterDeviceToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return errors.BadRequest("Token is required", nil)
	}
	return uc.userRepo.SetDeviceToken(ctx, userID, token)
}

// SetBanned is faculty-only moderation.
func (uc *UserUseCase) SetBanned(ctx context.Context, requesterID, targetID string, banned bool) error {
	requester, err := uc.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}
	if requester.Role != entity.RoleFaculty {
		return errors.Forbidden("Only faculty can moderate users", nil)
	}
	if requesterID == targetID {
		return errors.BadRequest("You cannot ban yourself", nil)
	}

	return uc.userRepo.SetBanned(ctx, targetID, banned)
}

func (uc *UserUseCase) Search(ctx context.Context, query string) ([]*entity.PublicProfile, error) {
	if query == "" {
		return nil, errors.BadRequest("Search query is required", nil)
	}

	users, err := uc.userRepo.SearchByName(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}

	profiles := make([]*entity.PublicProfile, 0, len(users))
	for _, user := range users {
		if user.IsBanned {
			continue
		}
		profiles = append(profiles, user.Public())
	}
	return profiles, nil
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
