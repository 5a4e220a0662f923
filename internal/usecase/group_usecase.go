package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"iecnexus/internal/domain/entity"
	"iecnexus/internal/domain/repository"
	"iecnexus/internal/infrastructure/websocket"
	"iecnexus/pkg/errors"
	"iecnexus/pkg/logger"
)

const inviteCodeLength = 6

type GroupUseCase struct {
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	dispatcher NotificationDispatcher
	hub        *websocket.Hub
	pageSize   int
}

func NewGroupUseCase(
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	dispatcher NotificationDispatcher,
	hub *websocket.Hub,
	pageSize int,
) *GroupUseCase {
	return &GroupUseCase{
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		hub:        hub,
		pageSize:   pageSize,
	}
}

type CreateGroupInput struct {
	Name        string
	Description string
	CoverImage  string
}

type UpdateGroupInput struct {
	Name        string
	Description string
	CoverImage  string
}

type GroupMessageResponse struct {
	*entity.GroupMessage
	Sender *entity.PublicProfile `json:"sender,omitempty"`
}

type GroupMessagesPage struct {
	Items      []*GroupMessageResponse
	NextCursor string
}

type JoinResult struct {
	Group         *entity.Group `json:"group"`
	AlreadyMember bool          `json:"already_member"`
}

func (uc *GroupUseCase) CreateGroup(ctx context.Context, userID string, input CreateGroupInput) (*entity.Group, error) {
	if input.Name == "" {
		return nil, errors.BadRequest("Group name is required", nil)
	}

	code, err := uc.generateInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	group := &entity.Group{
		Name:        input.Name,
		Description: input.Description,
		CoverImage:  input.CoverImage,
		CreatedBy:   userID,
		InviteCode:  code,
		Members: []entity.GroupMember{
			{UserID: userID, Role: entity.GroupRoleOwner},
		},
	}
	if err := uc.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (uc *GroupUseCase) ListGroups(ctx context.Context, userID string) ([]*entity.Group, error) {
	groups, err := uc.groupRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})
	return groups, nil
}

func (uc *GroupUseCase) GetGroup(ctx context.Context, userID, groupID string) (*entity.Group, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}
	return group, nil
}

func (uc *GroupUseCase) UpdateGroup(ctx context.Context, userID, groupID string, input UpdateGroupInput) (*entity.Group, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != userID {
		return nil, errors.Forbidden("Only the group owner can update the group", nil)
	}

	if input.Name != "" {
		group.Name = input.Name
	}
	if input.Description != "" {
		group.Description = input.Description
	}
	if input.CoverImage != "" {
		group.CoverImage = input.CoverImage
	}

	if err := uc.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (uc *GroupUseCase) DeleteGroup(ctx context.Context, userID, groupID string) error {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy != userID {
		return errors.Forbidden("Only the group owner can delete the group", nil)
	}

	if err := uc.groupRepo.DeleteAllMessages(ctx, groupID); err != nil {
		return err
	}
	if err := uc.groupRepo.DeleteAllAnnouncements(ctx, groupID); err != nil {
		return err
	}
	return uc.groupRepo.Delete(ctx, groupID)
}

// Join resolves the argument as an invite code first and falls back to
// treating it as a raw group id. Joining twice is not an error; the result
// says which case happened.
func (uc *GroupUseCase) Join(ctx context.Context, userID, codeOrID string) (*JoinResult, error) {
	if codeOrID == "" {
		return nil, errors.BadRequest("Invite code is required", nil)
	}

	group, err := uc.groupRepo.GetByInviteCode(ctx, codeOrID)
	if errors.Is(err, "NOT_FOUND") {
		group, err = uc.groupRepo.GetByID(ctx, codeOrID)
	}
	if err != nil {
		return nil, err
	}

	added, err := uc.groupRepo.AddMember(ctx, group.ID, entity.GroupMember{
		UserID: userID,
		Role:   entity.GroupRoleMember,
	})
	if err != nil {
		return nil, err
	}

	group, err = uc.groupRepo.GetByID(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	return &JoinResult{Group: group, AlreadyMember: !added}, nil
}

func (uc *GroupUseCase) Leave(ctx context.Context, userID, groupID string) error {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsMember(userID) {
		return errors.BadRequest("You are not a member of this group", nil)
	}
	if group.CreatedBy == userID {
		return errors.BadRequest("The owner cannot leave the group; delete it instead", nil)
	}

	return uc.groupRepo.RemoveMember(ctx, groupID, userID)
}

func (uc *GroupUseCase) UpdateMemberRole(ctx context.Context, requesterID, groupID, targetUserID, newRole string) error {
	if newRole != entity.GroupRoleModerator && newRole != entity.GroupRoleMember {
		return errors.BadRequest("Role must be moderator or member", nil)
	}

	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy != requesterID {
		return errors.Forbidden("Only the group owner can change member roles", nil)
	}
	if targetUserID == requesterID {
		return errors.BadRequest("The owner role cannot be changed", nil)
	}

	return uc.groupRepo.SetMemberRole(ctx, groupID, targetUserID, newRole)
}

func (uc *GroupUseCase) SendGroupMessage(ctx context.Context, userID, groupID string, input SendMessageInput) (*GroupMessageResponse, error) {
	if input.Content == "" && input.ImageURL == "" {
		return nil, errors.BadRequest("Message needs content or an image", nil)
	}

	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}

	message := &entity.GroupMessage{
		GroupID:   groupID,
		SenderID:  userID,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		ReadBy:    []string{userID},
		Reactions: []entity.Reaction{},
	}
	if err := uc.groupRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	sender, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	body := input.Content
	if body == "" {
		body = "Sent an image"
	}
	uc.dispatcher.FanOutAsync(group.MemberIDs(), userID, group.Name, sender.Name+": "+body, "/groups/"+groupID, CategoryGroupMessage)
	for _, memberID := range group.MemberIDs() {
		if memberID == userID {
			continue
		}
		uc.hub.SendToUser(memberID, websocket.Event{
			Type:    websocket.EventGroupMessageCreated,
			GroupID: groupID,
			Payload: message,
		})
	}

	return &GroupMessageResponse{GroupMessage: message, Sender: sender.Public()}, nil
}

func (uc *GroupUseCase) ListGroupMessages(ctx context.Context, userID, groupID, cursor string) (*GroupMessagesPage, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}

	if cursor == "" {
		if err := uc.groupRepo.MarkAllRead(ctx, groupID, userID); err != nil {
			return nil, err
		}
	}

	messages, nextCursor, err := uc.groupRepo.ListMessagesPage(ctx, groupID, cursor, uc.pageSize)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})

	profiles := make(map[string]*entity.PublicProfile)
	items := make([]*GroupMessageResponse, 0, len(messages))
	for _, message := range messages {
		profile, ok := profiles[message.SenderID]
		if !ok {
			if sender, err := uc.userRepo.GetByID(ctx, message.SenderID); err == nil {
				profile = sender.Public()
			}
			profiles[message.SenderID] = profile
		}
		items = append(items, &GroupMessageResponse{GroupMessage: message, Sender: profile})
	}

	return &GroupMessagesPage{Items: items, NextCursor: nextCursor}, nil
}

func (uc *GroupUseCase) ToggleReaction(ctx context.Context, userID, groupID, messageID, emoji string) ([]entity.Reaction, error) {
	if emoji == "" {
		return nil, errors.BadRequest("Emoji is required", nil)
	}

	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}

	return uc.groupRepo.ToggleReaction(ctx, groupID, messageID, userID, emoji)
}

// PostAnnouncement is restricted to faculty members of the group.
func (uc *GroupUseCase) PostAnnouncement(ctx context.Context, userID, groupID, content string) (*entity.Announcement, error) {
	if content == "" {
		return nil, errors.BadRequest("Content is required", nil)
	}

	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}

	author, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author.Role != entity.RoleFaculty {
		return nil, errors.Forbidden("Only faculty can post announcements", nil)
	}

	announcement := &entity.Announcement{
		GroupID:  groupID,
		AuthorID: userID,
		Content:  content,
	}
	if err := uc.groupRepo.CreateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}

	uc.dispatcher.FanOutAsync(group.MemberIDs(), userID, group.Name, content, "/groups/"+groupID+"/announcements", CategoryAnnouncement)
	for _, memberID := range group.MemberIDs() {
		if memberID == userID {
			continue
		}
		uc.hub.SendToUser(memberID, websocket.Event{
			Type:    websocket.EventAnnouncementCreated,
			GroupID: groupID,
			Payload: announcement,
		})
	}

	return announcement, nil
}

func (uc *GroupUseCase) ListAnnouncements(ctx context.Context, userID, groupID string) ([]*entity.Announcement, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}

	return uc.groupRepo.ListAnnouncements(ctx, groupID)
}

// generateInviteCode picks a 6-character code and retries on the rare
// collision with an existing group.
func (uc *GroupUseCase) generateInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := strings.ReplaceAll(uuid.New().String(), "-", "")[:inviteCodeLength]
		_, err := uc.groupRepo.GetByInviteCode(ctx, code)
		if errors.Is(err, "NOT_FOUND") {
			return code, nil
		}
		if err != nil {
			return "", err
		}
		logger.Debug("invite code collision, retrying")
	}
	return "", errors.Internal("Could not generate a unique invite code", nil)
}
