package usecase

import (
	"context"
	"sort"

	"iecnexus/internal/domain/entity"
	"iecnexus/internal/domain/repository"
	"iecnexus/internal/infrastructure/websocket"
	"iecnexus/pkg/errors"
	"iecnexus/pkg/logger"
)

// NotificationDispatcher is the fire-and-forget side of the Notifier; split
// out so tests can record dispatches synchronously.
type NotificationDispatcher interface {
	DispatchAsync(userID, title, body, link, category string)
	FanOutAsync(recipients []string, excludeUserID, title, body, link, category string)
	BroadcastAsync(title, body, link, category string)
}

type ConversationUseCase struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	dispatcher       NotificationDispatcher
	hub              *websocket.Hub
	pageSize         int
}

func NewConversationUseCase(
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	dispatcher NotificationDispatcher,
	hub *websocket.Hub,
	pageSize int,
) *ConversationUseCase {
	return &ConversationUseCase{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		dispatcher:       dispatcher,
		hub:              hub,
		pageSize:         pageSize,
	}
}

type ConversationResponse struct {
	*entity.Conversation
	OtherUser *entity.PublicProfile `json:"other_user,omitempty"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.PublicProfile `json:"sender,omitempty"`
}

type MessagesPage struct {
	Items      []*MessageResponse
	NextCursor string
}

func (uc *ConversationUseCase) ListConversations(ctx context.Context, userID string) ([]*ConversationResponse, error) {
	conversations, err := uc.conversationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		resp := &ConversationResponse{Conversation: conversation}
		otherID := conversation.OtherParticipant(userID)
		if otherID != "" {
			other, err := uc.userRepo.GetByID(ctx, otherID)
			if err != nil {
				logger.Warn("list conversations: other participant %s: %v", otherID, err)
			} else {
				resp.OtherUser = other.Public()
			}
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// StartConversation returns the existing conversation for the unordered pair
// when one exists, so calling it twice (in either order) yields the same id.
func (uc *ConversationUseCase) StartConversation(ctx context.Context, userID, recipientID string) (*ConversationResponse, error) {
	if userID == recipientID {
		return nil, errors.BadRequest("Cannot start a conversation with yourself", nil)
	}

	recipient, err := uc.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.conversationRepo.FindByParticipants(ctx, userID, recipientID)
	if err == nil {
		return &ConversationResponse{Conversation: existing, OtherUser: recipient.Public()}, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	conversation := &entity.Conversation{
		Participants: []string{userID, recipientID},
	}
	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	return &ConversationResponse{Conversation: conversation, OtherUser: recipient.Public()}, nil
}

func (uc *ConversationUseCase) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this conversation", nil)
	}

	// Messages go first; a crash in between leaves an empty conversation
	// rather than orphaned messages.
	if err := uc.conversationRepo.DeleteAllMessages(ctx, conversationID); err != nil {
		return err
	}
	return uc.conversationRepo.Delete(ctx, conversationID)
}

// ListMessages returns one page of messages, oldest first within the page.
// A request without a cursor is the "open the conversation" case and marks
// everything as read by the requester.
func (uc *ConversationUseCase) ListMessages(ctx context.Context, userID, conversationID, cursor string) (*MessagesPage, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	if cursor == "" {
		if err := uc.conversationRepo.MarkAllRead(ctx, conversationID, userID); err != nil {
			return nil, err
		}
	}

	messages, nextCursor, err := uc.conversationRepo.ListMessagesPage(ctx, conversationID, cursor, uc.pageSize)
	if err != nil {
		return nil, err
	}

	// Fetched newest-first for the cursor walk; displayed oldest-first.
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})

	return &MessagesPage{
		Items:      uc.enrichMessages(ctx, messages),
		NextCursor: nextCursor,
	}, nil
}

type SendMessageInput struct {
	Content  string
	ImageURL string
}

func (uc *ConversationUseCase) SendMessage(ctx context.Context, userID, conversationID string, input SendMessageInput) (*MessageResponse, error) {
	if input.Content == "" && input.ImageURL == "" {
		return nil, errors.BadRequest("Message needs content or an image", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        input.Content,
		ImageURL:       input.ImageURL,
		ReadBy:         []string{userID},
		Reactions:      []entity.Reaction{},
	}
	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.conversationRepo.SetLastMessage(ctx, conversationID, message.Snapshot()); err != nil {
		logger.Warn("send message: update last message for %s: %v", conversationID, err)
	}

	sender, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipientID := conversation.OtherParticipant(userID)
	if recipientID != "" {
		body := input.Content
		if body == "" {
			body = "Sent an image"
		}
		uc.dispatcher.DispatchAsync(recipientID, sender.Name, body, "/messages/"+conversationID, CategoryDirectMessage)
		uc.hub.SendToUser(recipientID, websocket.Event{
			Type:           websocket.EventMessageCreated,
			ConversationID: conversationID,
			Payload:        message,
		})
	}

	return &MessageResponse{Message: message, Sender: sender.Public()}, nil
}

// EditMessage succeeds only for the message's author; everyone else gets the
// same not-found answer whether the message exists or not.
func (uc *ConversationUseCase) EditMessage(ctx context.Context, userID, conversationID, messageID, content string) (*MessageResponse, error) {
	if content == "" {
		return nil, errors.BadRequest("Content is required", nil)
	}

	message, err := uc.conversationRepo.UpdateMessageContent(ctx, conversationID, messageID, userID, content)
	if err != nil {
		return nil, err
	}

	resp := &MessageResponse{Message: message}
	if sender, err := uc.userRepo.GetByID(ctx, userID); err == nil {
		resp.Sender = sender.Public()
	}
	return resp, nil
}

func (uc *ConversationUseCase) DeleteMessage(ctx context.Context, userID, conversationID, messageID string) error {
	if err := uc.conversationRepo.DeleteMessage(ctx, conversationID, messageID, userID); err != nil {
		return err
	}

	// If the deleted message was the denormalized lastMessage, recompute it
	// from whatever is now newest so the inbox does not show a ghost.
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		logger.Warn("delete message: reload conversation %s: %v", conversationID, err)
		return nil
	}
	if conversation.LastMessage == nil || conversation.LastMessage.MessageID != messageID {
		return nil
	}

	var snapshot *entity.MessageSnapshot
	latest, err := uc.conversationRepo.LatestMessage(ctx, conversationID)
	if err == nil {
		snapshot = latest.Snapshot()
	} else if !errors.Is(err, "NOT_FOUND") {
		logger.Warn("delete message: recompute last message for %s: %v", conversationID, err)
		return nil
	}
	if err := uc.conversationRepo.SetLastMessage(ctx, conversationID, snapshot); err != nil {
		logger.Warn("delete message: repair last message for %s: %v", conversationID, err)
	}

	return nil
}

func (uc *ConversationUseCase) ToggleReaction(ctx context.Context, userID, conversationID, messageID, emoji string) ([]entity.Reaction, error) {
	if emoji == "" {
		return nil, errors.BadRequest("Emoji is required", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return uc.conversationRepo.ToggleReaction(ctx, conversationID, messageID, userID, emoji)
}

func (uc *ConversationUseCase) enrichMessages(ctx context.Context, messages []*entity.Message) []*MessageResponse {
	profiles := make(map[string]*entity.PublicProfile)
	responses := make([]*MessageResponse, 0, len(messages))

	for _, message := range messages {
		profile, ok := profiles[message.SenderID]
		if !ok {
			if sender, err := uc.userRepo.GetByID(ctx, message.SenderID); err == nil {
				profile = sender.Public()
			}
			profiles[message.SenderID] = profile
		}
		responses = append(responses, &MessageResponse{Message: message, Sender: profile})
	}

	return responses
}
