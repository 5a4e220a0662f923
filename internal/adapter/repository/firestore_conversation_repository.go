package repository

import (
	"context"
	"sort"
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

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) conversations() *firestore.CollectionRef {
	return r.client.Collection("conversations")
}

func (r *firestoreConversationRepository) messages(conversationID string) *firestore.CollectionRef {
	return r.conversations().Doc(conversationID).Collection("messages")
}

func (r *firestoreConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}
	conversation.CreatedAt = time.Now()

	_, err := r.conversations().Doc(conversation.ID).Set(ctx, conversation)
	if err != nil {
		return errors.Internal("Failed to create conversation", err)
	}
	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.conversations().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	conversation.ID = doc.Ref.ID
	return &conversation, nil
}

func (r *firestoreConversationRepository) FindByParticipants(ctx context.Context, userA, userB string) (*entity.Conversation, error) {
	// Firestore allows a single array-contains per query; the second
	// participant is matched client-side.
	query := r.conversations().Where("participants", "array-contains", userA)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query conversations", err)
	}

	for _, doc := range docs {
		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			continue
		}
		if len(conversation.Participants) == 2 && conversation.HasParticipant(userB) {
			conversation.ID = doc.Ref.ID
			return &conversation, nil
		}
	}

	return nil, errors.NotFound("Conversation", nil)
}

func (r *firestoreConversationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	query := r.conversations().Where("participants", "array-contains", userID)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch conversations", err)
	}

	var conversations []*entity.Conversation
	for _, doc := range docs {
		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			continue // Skip malformed documents
		}
		conversation.ID = doc.Ref.ID
		conversations = append(conversations, &conversation)
	}

	// Sorted in memory: conversations without a message yet have no
	// lastMessage field, so an index-backed OrderBy would drop them.
	sort.SliceStable(conversations, func(i, j int) bool {
		ti, tj := time.Time{}, time.Time{}
		if conversations[i].LastMessage != nil {
			ti = conversations[i].LastMessage.Timestamp
		}
		if conversations[j].LastMessage != nil {
			tj = conversations[j].LastMessage.Timestamp
		}
		return ti.After(tj)
	})

	return conversations, nil
}

func (r *firestoreConversationRepository) SetLastMessage(ctx context.Context, conversationID string, snapshot *entity.MessageSnapshot) error {
	_, err := r.conversations().Doc(conversationID).Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: snapshot},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to update last message", err)
	}
	return nil
}

func (r *firestoreConversationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.conversations().Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete conversation", err)
	}
	return nil
}

func (r *firestoreConversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.Timestamp = time.Now()
	if message.ReadBy == nil {
		message.ReadBy = []string{}
	}
	if message.Reactions == nil {
		message.Reactions = []entity.Reaction{}
	}

	_, err := r.messages(message.ConversationID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *firestoreConversationRepository) GetMessage(ctx context.Context, conversationID, messageID string) (*entity.Message, error) {
	doc, err := r.messages(conversationID).Doc(messageID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Message", err)
		}
		return nil, errors.Internal("Failed to get message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}
	message.ID = doc.Ref.ID
	return &message, nil
}

func (r *firestoreConversationRepository) ListMessagesPage(ctx context.Context, conversationID, cursor string, pageSize int) ([]*entity.Message, string, error) {
	// DocumentID breaks timestamp ties; anchoring on the timestamp alone
	// would skip a message sharing the boundary timestamp.
	query := r.messages(conversationID).
		OrderBy("timestamp", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)

	if cursor != "" {
		cursorDoc, err := r.messages(conversationID).Doc(cursor).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, "", errors.BadRequest("Invalid cursor", err)
			}
			return nil, "", errors.Internal("Failed to resolve cursor", err)
		}
		query = query.StartAfter(cursorDoc.Data()["timestamp"], cursorDoc.Ref.ID)
	}

	iter := query.Limit(pageSize).Documents(ctx)
	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, "", errors.Internal("Failed to parse message data", err)
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	// A full page means there may be older history; the oldest row of this
	// page becomes the cursor for the next one.
	nextCursor := ""
	if len(messages) == pageSize {
		nextCursor = messages[len(messages)-1].ID
	}

	return messages, nextCursor, nil
}

func (r *firestoreConversationRepository) MarkAllRead(ctx context.Context, conversationID, userID string) error {
	docs, err := r.messages(conversationID).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to fetch messages for read update", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}
		if message.ReadByUser(userID) {
			continue
		}
		if _, err := bw.Update(doc.Ref, []firestore.Update{
			{Path: "readBy", Value: firestore.ArrayUnion(userID)},
		}); err != nil {
			return errors.Internal("Failed to queue read update", err)
		}
	}
	bw.End()

	return nil
}

func (r *firestoreConversationRepository) UpdateMessageContent(ctx context.Context, conversationID, messageID, senderID, content string) (*entity.Message, error) {
	ref := r.messages(conversationID).Doc(messageID)

	var updated entity.Message
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return err
		}
		// Ownership failure is indistinguishable from a missing message so
		// the endpoint does not leak message existence to non-authors.
		if message.SenderID != senderID {
			return status.Error(codes.NotFound, "not the author")
		}

		message.ID = doc.Ref.ID
		message.Content = content
		message.IsEdited = true
		updated = message

		return tx.Update(ref, []firestore.Update{
			{Path: "content", Value: content},
			{Path: "isEdited", Value: true},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Message", err)
		}
		return nil, errors.Internal("Failed to update message", err)
	}

	return &updated, nil
}

func (r *firestoreConversationRepository) DeleteMessage(ctx context.Context, conversationID, messageID, senderID string) error {
	ref := r.messages(conversationID).Doc(messageID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return err
		}
		if message.SenderID != senderID {
			return status.Error(codes.NotFound, "not the author")
		}

		return tx.Delete(ref)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Message", err)
		}
		return errors.Internal("Failed to delete message", err)
	}

	return nil
}

func (r *firestoreConversationRepository) ToggleReaction(ctx context.Context, conversationID, messageID, userID, emoji string) ([]entity.Reaction, error) {
	ref := r.messages(conversationID).Doc(messageID)

	var result []entity.Reaction
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return err
		}

		result = entity.ToggleReaction(message.Reactions, userID, emoji)
		if result == nil {
			result = []entity.Reaction{}
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "reactions", Value: result},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Message", err)
		}
		return nil, errors.Internal("Failed to toggle reaction", err)
	}

	return result, nil
}

func (r *firestoreConversationRepository) LatestMessage(ctx context.Context, conversationID string) (*entity.Message, error) {
	iter := r.messages(conversationID).OrderBy("timestamp", firestore.Desc).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Message", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to fetch latest message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}
	message.ID = doc.Ref.ID
	return &message, nil
}

func (r *firestoreConversationRepository) DeleteAllMessages(ctx context.Context, conversationID string) error {
	docs, err := r.messages(conversationID).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to fetch messages for delete", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := bw.Delete(doc.Ref); err != nil {
			return errors.Internal("Failed to queue message delete", err)
		}
	}
	bw.End()

	return nil
}
