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

type firestoreGroupRepository struct {
	client *firestore.Client
}

func NewFirestoreGroupRepository(client *firestore.Client) repository.GroupRepository {
	return &firestoreGroupRepository{
		client: client,
	}
}

func (r *firestoreGroupRepository) groups() *firestore.CollectionRef {
	return r.client.Collection("groups")
}

func (r *firestoreGroupRepository) messages(groupID string) *firestore.CollectionRef {
	return r.groups().Doc(groupID).Collection("messages")
}

func (r *firestoreGroupRepository) announcements(groupID string) *firestore.CollectionRef {
	return r.groups().Doc(groupID).Collection("announcements")
}

func (r *firestoreGroupRepository) Create(ctx context.Context, group *entity.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	group.CreatedAt = time.Now()
	if group.Members == nil {
		group.Members = []entity.GroupMember{}
	}

	_, err := r.groups().Doc(group.ID).Set(ctx, group)
	if err != nil {
		return errors.Internal("Failed to create group", err)
	}
	return nil
}

func (r *firestoreGroupRepository) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	doc, err := r.groups().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Group", err)
		}
		return nil, errors.Internal("Failed to get group", err)
	}

	var group entity.Group
	if err := doc.DataTo(&group); err != nil {
		return nil, errors.Internal("Failed to parse group data", err)
	}
	group.ID = doc.Ref.ID
	return &group, nil
}

func (r *firestoreGroupRepository) GetByInviteCode(ctx context.Context, code string) (*entity.Group, error) {
	iter := r.groups().Where("inviteCode", "==", code).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Group", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query group by invite code", err)
	}

	var group entity.Group
	if err := doc.DataTo(&group); err != nil {
		return nil, errors.Internal("Failed to parse group data", err)
	}
	group.ID = doc.Ref.ID
	return &group, nil
}

func (r *firestoreGroupRepository) ListByMember(ctx context.Context, userID string) ([]*entity.Group, error) {
	// Membership entries are {userId, role} maps, so array-contains cannot
	// match on the user id alone; filtered client-side.
	docs, err := r.groups().Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch groups", err)
	}

	var groups []*entity.Group
	for _, doc := range docs {
		var group entity.Group
		if err := doc.DataTo(&group); err != nil {
			continue // Skip malformed documents
		}
		group.ID = doc.Ref.ID
		if group.IsMember(userID) {
			groups = append(groups, &group)
		}
	}
	return groups, nil
}

func (r *firestoreGroupRepository) Update(ctx context.Context, group *entity.Group) error {
	_, err := r.groups().Doc(group.ID).Set(ctx, group)
	if err != nil {
		return errors.Internal("Failed to update group", err)
	}
	return nil
}

func (r *firestoreGroupRepository) Delete(ctx context.Context, id string) error {
	_, err := r.groups().Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete group", err)
	}
	return nil
}

func (r *firestoreGroupRepository) AddMember(ctx context.Context, groupID string, member entity.GroupMember) (bool, error) {
	ref := r.groups().Doc(groupID)

	var added bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var group entity.Group
		if err := doc.DataTo(&group); err != nil {
			return err
		}
		if group.IsMember(member.UserID) {
			added = false
			return nil
		}

		added = true
		return tx.Update(ref, []firestore.Update{
			{Path: "members", Value: append(group.Members, member)},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, errors.NotFound("Group", err)
		}
		return false, errors.Internal("Failed to add member", err)
	}

	return added, nil
}

func (r *firestoreGroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	ref := r.groups().Doc(groupID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var group entity.Group
		if err := doc.DataTo(&group); err != nil {
			return err
		}

		members := make([]entity.GroupMember, 0, len(group.Members))
		for _, m := range group.Members {
			if m.UserID != userID {
				members = append(members, m)
			}
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "members", Value: members},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Group", err)
		}
		return errors.Internal("Failed to remove member", err)
	}

	return nil
}

func (r *firestoreGroupRepository) SetMemberRole(ctx context.Context, groupID, userID, role string) error {
	ref := r.groups().Doc(groupID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var group entity.Group
		if err := doc.DataTo(&group); err != nil {
			return err
		}

		found := false
		for i := range group.Members {
			if group.Members[i].UserID == userID {
				group.Members[i].Role = role
				found = true
				break
			}
		}
		if !found {
			return status.Error(codes.NotFound, "not a member")
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "members", Value: group.Members},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Member", err)
		}
		return errors.Internal("Failed to update member role", err)
	}

	return nil
}

func (r *firestoreGroupRepository) CreateMessage(ctx context.Context, message *entity.GroupMessage) error {
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

	_, err := r.messages(message.GroupID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create group message", err)
	}
	return nil
}

func (r *firestoreGroupRepository) ListMessagesPage(ctx context.Context, groupID, cursor string, pageSize int) ([]*entity.GroupMessage, string, error) {
	// DocumentID breaks timestamp ties so a page boundary between two
	// messages with the same timestamp cannot drop one of them.
	query := r.messages(groupID).
		OrderBy("timestamp", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)

	if cursor != "" {
		cursorDoc, err := r.messages(groupID).Doc(cursor).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, "", errors.BadRequest("Invalid cursor", err)
			}
			return nil, "", errors.Internal("Failed to resolve cursor", err)
		}
		query = query.StartAfter(cursorDoc.Data()["timestamp"], cursorDoc.Ref.ID)
	}

	iter := query.Limit(pageSize).Documents(ctx)
	var messages []*entity.GroupMessage
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", errors.Internal("Failed to iterate group messages", err)
		}

		var message entity.GroupMessage
		if err := doc.DataTo(&message); err != nil {
			return nil, "", errors.Internal("Failed to parse group message data", err)
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	nextCursor := ""
	if len(messages) == pageSize {
		nextCursor = messages[len(messages)-1].ID
	}

	return messages, nextCursor, nil
}

func (r *firestoreGroupRepository) MarkAllRead(ctx context.Context, groupID, userID string) error {
	docs, err := r.messages(groupID).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to fetch group messages for read update", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		var message entity.GroupMessage
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

func (r *firestoreGroupRepository) ToggleReaction(ctx context.Context, groupID, messageID, userID, emoji string) ([]entity.Reaction, error) {
	ref := r.messages(groupID).Doc(messageID)

	var result []entity.Reaction
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var message entity.GroupMessage
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

func (r *firestoreGroupRepository) DeleteAllMessages(ctx context.Context, groupID string) error {
	return r.deleteAll(ctx, r.messages(groupID))
}

func (r *firestoreGroupRepository) CreateAnnouncement(ctx context.Context, announcement *entity.Announcement) error {
	if announcement.ID == "" {
		announcement.ID = uuid.New().String()
	}
	announcement.CreatedAt = time.Now()

	_, err := r.announcements(announcement.GroupID).Doc(announcement.ID).Set(ctx, announcement)
	if err != nil {
		return errors.Internal("Failed to create announcement", err)
	}
	return nil
}

func (r *firestoreGroupRepository) ListAnnouncements(ctx context.Context, groupID string) ([]*entity.Announcement, error) {
	iter := r.announcements(groupID).OrderBy("createdAt", firestore.Desc).Documents(ctx)

	var announcements []*entity.Announcement
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate announcements", err)
		}

		var announcement entity.Announcement
		if err := doc.DataTo(&announcement); err != nil {
			continue
		}
		announcement.ID = doc.Ref.ID
		announcements = append(announcements, &announcement)
	}
	return announcements, nil
}

func (r *firestoreGroupRepository) DeleteAllAnnouncements(ctx context.Context, groupID string) error {
	return r.deleteAll(ctx, r.announcements(groupID))
}

func (r *firestoreGroupRepository) deleteAll(ctx context.Context, col *firestore.CollectionRef) error {
	docs, err := col.Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to fetch documents for delete", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := bw.Delete(doc.Ref); err != nil {
			return errors.Internal("Failed to queue delete", err)
		}
	}
	bw.End()

	return nil
}
