package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iecnexus/internal/domain/entity"
	"iecnexus/pkg/errors"
)

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, code), "expected %s, got %v", code, err)
}

// The fakes below are in-memory stand-ins for the Firestore repositories.
// They honor the same error contracts (NOT_FOUND codes, merged ownership
// checks) so the use cases under test cannot tell the difference.

var testBase = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

type memUserRepo struct {
	mu         sync.Mutex
	users      map[string]*entity.User
	topCalls   int
	resetCalls int
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		if u.NameLower == "" {
			u.NameLower = strings.ToLower(u.Name)
		}
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.NameLower = strings.ToLower(user.Name)
	user.CreatedAt = testBase
	user.UpdatedAt = testBase
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	user.NameLower = strings.ToLower(user.Name)
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) SetDeviceToken(ctx context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.FCMToken = token
	return nil
}

func (r *memUserRepo) SetBanned(ctx context.Context, userID string, banned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.IsBanned = banned
	return nil
}

func (r *memUserRepo) ToggleFollow(ctx context.Context, followerID, targetID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	follower, ok := r.users[followerID]
	if !ok {
		return false, errors.NotFound("User", nil)
	}
	target, ok := r.users[targetID]
	if !ok {
		return false, errors.NotFound("User", nil)
	}

	if follower.IsFollowing(targetID) {
		follower.Following = removeString(follower.Following, targetID)
		target.Followers = removeString(target.Followers, followerID)
		return false, nil
	}
	follower.Following = append(follower.Following, targetID)
	target.Followers = append(target.Followers, followerID)
	return true, nil
}

func (r *memUserRepo) SearchByName(ctx context.Context, prefix string, limit int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lower := strings.ToLower(prefix)
	var out []*entity.User
	for _, user := range r.users {
		if strings.HasPrefix(user.NameLower, lower) {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameLower < out[j].NameLower })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memUserRepo) TopByScore(ctx context.Context, limit int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topCalls++
	var out []*entity.User
	for _, user := range r.users {
		if user.IsBanned {
			continue
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memUserRepo) AddScore(ctx context.Context, userID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Score += delta
	return nil
}

func (r *memUserRepo) ResetAllScores(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetCalls++
	for _, user := range r.users {
		user.Score = 0
	}
	return nil
}

func (r *memUserRepo) ListWithDeviceTokens(ctx context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, user := range r.users {
		if user.FCMToken != "" {
			out = append(out, user)
		}
	}
	return out, nil
}

type memConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	seq           int
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *memConversationRepo) nextTime() time.Time {
	r.seq++
	return testBase.Add(time.Duration(r.seq) * time.Second)
}

func (r *memConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conversation.ID == "" {
		conversation.ID = fmt.Sprintf("conv-%d", len(r.conversations)+1)
	}
	conversation.CreatedAt = r.nextTime()
	r.conversations[conversation.ID] = conversation
	return nil
}

func (r *memConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (r *memConversationRepo) FindByParticipants(ctx context.Context, userA, userB string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conversation := range r.conversations {
		if conversation.HasParticipant(userA) && conversation.HasParticipant(userB) {
			return conversation, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *memConversationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Conversation
	for _, conversation := range r.conversations {
		if conversation.HasParticipant(userID) {
			out = append(out, conversation)
		}
	}
	return out, nil
}

func (r *memConversationRepo) SetLastMessage(ctx context.Context, conversationID string, snapshot *entity.MessageSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[conversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	conversation.LastMessage = snapshot
	return nil
}

func (r *memConversationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conversations, id)
	return nil
}

func (r *memConversationRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = fmt.Sprintf("msg-%d", r.seq+1)
	message.Timestamp = r.nextTime()
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], message)
	return nil
}

func (r *memConversationRepo) GetMessage(ctx context.Context, conversationID, messageID string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	message := r.findMessage(conversationID, messageID)
	if message == nil {
		return nil, errors.NotFound("Message", nil)
	}
	return message, nil
}

func (r *memConversationRepo) ListMessagesPage(ctx context.Context, conversationID, cursor string, pageSize int) ([]*entity.Message, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newestFirst := append([]*entity.Message(nil), r.messages[conversationID]...)
	sort.SliceStable(newestFirst, func(i, j int) bool {
		if !newestFirst[i].Timestamp.Equal(newestFirst[j].Timestamp) {
			return newestFirst[i].Timestamp.After(newestFirst[j].Timestamp)
		}
		return newestFirst[i].ID > newestFirst[j].ID
	})

	// Anchors on the (timestamp, id) pair like the backing store, not on the
	// cursor's slice position, so tie handling matches the real query.
	start := 0
	if cursor != "" {
		anchor := r.findMessage(conversationID, cursor)
		if anchor == nil {
			return nil, "", errors.BadRequest("Invalid cursor", nil)
		}
		for start < len(newestFirst) {
			m := newestFirst[start]
			if m.Timestamp.Before(anchor.Timestamp) ||
				(m.Timestamp.Equal(anchor.Timestamp) && m.ID < anchor.ID) {
				break
			}
			start++
		}
	}

	end := start + pageSize
	if end > len(newestFirst) {
		end = len(newestFirst)
	}
	page := newestFirst[start:end]

	nextCursor := ""
	if len(page) == pageSize {
		nextCursor = page[len(page)-1].ID
	}
	return page, nextCursor, nil
}

func (r *memConversationRepo) MarkAllRead(ctx context.Context, conversationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages[conversationID] {
		if !message.ReadByUser(userID) {
			message.ReadBy = append(message.ReadBy, userID)
		}
	}
	return nil
}

func (r *memConversationRepo) UpdateMessageContent(ctx context.Context, conversationID, messageID, senderID, content string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	message := r.findMessage(conversationID, messageID)
	if message == nil || message.SenderID != senderID {
		return nil, errors.NotFound("Message", nil)
	}
	message.Content = content
	message.IsEdited = true
	return message, nil
}

func (r *memConversationRepo) DeleteMessage(ctx context.Context, conversationID, messageID, senderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, message := range r.messages[conversationID] {
		if message.ID == messageID {
			if message.SenderID != senderID {
				return errors.NotFound("Message", nil)
			}
			r.messages[conversationID] = append(r.messages[conversationID][:i], r.messages[conversationID][i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *memConversationRepo) ToggleReaction(ctx context.Context, conversationID, messageID, userID, emoji string) ([]entity.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	message := r.findMessage(conversationID, messageID)
	if message == nil {
		return nil, errors.NotFound("Message", nil)
	}
	message.Reactions = entity.ToggleReaction(message.Reactions, userID, emoji)
	return message.Reactions, nil
}

func (r *memConversationRepo) LatestMessage(ctx context.Context, conversationID string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.Message
	for _, message := range r.messages[conversationID] {
		if latest == nil || message.Timestamp.After(latest.Timestamp) {
			latest = message
		}
	}
	if latest == nil {
		return nil, errors.NotFound("Message", nil)
	}
	return latest, nil
}

func (r *memConversationRepo) DeleteAllMessages(ctx context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, conversationID)
	return nil
}

func (r *memConversationRepo) findMessage(conversationID, messageID string) *entity.Message {
	for _, message := range r.messages[conversationID] {
		if message.ID == messageID {
			return message
		}
	}
	return nil
}

type memGroupRepo struct {
	mu            sync.Mutex
	groups        map[string]*entity.Group
	messages      map[string][]*entity.GroupMessage
	announcements map[string][]*entity.Announcement
	seq           int
}

func newMemGroupRepo() *memGroupRepo {
	return &memGroupRepo{
		groups:        make(map[string]*entity.Group),
		messages:      make(map[string][]*entity.GroupMessage),
		announcements: make(map[string][]*entity.Announcement),
	}
}

func (r *memGroupRepo) nextTime() time.Time {
	r.seq++
	return testBase.Add(time.Duration(r.seq) * time.Second)
}

func (r *memGroupRepo) Create(ctx context.Context, group *entity.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if group.ID == "" {
		group.ID = fmt.Sprintf("group-%d", len(r.groups)+1)
	}
	group.CreatedAt = r.nextTime()
	r.groups[group.ID] = group
	return nil
}

func (r *memGroupRepo) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[id]
	if !ok {
		return nil, errors.NotFound("Group", nil)
	}
	return group, nil
}

func (r *memGroupRepo) GetByInviteCode(ctx context.Context, code string) (*entity.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, group := range r.groups {
		if group.InviteCode == code {
			return group, nil
		}
	}
	return nil, errors.NotFound("Group", nil)
}

func (r *memGroupRepo) ListByMember(ctx context.Context, userID string) ([]*entity.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Group
	for _, group := range r.groups {
		if group.IsMember(userID) {
			out = append(out, group)
		}
	}
	return out, nil
}

func (r *memGroupRepo) Update(ctx context.Context, group *entity.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[group.ID]; !ok {
		return errors.NotFound("Group", nil)
	}
	r.groups[group.ID] = group
	return nil
}

func (r *memGroupRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.groups, id)
	return nil
}

func (r *memGroupRepo) AddMember(ctx context.Context, groupID string, member entity.GroupMember) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[groupID]
	if !ok {
		return false, errors.NotFound("Group", nil)
	}
	if group.IsMember(member.UserID) {
		return false, nil
	}
	group.Members = append(group.Members, member)
	return true, nil
}

func (r *memGroupRepo) RemoveMember(ctx context.Context, groupID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[groupID]
	if !ok {
		return errors.NotFound("Group", nil)
	}
	for i, member := range group.Members {
		if member.UserID == userID {
			group.Members = append(group.Members[:i], group.Members[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Member", nil)
}

func (r *memGroupRepo) SetMemberRole(ctx context.Context, groupID, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[groupID]
	if !ok {
		return errors.NotFound("Group", nil)
	}
	member := group.Member(userID)
	if member == nil {
		return errors.NotFound("Member", nil)
	}
	member.Role = role
	return nil
}

func (r *memGroupRepo) CreateMessage(ctx context.Context, message *entity.GroupMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = fmt.Sprintf("gmsg-%d", r.seq+1)
	message.Timestamp = r.nextTime()
	r.messages[message.GroupID] = append(r.messages[message.GroupID], message)
	return nil
}

func (r *memGroupRepo) ListMessagesPage(ctx context.Context, groupID, cursor string, pageSize int) ([]*entity.GroupMessage, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newestFirst := append([]*entity.GroupMessage(nil), r.messages[groupID]...)
	sort.SliceStable(newestFirst, func(i, j int) bool {
		if !newestFirst[i].Timestamp.Equal(newestFirst[j].Timestamp) {
			return newestFirst[i].Timestamp.After(newestFirst[j].Timestamp)
		}
		return newestFirst[i].ID > newestFirst[j].ID
	})

	var anchor *entity.GroupMessage
	if cursor != "" {
		for _, message := range r.messages[groupID] {
			if message.ID == cursor {
				anchor = message
				break
			}
		}
		if anchor == nil {
			return nil, "", errors.BadRequest("Invalid cursor", nil)
		}
	}
	start := 0
	if anchor != nil {
		for start < len(newestFirst) {
			m := newestFirst[start]
			if m.Timestamp.Before(anchor.Timestamp) ||
				(m.Timestamp.Equal(anchor.Timestamp) && m.ID < anchor.ID) {
				break
			}
			start++
		}
	}

	end := start + pageSize
	if end > len(newestFirst) {
		end = len(newestFirst)
	}
	page := newestFirst[start:end]

	nextCursor := ""
	if len(page) == pageSize {
		nextCursor = page[len(page)-1].ID
	}
	return page, nextCursor, nil
}

func (r *memGroupRepo) MarkAllRead(ctx context.Context, groupID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages[groupID] {
		if !message.ReadByUser(userID) {
			message.ReadBy = append(message.ReadBy, userID)
		}
	}
	return nil
}

func (r *memGroupRepo) ToggleReaction(ctx context.Context, groupID, messageID, userID, emoji string) ([]entity.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages[groupID] {
		if message.ID == messageID {
			message.Reactions = entity.ToggleReaction(message.Reactions, userID, emoji)
			return message.Reactions, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *memGroupRepo) DeleteAllMessages(ctx context.Context, groupID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, groupID)
	return nil
}

func (r *memGroupRepo) CreateAnnouncement(ctx context.Context, announcement *entity.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	announcement.ID = fmt.Sprintf("ann-%d", r.seq+1)
	announcement.CreatedAt = r.nextTime()
	r.announcements[announcement.GroupID] = append(r.announcements[announcement.GroupID], announcement)
	return nil
}

func (r *memGroupRepo) ListAnnouncements(ctx context.Context, groupID string) ([]*entity.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Announcement(nil), r.announcements[groupID]...), nil
}

func (r *memGroupRepo) DeleteAllAnnouncements(ctx context.Context, groupID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.announcements, groupID)
	return nil
}

type memPostRepo struct {
	mu       sync.Mutex
	posts    map[string]*entity.Post
	comments map[string][]*entity.Comment
	seq      int
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{
		posts:    make(map[string]*entity.Post),
		comments: make(map[string][]*entity.Comment),
	}
}

func (r *memPostRepo) nextTime() time.Time {
	r.seq++
	return testBase.Add(time.Duration(r.seq) * time.Second)
}

func (r *memPostRepo) Create(ctx context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = fmt.Sprintf("post-%d", len(r.posts)+1)
	post.CreatedAt = r.nextTime()
	r.posts[post.ID] = post
	return nil
}

func (r *memPostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, errors.NotFound("Post", nil)
	}
	return post, nil
}

func (r *memPostRepo) ListPage(ctx context.Context, cursor string, pageSize int) ([]*entity.Post, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newestFirst := make([]*entity.Post, 0, len(r.posts))
	for _, post := range r.posts {
		newestFirst = append(newestFirst, post)
	}
	sort.SliceStable(newestFirst, func(i, j int) bool {
		if !newestFirst[i].CreatedAt.Equal(newestFirst[j].CreatedAt) {
			return newestFirst[i].CreatedAt.After(newestFirst[j].CreatedAt)
		}
		return newestFirst[i].ID > newestFirst[j].ID
	})

	start := 0
	if cursor != "" {
		anchor, ok := r.posts[cursor]
		if !ok {
			return nil, "", errors.BadRequest("Invalid cursor", nil)
		}
		for start < len(newestFirst) {
			p := newestFirst[start]
			if p.CreatedAt.Before(anchor.CreatedAt) ||
				(p.CreatedAt.Equal(anchor.CreatedAt) && p.ID < anchor.ID) {
				break
			}
			start++
		}
	}

	end := start + pageSize
	if end > len(newestFirst) {
		end = len(newestFirst)
	}
	page := newestFirst[start:end]

	nextCursor := ""
	if len(page) == pageSize {
		nextCursor = page[len(page)-1].ID
	}
	return page, nextCursor, nil
}

func (r *memPostRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return false, 0, errors.NotFound("Post", nil)
	}
	if post.LikedBy(userID) {
		post.Likes = removeString(post.Likes, userID)
		return false, len(post.Likes), nil
	}
	post.Likes = append(post.Likes, userID)
	return true, len(post.Likes), nil
}

func (r *memPostRepo) CreateComment(ctx context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[comment.PostID]
	if !ok {
		return errors.NotFound("Post", nil)
	}
	comment.ID = fmt.Sprintf("comment-%d", r.seq+1)
	comment.CreatedAt = r.nextTime()
	r.comments[comment.PostID] = append(r.comments[comment.PostID], comment)
	post.CommentCount++
	return nil
}

func (r *memPostRepo) ListComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Comment(nil), r.comments[postID]...), nil
}

func (r *memPostRepo) DeleteAllComments(ctx context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, postID)
	return nil
}

type dispatchRecord struct {
	UserID   string
	Title    string
	Body     string
	Link     string
	Category string
}

type fanOutRecord struct {
	Recipients []string
	Exclude    string
	Title      string
	Body       string
	Link       string
	Category   string
}

type broadcastRecord struct {
	Title    string
	Body     string
	Link     string
	Category string
}

// recordingDispatcher captures notification calls synchronously so tests can
// assert on them without sleeping.
type recordingDispatcher struct {
	mu         sync.Mutex
	dispatches []dispatchRecord
	fanOuts    []fanOutRecord
	broadcasts []broadcastRecord
}

func (d *recordingDispatcher) DispatchAsync(userID, title, body, link, category string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatches = append(d.dispatches, dispatchRecord{userID, title, body, link, category})
}

func (d *recordingDispatcher) FanOutAsync(recipients []string, excludeUserID, title, body, link, category string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fanOuts = append(d.fanOuts, fanOutRecord{recipients, excludeUserID, title, body, link, category})
}

func (d *recordingDispatcher) BroadcastAsync(title, body, link, category string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.broadcasts = append(d.broadcasts, broadcastRecord{title, body, link, category})
}

type stubCache struct {
	mu          sync.Mutex
	entries     []*entity.PublicProfile
	sets        int
	invalidates int
}

func (c *stubCache) Get(ctx context.Context) ([]*entity.PublicProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries, nil
}

func (c *stubCache) Set(ctx context.Context, entries []*entity.PublicProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.sets++
	return nil
}

func (c *stubCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.invalidates++
	return nil
}

func removeString(list []string, value string) []string {
	for i, v := range list {
		if v == value {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
