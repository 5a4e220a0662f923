package entity

import "time"

const (
	GroupRoleOwner     = "owner"
	GroupRoleModerator = "moderator"
	GroupRoleMember    = "member"
)

type GroupMember struct {
	UserID string `json:"user_id" firestore:"userId"`
	Role   string `json:"role" firestore:"role"`
}

type Group struct {
	ID          string        `json:"id" firestore:"id"`
	Name        string        `json:"name" firestore:"name"`
	Description string        `json:"description,omitempty" firestore:"description,omitempty"`
	Members     []GroupMember `json:"members" firestore:"members"`
	CreatedBy   string        `json:"created_by" firestore:"createdBy"`
	CoverImage  string        `json:"cover_image,omitempty" firestore:"coverImage,omitempty"`
	InviteCode  string        `json:"invite_code" firestore:"inviteCode"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
}

func (g *Group) Member(userID string) *GroupMember {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

func (g *Group) IsMember(userID string) bool {
	return g.Member(userID) != nil
}

func (g *Group) MemberIDs() []string {
	ids := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

type GroupMessage struct {
	ID        string     `json:"id" firestore:"id"`
	GroupID   string     `json:"group_id" firestore:"groupId"`
	SenderID  string     `json:"sender_id" firestore:"senderId"`
	Content   string     `json:"content" firestore:"content"`
	ImageURL  string     `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Timestamp time.Time  `json:"timestamp" firestore:"timestamp"`
	ReadBy    []string   `json:"read_by" firestore:"readBy"`
	Reactions []Reaction `json:"reactions" firestore:"reactions"`
	IsEdited  bool       `json:"is_edited" firestore:"isEdited"`
}

func (m *GroupMessage) ReadByUser(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

type Announcement struct {
	ID        string    `json:"id" firestore:"id"`
	GroupID   string    `json:"group_id" firestore:"groupId"`
	AuthorID  string    `json:"author_id" firestore:"authorId"`
	Content   string    `json:"content" firestore:"content"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
