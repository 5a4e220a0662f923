package entity

import "time"

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

type User struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	NameLower string    `json:"-" firestore:"nameLower"`
	Email     string    `json:"email" firestore:"email"`
	Avatar    string    `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Role      string    `json:"role" firestore:"role"`
	Score     int       `json:"score" firestore:"score"`
	FCMToken  string    `json:"-" firestore:"fcmToken,omitempty"`
	Following []string  `json:"following" firestore:"following"`
	Followers []string  `json:"followers" firestore:"followers"`
	IsBanned  bool      `json:"is_banned" firestore:"isBanned"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// PublicProfile is the slice of a user that other users are allowed to see.
// It is joined live into conversation and message payloads, never stored.
type PublicProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role"`
	Score  int    `json:"score"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
		Role:   u.Role,
		Score:  u.Score,
	}
}

func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}
