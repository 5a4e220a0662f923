package entity

import "time"

type Post struct {
	ID           string    `json:"id" firestore:"id"`
	AuthorID     string    `json:"author_id" firestore:"authorId"`
	Content      string    `json:"content" firestore:"content"`
	ResourceLink string    `json:"resource_link,omitempty" firestore:"resourceLink,omitempty"`
	Likes        []string  `json:"likes" firestore:"likes"`
	CommentCount int       `json:"comment_count" firestore:"commentCount"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}

func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

type Comment struct {
	ID        string    `json:"id" firestore:"id"`
	PostID    string    `json:"post_id" firestore:"postId"`
	AuthorID  string    `json:"author_id" firestore:"authorId"`
	Content   string    `json:"content" firestore:"content"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
