package domain

import (
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultDisplayName is assigned to freshly registered users.
const DefaultDisplayName = "New User"

// QuestionType enumerates the supported answer formats.
type QuestionType string

const (
	TrueFalse      QuestionType = "true_false"
	MultipleChoice QuestionType = "multiple_choice"
)

// User is a stored account. Password holds a bcrypt hash, or plain text for
// records created before hashing was introduced.
type User struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Password    string  `json:"-"`
	DisplayName string  `json:"displayName"`
	Avatar      string  `json:"avatar"`
	HighScore   float64 `json:"highScore"`
}

// Profile is the public view of a user.
type Profile struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	Avatar      string  `json:"avatar"`
	HighScore   float64 `json:"highScore"`
}

// Profile strips the user down to its public fields.
func (u User) Profile() Profile {
	return Profile{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		HighScore:   u.HighScore,
	}
}

// ProfileUpdate carries the optional fields of a profile update. Nil means "leave as is".
type ProfileUpdate struct {
	DisplayName *string
	HighScore   *float64
	Avatar      *Upload
}

// Upload is an avatar file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Question is a quiz question stored in the question bank.
type Question struct {
	ID            string       `json:"id"`
	QuestionText  string       `json:"questionText"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	CreatedBy     string       `json:"createdBy"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// QuestionInput is the client-supplied part of a question.
type QuestionInput struct {
	QuestionText  string       `json:"questionText"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	CreatedBy     string       `json:"createdBy"`
}

// NewID returns a fresh object id in hex form.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether id is a 24-character hex object id.
func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// UserPatch lists the stored profile fields to overwrite. Nil fields are left untouched.
type UserPatch struct {
	DisplayName *string
	HighScore   *float64
	Avatar      *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.DisplayName == nil && p.HighScore == nil && p.Avatar == nil
}

// EventType names a change in the question bank.
type EventType string

const (
	QuestionCreated EventType = "created"
	QuestionUpdated EventType = "updated"
	QuestionDeleted EventType = "deleted"
)

// QuestionEvent is published after every successful question write.
type QuestionEvent struct {
	Type     EventType `json:"type"`
	Question Question  `json:"question"`
}
