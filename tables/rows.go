package tables

import "time"

type Badge struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Icon        string    `db:"icon" json:"icon"`
	Points      int       `db:"points" json:"points"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Certificate struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	CourseID       string    `db:"course_id" json:"course_id"`
	CertificateURL string    `db:"certificate_url" json:"certificate_url"`
	IssuedAt       time.Time `db:"issued_at" json:"issued_at"`
}

type Challenge struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Type        string    `db:"type" json:"type"`
	Points      int       `db:"points" json:"points"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CourseMaterial struct {
	ID         string    `db:"id" json:"id"`
	CourseID   *string   `db:"course_id" json:"course_id"`
	Title      string    `db:"title" json:"title"`
	Type       string    `db:"type" json:"type"`
	ContentURL string    `db:"content_url" json:"content_url"`
	OrderIndex int       `db:"order_index" json:"order_index"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CourseResource struct {
	ID          string     `db:"id" json:"id"`
	CourseID    *string    `db:"course_id" json:"course_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Type        *string    `db:"type" json:"type"`
	FileURL     string     `db:"file_url" json:"file_url"`
	OrderIndex  int        `db:"order_index" json:"order_index"`
	CreatedAt   *time.Time `db:"created_at" json:"created_at"`
}

type Course struct {
	ID          string           `db:"id" json:"id"`
	Title       string           `db:"title" json:"title"`
	Description *string          `db:"description" json:"description"`
	Category    CourseCategory   `db:"category" json:"category"`
	Difficulty  CourseDifficulty `db:"difficulty" json:"difficulty"`
	Path        CoursePath       `db:"path" json:"path"`
	TeacherID   string           `db:"teacher_id" json:"teacher_id"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

type Exercise struct {
	ID          string          `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description *string         `db:"description" json:"description"`
	Difficulty  DifficultyLevel `db:"difficulty" json:"difficulty"`
	Status      ExerciseStatus  `db:"status" json:"status"`
	Type        ExerciseType    `db:"type" json:"type"`
	TeacherID   string          `db:"teacher_id" json:"teacher_id"`
	TimeLimit   *int            `db:"time_limit" json:"time_limit"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type ForumReply struct {
	ID        string    `db:"id" json:"id"`
	TopicID   string    `db:"topic_id" json:"topic_id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ForumTopic struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Message struct {
	ID         string    `db:"id" json:"id"`
	SenderID   string    `db:"sender_id" json:"sender_id"`
	ReceiverID string    `db:"receiver_id" json:"receiver_id"`
	Content    string    `db:"content" json:"content"`
	Read       *bool     `db:"read" json:"read"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Type      string    `db:"type" json:"type"`
	Read      *bool     `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Profile struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	FullName       *string   `db:"full_name" json:"full_name"`
	AvatarURL      *string   `db:"avatar_url" json:"avatar_url"`
	Bio            *string   `db:"bio" json:"bio"`
	Specialization *string   `db:"specialization" json:"specialization"`
	Points         *int      `db:"points" json:"points"`
	Role           UserRole  `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Progress tracks a student through a course. CompletedMaterials is
// free-form JSON.
type Progress struct {
	ID                   string    `db:"id" json:"id"`
	StudentID            *string   `db:"student_id" json:"student_id"`
	CourseID             *string   `db:"course_id" json:"course_id"`
	CompletedMaterials   any       `db:"completed_materials" json:"completed_materials"`
	CompletionPercentage *float64  `db:"completion_percentage" json:"completion_percentage"`
	StartedAt            time.Time `db:"started_at" json:"started_at"`
	LastAccessedAt       time.Time `db:"last_accessed_at" json:"last_accessed_at"`
}

// UserBadge links a profile to an earned badge.
type UserBadge struct {
	ID       string    `db:"id" json:"id"`
	UserID   string    `db:"user_id" json:"user_id"`
	BadgeID  string    `db:"badge_id" json:"badge_id"`
	EarnedAt time.Time `db:"earned_at" json:"earned_at"`
}

// UserChallenge links a profile to a challenge it takes part in.
type UserChallenge struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	ChallengeID string     `db:"challenge_id" json:"challenge_id"`
	Status      string     `db:"status" json:"status"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
