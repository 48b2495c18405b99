// Package tables declares the TechMentorAI tables: their identifiers, row
// shapes and enumerations, and the registry the facade checks them against.
package tables

import "github.com/jassmeen122/techmentorai/core"

// Table identifiers.
const (
	Badges          core.Table = "badges"
	Certificates    core.Table = "certificates"
	Challenges      core.Table = "challenges"
	CourseMaterials core.Table = "course_materials"
	CourseResources core.Table = "course_resources"
	Courses         core.Table = "courses"
	Exercises       core.Table = "exercises"
	ForumReplies    core.Table = "forum_replies"
	ForumTopics     core.Table = "forum_topics"
	Messages        core.Table = "messages"
	Notifications   core.Table = "notifications"
	Profiles        core.Table = "profiles"
	StudentProgress core.Table = "student_progress"
	UserBadges      core.Table = "user_badges"
	UserChallenges  core.Table = "user_challenges"
)

// All lists every table identifier in lexical order.
func All() []core.Table {
	return []core.Table{
		Badges, Certificates, Challenges, CourseMaterials, CourseResources,
		Courses, Exercises, ForumReplies, ForumTopics, Messages,
		Notifications, Profiles, StudentProgress, UserBadges, UserChallenges,
	}
}

// CourseCategory is the subject area of a course.
type CourseCategory string

const (
	CategoryProgrammingFundamentals CourseCategory = "Programming Fundamentals"
	CategoryFrontendDevelopment     CourseCategory = "Frontend Development"
	CategoryBackendDevelopment      CourseCategory = "Backend Development"
	CategoryMachineLearning         CourseCategory = "Machine Learning"
	CategoryDataAnalysis            CourseCategory = "Data Analysis"
	CategoryAIApplications          CourseCategory = "AI Applications"
)

// CourseDifficulty grades a course.
type CourseDifficulty string

const (
	CourseBeginner     CourseDifficulty = "Beginner"
	CourseIntermediate CourseDifficulty = "Intermediate"
	CourseAdvanced     CourseDifficulty = "Advanced"
)

// CoursePath is the learning path a course belongs to.
type CoursePath string

const (
	PathWebDevelopment         CoursePath = "Web Development"
	PathDataScience            CoursePath = "Data Science"
	PathArtificialIntelligence CoursePath = "Artificial Intelligence"
)

// DifficultyLevel grades an exercise.
type DifficultyLevel string

const (
	LevelBeginner     DifficultyLevel = "Beginner"
	LevelIntermediate DifficultyLevel = "Intermediate"
	LevelAdvanced     DifficultyLevel = "Advanced"
)

// ExerciseStatus is the publication state of an exercise.
type ExerciseStatus string

const (
	ExerciseDraft     ExerciseStatus = "draft"
	ExercisePublished ExerciseStatus = "published"
)

// ExerciseType is the answer format of an exercise.
type ExerciseType string

const (
	ExerciseMCQ        ExerciseType = "mcq"
	ExerciseOpenEnded  ExerciseType = "open_ended"
	ExerciseCoding     ExerciseType = "coding"
	ExerciseFileUpload ExerciseType = "file_upload"
)

// UserRole is the role of a profile.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)
