package tables

import (
	"time"

	"github.com/jassmeen122/techmentorai/core"
)

// Registry builds a registry holding the schema of every table.
//
// Each call returns fresh schemas, so hooks registered on one registry do not
// leak into another.
//
// Example:
//
//	c := client.New(driver, client.WithRegistry(tables.Registry()))
func Registry() *core.Registry {
	return core.NewRegistry(
		badgeSchema(),
		certificateSchema(),
		challengeSchema(),
		courseMaterialSchema(),
		courseResourceSchema(),
		courseSchema(),
		exerciseSchema(),
		forumReplySchema(),
		forumTopicSchema(),
		messageSchema(),
		notificationSchema(),
		profileSchema(),
		studentProgressSchema(),
		userBadgeSchema(),
		userChallengeSchema(),
	)
}

func badgeSchema() *core.TableSchema {
	return core.Schema[Badge](
		core.CollectionName[Badge](Badges),
		core.OverrideField(func(b *Badge) *string { return &b.ID }, core.PrimaryKey()),
		core.OverrideField(func(b *Badge) *string { return &b.Name }, core.Required()),
		core.OverrideField(func(b *Badge) *string { return &b.Description }, core.Required()),
		core.OverrideField(func(b *Badge) *string { return &b.Icon }, core.Required()),
		core.OverrideField(func(b *Badge) *int { return &b.Points }, core.Default(0)),
		core.OverrideField(func(b *Badge) *time.Time { return &b.CreatedAt }, core.CreatedAt()),
	)
}

func certificateSchema() *core.TableSchema {
	return core.Schema[Certificate](
		core.CollectionName[Certificate](Certificates),
		core.OverrideField(func(c *Certificate) *string { return &c.ID }, core.PrimaryKey()),
		core.OverrideField(func(c *Certificate) *string { return &c.UserID }, core.Required()),
		core.OverrideField(func(c *Certificate) *string { return &c.CourseID }, core.Required()),
		core.OverrideField(func(c *Certificate) *string { return &c.CertificateURL }, core.Required()),
		core.OverrideField(func(c *Certificate) *time.Time { return &c.IssuedAt }, core.CreatedAt()),
	)
}

func challengeSchema() *core.TableSchema {
	return core.Schema[Challenge](
		core.CollectionName[Challenge](Challenges),
		core.OverrideField(func(c *Challenge) *string { return &c.ID }, core.PrimaryKey()),
		core.OverrideField(func(c *Challenge) *string { return &c.Title }, core.Required()),
		core.OverrideField(func(c *Challenge) *string { return &c.Description }, core.Required()),
		core.OverrideField(func(c *Challenge) *string { return &c.Type }, core.Required()),
		core.OverrideField(func(c *Challenge) *int { return &c.Points }, core.Default(0)),
		core.OverrideField(func(c *Challenge) *time.Time { return &c.StartDate }, core.Required()),
		core.OverrideField(func(c *Challenge) *time.Time { return &c.EndDate }, core.Required()),
		core.OverrideField(func(c *Challenge) *time.Time { return &c.CreatedAt }, core.CreatedAt()),
	)
}

func courseMaterialSchema() *core.TableSchema {
	return core.Schema[CourseMaterial](
		core.CollectionName[CourseMaterial](CourseMaterials),
		core.OverrideField(func(m *CourseMaterial) *string { return &m.ID }, core.PrimaryKey()),
		core.OverrideField(func(m *CourseMaterial) *string { return &m.Title }, core.Required()),
		core.OverrideField(func(m *CourseMaterial) *string { return &m.Type }, core.Required()),
		core.OverrideField(func(m *CourseMaterial) *string { return &m.ContentURL }, core.Required()),
		core.OverrideField(func(m *CourseMaterial) *int { return &m.OrderIndex }, core.Required()),
		core.OverrideField(func(m *CourseMaterial) *time.Time { return &m.CreatedAt }, core.CreatedAt()),
	)
}

func courseResourceSchema() *core.TableSchema {
	return core.Schema[CourseResource](
		core.CollectionName[CourseResource](CourseResources),
		core.OverrideField(func(r *CourseResource) *string { return &r.ID }, core.PrimaryKey()),
		core.OverrideField(func(r *CourseResource) *string { return &r.Title }, core.Required()),
		core.OverrideField(func(r *CourseResource) *string { return &r.FileURL }, core.Required()),
		core.OverrideField(func(r *CourseResource) *int { return &r.OrderIndex }, core.Required()),
		core.OverrideField(func(r *CourseResource) **time.Time { return &r.CreatedAt }, core.CreatedAt()),
	)
}

func courseSchema() *core.TableSchema {
	return core.Schema[Course](
		core.CollectionName[Course](Courses),
		core.OverrideField(func(c *Course) *string { return &c.ID }, core.PrimaryKey()),
		core.OverrideField(func(c *Course) *string { return &c.Title }, core.Required()),
		core.OverrideField(func(c *Course) *string { return &c.TeacherID }, core.Required()),
		core.OverrideField(func(c *Course) *CourseCategory { return &c.Category },
			core.Required(),
			core.OneOf(
				CategoryProgrammingFundamentals, CategoryFrontendDevelopment, CategoryBackendDevelopment,
				CategoryMachineLearning, CategoryDataAnalysis, CategoryAIApplications,
			),
		),
		core.OverrideField(func(c *Course) *CourseDifficulty { return &c.Difficulty },
			core.Required(),
			core.OneOf(CourseBeginner, CourseIntermediate, CourseAdvanced),
		),
		core.OverrideField(func(c *Course) *CoursePath { return &c.Path },
			core.Required(),
			core.OneOf(PathWebDevelopment, PathDataScience, PathArtificialIntelligence),
		),
		core.OverrideField(func(c *Course) *time.Time { return &c.CreatedAt }, core.CreatedAt()),
		core.OverrideField(func(c *Course) *time.Time { return &c.UpdatedAt }, core.UpdatedAt()),
	)
}

func exerciseSchema() *core.TableSchema {
	return core.Schema[Exercise](
		core.CollectionName[Exercise](Exercises),
		core.OverrideField(func(e *Exercise) *string { return &e.ID }, core.PrimaryKey()),
		core.OverrideField(func(e *Exercise) *string { return &e.Title }, core.Required()),
		core.OverrideField(func(e *Exercise) *string { return &e.TeacherID }, core.Required()),
		core.OverrideField(func(e *Exercise) *DifficultyLevel { return &e.Difficulty },
			core.Default(LevelBeginner),
			core.OneOf(LevelBeginner, LevelIntermediate, LevelAdvanced),
		),
		core.OverrideField(func(e *Exercise) *ExerciseStatus { return &e.Status },
			core.Default(ExerciseDraft),
			core.OneOf(ExerciseDraft, ExercisePublished),
		),
		core.OverrideField(func(e *Exercise) *ExerciseType { return &e.Type },
			core.Required(),
			core.OneOf(ExerciseMCQ, ExerciseOpenEnded, ExerciseCoding, ExerciseFileUpload),
		),
		core.OverrideField(func(e *Exercise) *time.Time { return &e.CreatedAt }, core.CreatedAt()),
		core.OverrideField(func(e *Exercise) *time.Time { return &e.UpdatedAt }, core.UpdatedAt()),
	)
}

func forumReplySchema() *core.TableSchema {
	return core.Schema[ForumReply](
		core.CollectionName[ForumReply](ForumReplies),
		core.OverrideField(func(r *ForumReply) *string { return &r.ID }, core.PrimaryKey()),
		core.OverrideField(func(r *ForumReply) *string { return &r.TopicID }, core.Required()),
		core.OverrideField(func(r *ForumReply) *string { return &r.AuthorID }, core.Required()),
		core.OverrideField(func(r *ForumReply) *string { return &r.Content }, core.Required()),
		core.OverrideField(func(r *ForumReply) *time.Time { return &r.CreatedAt }, core.CreatedAt()),
	)
}

func forumTopicSchema() *core.TableSchema {
	return core.Schema[ForumTopic](
		core.CollectionName[ForumTopic](ForumTopics),
		core.OverrideField(func(t *ForumTopic) *string { return &t.ID }, core.PrimaryKey()),
		core.OverrideField(func(t *ForumTopic) *string { return &t.Title }, core.Required()),
		core.OverrideField(func(t *ForumTopic) *string { return &t.Content }, core.Required()),
		core.OverrideField(func(t *ForumTopic) *string { return &t.AuthorID }, core.Required()),
		core.OverrideField(func(t *ForumTopic) *time.Time { return &t.CreatedAt }, core.CreatedAt()),
	)
}

func messageSchema() *core.TableSchema {
	return core.Schema[Message](
		core.CollectionName[Message](Messages),
		core.OverrideField(func(m *Message) *string { return &m.ID }, core.PrimaryKey()),
		core.OverrideField(func(m *Message) *string { return &m.SenderID }, core.Required()),
		core.OverrideField(func(m *Message) *string { return &m.ReceiverID }, core.Required()),
		core.OverrideField(func(m *Message) *string { return &m.Content }, core.Required()),
		core.OverrideField(func(m *Message) **bool { return &m.Read }, core.Default(false)),
		core.OverrideField(func(m *Message) *time.Time { return &m.CreatedAt }, core.CreatedAt()),
	)
}

func notificationSchema() *core.TableSchema {
	return core.Schema[Notification](
		core.CollectionName[Notification](Notifications),
		core.OverrideField(func(n *Notification) *string { return &n.ID }, core.PrimaryKey()),
		core.OverrideField(func(n *Notification) *string { return &n.UserID }, core.Required()),
		core.OverrideField(func(n *Notification) *string { return &n.Title }, core.Required()),
		core.OverrideField(func(n *Notification) *string { return &n.Content }, core.Required()),
		core.OverrideField(func(n *Notification) *string { return &n.Type }, core.Required()),
		core.OverrideField(func(n *Notification) **bool { return &n.Read }, core.Default(false)),
		core.OverrideField(func(n *Notification) *time.Time { return &n.CreatedAt }, core.CreatedAt()),
	)
}

func profileSchema() *core.TableSchema {
	return core.Schema[Profile](
		core.CollectionName[Profile](Profiles),
		core.OverrideField(func(p *Profile) *string { return &p.ID }, core.PrimaryKey(), core.Required()),
		core.OverrideField(func(p *Profile) *string { return &p.Email }, core.Required()),
		core.OverrideField(func(p *Profile) *UserRole { return &p.Role },
			core.Default(RoleStudent),
			core.OneOf(RoleAdmin, RoleTeacher, RoleStudent),
		),
		core.OverrideField(func(p *Profile) *time.Time { return &p.CreatedAt }, core.CreatedAt()),
		core.OverrideField(func(p *Profile) *time.Time { return &p.UpdatedAt }, core.UpdatedAt()),
	)
}

func studentProgressSchema() *core.TableSchema {
	return core.Schema[Progress](
		core.CollectionName[Progress](StudentProgress),
		core.OverrideField(func(p *Progress) *string { return &p.ID }, core.PrimaryKey()),
		core.OverrideField(func(p *Progress) *time.Time { return &p.StartedAt }, core.CreatedAt()),
		core.OverrideField(func(p *Progress) *time.Time { return &p.LastAccessedAt }, core.UpdatedAt()),
	)
}

func userBadgeSchema() *core.TableSchema {
	return core.Schema[UserBadge](
		core.CollectionName[UserBadge](UserBadges),
		core.OverrideField(func(b *UserBadge) *string { return &b.ID }, core.PrimaryKey()),
		core.OverrideField(func(b *UserBadge) *string { return &b.UserID }, core.Required()),
		core.OverrideField(func(b *UserBadge) *string { return &b.BadgeID }, core.Required()),
		core.OverrideField(func(b *UserBadge) *time.Time { return &b.EarnedAt }, core.CreatedAt()),
	)
}

func userChallengeSchema() *core.TableSchema {
	return core.Schema[UserChallenge](
		core.CollectionName[UserChallenge](UserChallenges),
		core.OverrideField(func(c *UserChallenge) *string { return &c.ID }, core.PrimaryKey()),
		core.OverrideField(func(c *UserChallenge) *string { return &c.UserID }, core.Required()),
		core.OverrideField(func(c *UserChallenge) *string { return &c.ChallengeID }, core.Required()),
		core.OverrideField(func(c *UserChallenge) *time.Time { return &c.CreatedAt }, core.CreatedAt()),
	)
}
