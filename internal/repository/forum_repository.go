package repository

import (
	"time"

	"science_lms_backend/internal/model"

	"gorm.io/gorm"
)

type ForumRepository struct {
	DB *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{DB: db}
}

func (r *ForumRepository) Create(forum *model.DiscussionForum) error {
	return r.DB.Create(forum).Error
}

func (r *ForumRepository) FindByID(id uint) (*model.DiscussionForum, error) {
	var forum model.DiscussionForum
	err := r.DB.Preload("Creator").First(&forum, id).Error
	return &forum, err
}

func (r *ForumRepository) ListByCourse(courseID uint) ([]model.DiscussionForum, error) {
	var forums []model.DiscussionForum
	err := r.DB.
		Where("course_id = ?", courseID).
		Order("is_pinned DESC, last_activity DESC").
		Find(&forums).Error
	return forums, err
}

func (r *ForumRepository) Update(forum *model.DiscussionForum) error {
	return r.DB.Save(forum).Error
}

// ListThreads returns a forum's top-level posts with one level of replies
// eagerly attached; deeper nesting is fetched per post by the client.
func (r *ForumRepository) ListThreads(forumID uint) ([]model.ForumPost, error) {
	var posts []model.ForumPost
	err := r.DB.
		Where("forum_id = ?", forumID).
		Scopes(TopLevel).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Preload("Replies.User").
		Order("is_pinned DESC, created_at").
		Find(&posts).Error
	return posts, err
}

func (r *ForumRepository) ListReplies(parentID uint) ([]model.ForumPost, error) {
	var posts []model.ForumPost
	err := r.DB.
		Where("parent_id = ?", parentID).
		Preload("User").
		Order("created_at").
		Find(&posts).Error
	return posts, err
}

// CreatePost inserts the post and bumps the forum's counter cache and
// last_activity in the same transaction.
func (r *ForumRepository) CreatePost(post *model.ForumPost) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&model.DiscussionForum{}).
			Where("id = ?", post.ForumID).
			Updates(map[string]interface{}{
				"posts_count":   gorm.Expr("posts_count + 1"),
				"last_activity": time.Now(),
			}).Error
	})
}

func (r *ForumRepository) FindPost(id uint) (*model.ForumPost, error) {
	var post model.ForumPost
	err := r.DB.First(&post, id).Error
	return &post, err
}

func (r *ForumRepository) UpdatePost(post *model.ForumPost) error {
	return r.DB.Save(post).Error
}
