package repository

import (
	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) CodeTaken(code string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Course{}).Where("code = ?", code)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// List returns one page of courses visible to the caller, newest first.
// Teachers and admins get the teacher association preloaded the same way the
// catalog page expects it.
func (r *CourseRepository) List(caller *access.Caller, page, pageSize int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{}).Scopes(CourseVisibility(caller))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Teacher").
		Preload("Enrollments").
		Preload("Lessons").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&courses).Error
	return courses, total, err
}

// FindDetail loads a course with the nested collections the detail page
// shows. Lessons, quizzes and assignments come back published-only for every
// role; forums are attached whole.
func (r *CourseRepository) FindDetail(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Teacher").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(PublishedItems).Order("order_index")
		}).
		Preload("Quizzes", PublishedItems).
		Preload("Assignments", PublishedItems).
		Preload("Forums").
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindOwned(teacherID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Where("teacher_id = ?", teacherID).
		Preload("Enrollments.Student").
		Preload("Lessons").
		Preload("Quizzes").
		Preload("Assignments").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindRecent(limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Teacher").Order("created_at DESC").Limit(limit).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindFeatured(limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Scopes(Published).Preload("Teacher").Limit(limit).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// DeleteCascade removes the course and every row rooted at it, mirroring the
// foreign-key cascade graph inside one transaction.
func (r *CourseRepository) DeleteCascade(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return DeleteCourseTx(tx, id)
	})
}

// DeleteCourseTx is shared with user deletion, which cascades through a
// teacher's courses in its own transaction.
func DeleteCourseTx(tx *gorm.DB, courseID uint) error {
	var quizIDs []uint
	if err := tx.Model(&model.Quiz{}).Where("course_id = ?", courseID).Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	if len(quizIDs) > 0 {
		if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
	}

	var assignmentIDs []uint
	if err := tx.Model(&model.Assignment{}).Where("course_id = ?", courseID).Pluck("id", &assignmentIDs).Error; err != nil {
		return err
	}
	if len(assignmentIDs) > 0 {
		if err := tx.Where("assignment_id IN ?", assignmentIDs).Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
	}

	var forumIDs []uint
	if err := tx.Model(&model.DiscussionForum{}).Where("course_id = ?", courseID).Pluck("id", &forumIDs).Error; err != nil {
		return err
	}
	if len(forumIDs) > 0 {
		if err := tx.Where("forum_id IN ?", forumIDs).Delete(&model.ForumPost{}).Error; err != nil {
			return err
		}
	}

	for _, m := range []interface{}{
		&model.Quiz{}, &model.Assignment{}, &model.DiscussionForum{},
		&model.Lesson{}, &model.CourseEnrollment{}, &model.StudentProgress{},
	} {
		if err := tx.Where("course_id = ?", courseID).Delete(m).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&model.Course{}, courseID).Error
}
