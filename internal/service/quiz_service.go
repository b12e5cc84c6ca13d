package service

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizInput struct {
	Title                  string     `json:"title" binding:"required,max=255"`
	Description            string     `json:"description"`
	LessonID               *uint      `json:"lessonId"`
	TimeLimit              *int       `json:"timeLimit" binding:"omitempty,min=1"`
	MaxAttempts            int        `json:"maxAttempts" binding:"omitempty,min=1"`
	PassingScore           float64    `json:"passingScore" binding:"omitempty,min=0,max=100"`
	ShuffleQuestions       *bool      `json:"shuffleQuestions"`
	ShowResultsImmediately *bool      `json:"showResultsImmediately"`
	AvailableFrom          *time.Time `json:"availableFrom"`
	AvailableUntil         *time.Time `json:"availableUntil"`
}

type QuestionInput struct {
	Question       string          `json:"question" binding:"required"`
	Type           string          `json:"type" binding:"required,oneof=multiple_choice true_false short_answer essay"`
	Options        json.RawMessage `json:"options"`
	CorrectAnswers json.RawMessage `json:"correctAnswers" binding:"required"`
	Explanation    string          `json:"explanation"`
	Points         float64         `json:"points" binding:"omitempty,min=0"`
	OrderIndex     int             `json:"orderIndex"`
	ImageURL       string          `json:"imageUrl"`
}

type QuizService struct {
	QuizRepo       *repository.QuizRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo, CourseRepo: courseRepo, EnrollmentRepo: enrollmentRepo}
}

func (s *QuizService) courseForManage(courseID uint, caller *access.Caller) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !access.CanEditCourse(caller, course) {
		return ErrForbidden
	}
	return nil
}

func (s *QuizService) Create(courseID uint, input QuizInput, caller *access.Caller) (*model.Quiz, error) {
	if err := s.courseForManage(courseID, caller); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		CourseID:               courseID,
		LessonID:               input.LessonID,
		Title:                  input.Title,
		Description:            input.Description,
		TimeLimit:              input.TimeLimit,
		MaxAttempts:            3,
		PassingScore:           70,
		ShuffleQuestions:       true,
		ShowResultsImmediately: true,
		AvailableFrom:          input.AvailableFrom,
		AvailableUntil:         input.AvailableUntil,
	}
	if input.MaxAttempts > 0 {
		quiz.MaxAttempts = input.MaxAttempts
	}
	if input.PassingScore > 0 {
		quiz.PassingScore = input.PassingScore
	}
	if input.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *input.ShuffleQuestions
	}
	if input.ShowResultsImmediately != nil {
		quiz.ShowResultsImmediately = *input.ShowResultsImmediately
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ListByCourse(courseID uint, caller *access.Caller) ([]model.Quiz, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanViewCourse(caller, course) {
		return nil, ErrForbidden
	}
	publishedOnly := !access.CanEditCourse(caller, course)
	return s.QuizRepo.ListByCourse(courseID, publishedOnly)
}

func (s *QuizService) Get(id uint, caller *access.Caller) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(quiz.CourseID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewCourse(caller, course) {
		return nil, ErrForbidden
	}
	if !quiz.IsPublished && !access.CanEditCourse(caller, course) {
		return nil, ErrForbidden
	}
	// Students never see the answer key.
	if !access.CanGrade(caller) {
		for i := range quiz.Questions {
			quiz.Questions[i].CorrectAnswers = nil
			quiz.Questions[i].Explanation = ""
		}
	}
	return quiz, nil
}

func (s *QuizService) Update(id uint, input QuizInput, caller *access.Caller) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.courseForManage(quiz.CourseID, caller); err != nil {
		return nil, err
	}

	quiz.Title = input.Title
	quiz.Description = input.Description
	quiz.LessonID = input.LessonID
	quiz.TimeLimit = input.TimeLimit
	if input.MaxAttempts > 0 {
		quiz.MaxAttempts = input.MaxAttempts
	}
	if input.PassingScore > 0 {
		quiz.PassingScore = input.PassingScore
	}
	if input.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *input.ShuffleQuestions
	}
	if input.ShowResultsImmediately != nil {
		quiz.ShowResultsImmediately = *input.ShowResultsImmediately
	}
	quiz.AvailableFrom = input.AvailableFrom
	quiz.AvailableUntil = input.AvailableUntil
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Publish(id uint, publish bool, caller *access.Caller) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.courseForManage(quiz.CourseID, caller); err != nil {
		return nil, err
	}
	quiz.IsPublished = publish
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Delete(id uint, caller *access.Caller) error {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.courseForManage(quiz.CourseID, caller); err != nil {
		return err
	}
	return s.QuizRepo.Delete(id)
}

func (s *QuizService) AddQuestion(quizID uint, input QuestionInput, caller *access.Caller) (*model.QuizQuestion, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.courseForManage(quiz.CourseID, caller); err != nil {
		return nil, err
	}

	question := &model.QuizQuestion{
		QuizID:         quizID,
		Question:       input.Question,
		Type:           model.QuestionType(input.Type),
		Options:        datatypes.JSON(input.Options),
		CorrectAnswers: datatypes.JSON(input.CorrectAnswers),
		Explanation:    input.Explanation,
		Points:         1,
		OrderIndex:     input.OrderIndex,
		ImageURL:       input.ImageURL,
	}
	if input.Points > 0 {
		question.Points = input.Points
	}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) UpdateQuestion(questionID uint, input QuestionInput, caller *access.Caller) (*model.QuizQuestion, error) {
	question, err := s.QuizRepo.FindQuestion(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	quiz, err := s.QuizRepo.FindByID(question.QuizID)
	if err != nil {
		return nil, err
	}
	if err := s.courseForManage(quiz.CourseID, caller); err != nil {
		return nil, err
	}

	question.Question = input.Question
	question.Type = model.QuestionType(input.Type)
	question.Options = datatypes.JSON(input.Options)
	question.CorrectAnswers = datatypes.JSON(input.CorrectAnswers)
	question.Explanation = input.Explanation
	question.OrderIndex = input.OrderIndex
	question.ImageURL = input.ImageURL
	if input.Points > 0 {
		question.Points = input.Points
	}
	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) RemoveQuestion(questionID uint, caller *access.Caller) error {
	question, err := s.QuizRepo.FindQuestion(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	quiz, err := s.QuizRepo.FindByID(question.QuizID)
	if err != nil {
		return err
	}
	if err := s.courseForManage(quiz.CourseID, caller); err != nil {
		return err
	}
	return s.QuizRepo.DeleteQuestion(questionID)
}

// StartAttempt opens a new attempt for the calling student, enforcing
// enrollment, the availability window and max_attempts.
func (s *QuizService) StartAttempt(quizID uint, caller *access.Caller) (*model.QuizAttempt, error) {
	if !caller.IsStudent() {
		return nil, ErrForbidden
	}
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, ErrQuizNotAvailable
	}
	now := time.Now()
	if quiz.AvailableFrom != nil && now.Before(*quiz.AvailableFrom) {
		return nil, ErrQuizNotAvailable
	}
	if quiz.AvailableUntil != nil && now.After(*quiz.AvailableUntil) {
		return nil, ErrQuizNotAvailable
	}
	if _, err := s.EnrollmentRepo.FindByCourseAndStudent(quiz.CourseID, caller.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	// Resume an open attempt instead of burning a new one.
	if open, err := s.QuizRepo.FindOpenAttempt(quizID, caller.ID); err == nil {
		return open, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	count, err := s.QuizRepo.CountAttempts(quizID, caller.ID)
	if err != nil {
		return nil, err
	}
	if count >= int64(quiz.MaxAttempts) {
		return nil, ErrAttemptsExceeded
	}

	attempt := &model.QuizAttempt{
		QuizID:    quizID,
		StudentID: caller.ID,
		StartedAt: now,
		Status:    model.AttemptInProgress,
	}
	if err := s.QuizRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// SubmitAttempt records the answers, auto-scores the objective questions and
// closes the attempt.
func (s *QuizService) SubmitAttempt(attemptID uint, answers map[string]string, caller *access.Caller) (*model.QuizAttempt, error) {
	attempt, err := s.QuizRepo.FindAttempt(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.OwnsRecord(caller, attempt.StudentID) {
		return nil, ErrForbidden
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, ErrAttemptFinished
	}

	quiz, err := s.QuizRepo.FindWithQuestions(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	taken := int(now.Sub(attempt.StartedAt).Minutes())
	score := ScoreAttempt(quiz.Questions, answers)

	attempt.Answers = datatypes.JSON(raw)
	attempt.Score = &score
	attempt.TimeTaken = &taken
	attempt.CompletedAt = &now
	attempt.Status = model.AttemptCompleted
	if err := s.QuizRepo.UpdateAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *QuizService) ListAttempts(quizID uint, caller *access.Caller) ([]model.QuizAttempt, error) {
	if !caller.IsStudent() {
		return nil, ErrForbidden
	}
	return s.QuizRepo.ListAttemptsByStudent(quizID, caller.ID)
}

// ScoreAttempt grades the objective question types; essays stay at zero
// until a teacher reviews them. The result is a percentage of the total
// points on the quiz.
func ScoreAttempt(questions []model.QuizQuestion, answers map[string]string) float64 {
	var total, earned float64
	for _, q := range questions {
		total += q.Points
		answer, ok := answers[idKey(q.ID)]
		if !ok {
			continue
		}
		switch q.Type {
		case model.QuestionMultipleChoice, model.QuestionTrueFalse, model.QuestionShortAnswer:
			if answerMatches(q.CorrectAnswers, answer) {
				earned += q.Points
			}
		case model.QuestionEssay:
			// manual grading
		}
	}
	if total == 0 {
		return 0
	}
	return earned / total * 100
}

func idKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// answerMatches checks a submitted answer against the stored accepted
// answers, which are a JSON array of strings (option indices are stored as
// strings too). Text comparison is case-insensitive.
func answerMatches(correct []byte, answer string) bool {
	var accepted []string
	if err := json.Unmarshal(correct, &accepted); err != nil {
		return false
	}
	for _, a := range accepted {
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(answer)) {
			return true
		}
	}
	return false
}
