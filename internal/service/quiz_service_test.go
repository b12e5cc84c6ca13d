package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"science_lms_backend/internal/model"
)

func question(id uint, qt model.QuestionType, points float64, accepted string) model.QuizQuestion {
	return model.QuizQuestion{
		BaseModel:      model.BaseModel{ID: id},
		Type:           qt,
		Points:         points,
		CorrectAnswers: datatypes.JSON(accepted),
	}
}

func TestScoreAttempt(t *testing.T) {
	questions := []model.QuizQuestion{
		question(1, model.QuestionMultipleChoice, 2, `["1"]`),
		question(2, model.QuestionTrueFalse, 1, `["true"]`),
		question(3, model.QuestionShortAnswer, 2, `["photosynthesis","photo synthesis"]`),
		question(4, model.QuestionEssay, 5, `[]`),
	}

	tests := []struct {
		name    string
		answers map[string]string
		want    float64
	}{
		{
			name: "all objective answers correct",
			answers: map[string]string{
				"1": "1",
				"2": "true",
				"3": "photosynthesis",
				"4": "cells use sunlight",
			},
			want: 50, // 5 of 10 points, essay not auto-graded
		},
		{
			name: "short answer matches case-insensitively",
			answers: map[string]string{
				"3": "  Photo Synthesis ",
			},
			want: 20,
		},
		{
			name: "wrong choice earns nothing",
			answers: map[string]string{
				"1": "2",
				"2": "false",
			},
			want: 0,
		},
		{
			name:    "no answers",
			answers: map[string]string{},
			want:    0,
		},
		{
			name: "unknown question ids are ignored",
			answers: map[string]string{
				"99": "1",
				"2":  "true",
			},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAttempt(questions, tt.answers)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestScoreAttemptNoQuestions(t *testing.T) {
	assert.Equal(t, float64(0), ScoreAttempt(nil, map[string]string{"1": "1"}))
}

func TestAnswerMatches(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		answer  string
		matches bool
	}{
		{"exact option index", `["2"]`, "2", true},
		{"text ignoring case", `["Mitochondria"]`, "mitochondria", true},
		{"surrounding whitespace", `["osmosis"]`, " osmosis ", true},
		{"any accepted variant", `["H2O","water"]`, "water", true},
		{"wrong answer", `["true"]`, "false", false},
		{"malformed stored json", `{"a":1}`, "a", false},
		{"empty accepted list", `[]`, "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, answerMatches([]byte(tt.stored), tt.answer))
		})
	}
}
