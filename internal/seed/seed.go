// Package seed наполняет базу демонстрационными данными. Повторный запуск ничего не дублирует.
package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
)

// Учетные записи демо-данных
const (
	AdminEmail    = "admin@quiz.com"
	AdminPassword = "admin123"
	UserEmail     = "user@quiz.com"
	UserPassword  = "user123"
	SampleQuiz    = "JavaScript Basics"
)

type optionSeed struct {
	text    string
	correct bool
}

type questionSeed struct {
	text    string
	qType   string
	options []optionSeed
}

var sampleQuestions = []questionSeed{
	{
		text:  "What is the correct way to declare a variable in JavaScript?",
		qType: entity.QuestionTypeMCQ,
		options: []optionSeed{
			{"var myVar;", true},
			{"variable myVar;", false},
			{"v myVar;", false},
			{"declare myVar;", false},
		},
	},
	{
		text:  "JavaScript is a compiled language.",
		qType: entity.QuestionTypeTrueFalse,
		options: []optionSeed{
			{"True", false},
			{"False", true},
		},
	},
}

// Run создает администратора, тестового пользователя, две категории и опубликованную викторину
func Run(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin, err := upsertUser(tx, "Quiz Admin", AdminEmail, AdminPassword, entity.RoleAdmin)
		if err != nil {
			return err
		}
		if _, err := upsertUser(tx, "Test User", UserEmail, UserPassword, entity.RoleUser); err != nil {
			return err
		}

		jsCategory := entity.Category{Name: "JavaScript", Description: "Test your JavaScript knowledge"}
		if err := tx.Where(entity.Category{Name: jsCategory.Name}).FirstOrCreate(&jsCategory).Error; err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
		general := entity.Category{Name: "General Knowledge", Description: "General knowledge quiz"}
		if err := tx.Where(entity.Category{Name: general.Name}).FirstOrCreate(&general).Error; err != nil {
			return fmt.Errorf("seed category: %w", err)
		}

		var existing int64
		if err := tx.Model(&entity.Quiz{}).Where("title = ? AND created_by = ?", SampleQuiz, admin.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			log.Info("sample quiz already exists, skipping", "title", SampleQuiz)
			return nil
		}

		quiz := entity.Quiz{
			Title:       SampleQuiz,
			Description: "Test your basic JavaScript knowledge",
			CategoryID:  &jsCategory.ID,
			CreatedBy:   admin.ID,
			Published:   true,
		}
		if err := tx.Omit("Category", "Creator").Create(&quiz).Error; err != nil {
			return fmt.Errorf("seed quiz: %w", err)
		}
		for _, qs := range sampleQuestions {
			question := entity.Question{QuizID: quiz.ID, Text: qs.text, Type: qs.qType}
			for _, o := range qs.options {
				question.Options = append(question.Options, entity.Option{Text: o.text, IsCorrect: o.correct})
			}
			if err := tx.Create(&question).Error; err != nil {
				return fmt.Errorf("seed question: %w", err)
			}
		}
		log.Info("sample quiz created", "quiz_id", quiz.ID, "questions", len(sampleQuestions))
		return nil
	})
}

func upsertUser(tx *gorm.DB, name, email, password, role string) (*entity.User, error) {
	user := entity.User{Name: name, Email: email, Password: password, Role: role}
	if err := tx.Where(entity.User{Email: email}).FirstOrCreate(&user).Error; err != nil {
		return nil, fmt.Errorf("seed user %s: %w", email, err)
	}
	return &user, nil
}
