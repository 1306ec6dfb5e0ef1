// Package testdb поднимает in-memory SQLite с той же схемой, что и в PostgreSQL,
// включая частичный уникальный индекс активных попыток.
package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/pkg/database"
)

var seq atomic.Int64

// New открывает отдельную базу на каждый вызов. Одно соединение: SQLite
// сериализует транзакции, как и блокировки строк в PostgreSQL.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared&_busy_timeout=5000", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// QuestionSpec описывает вопрос фикстуры: варианты и индекс правильного (-1 - без правильного)
type QuestionSpec struct {
	Text    string
	Type    string
	Options []string
	Correct int
}

// CreateUser создает пользователя с заданной ролью
func CreateUser(t testing.TB, db *gorm.DB, email, role string) *entity.User {
	t.Helper()
	user := &entity.User{Name: "User " + email, Email: email, Password: "secret123", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateQuiz создает викторину с вопросами и вариантами
func CreateQuiz(t testing.TB, db *gorm.DB, creatorID uint, title string, published bool, questions ...QuestionSpec) *entity.Quiz {
	t.Helper()
	quiz := &entity.Quiz{Title: title, CreatedBy: creatorID, Published: published}
	require.NoError(t, db.Create(quiz).Error)

	for _, qs := range questions {
		qType := qs.Type
		if qType == "" {
			qType = entity.QuestionTypeMCQ
		}
		question := entity.Question{QuizID: quiz.ID, Text: qs.Text, Type: qType}
		for i, text := range qs.Options {
			question.Options = append(question.Options, entity.Option{Text: text, IsCorrect: i == qs.Correct})
		}
		require.NoError(t, db.Create(&question).Error)
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz
}

// JSBasics - сценарная викторина: Q1 с 4 вариантами (A верный), Q2 True/False (False верный)
func JSBasics(t testing.TB, db *gorm.DB, creatorID uint) *entity.Quiz {
	return CreateQuiz(t, db, creatorID, "JS Basics", true,
		QuestionSpec{Text: "Which keyword declares a block-scoped constant?", Options: []string{"A", "B", "C", "D"}, Correct: 0},
		QuestionSpec{Text: "typeof null === 'null'", Type: entity.QuestionTypeTrueFalse, Options: []string{"True", "False"}, Correct: 1},
	)
}
