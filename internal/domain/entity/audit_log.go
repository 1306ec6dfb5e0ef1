package entity

import "time"

// Действия, попадающие в журнал аудита
const (
	AuditRegister       = "REGISTER"
	AuditLogin          = "LOGIN"
	AuditStartQuiz      = "START_QUIZ"
	AuditSubmitAnswer   = "SUBMIT_ANSWER"
	AuditFinishQuiz     = "FINISH_QUIZ"
	AuditCreateCategory = "CREATE_CATEGORY"
	AuditCreateQuiz     = "CREATE_QUIZ"
	AuditAddQuestion    = "ADD_QUESTION"
	AuditAddOption      = "ADD_OPTION"
	AuditPublishQuiz    = "PUBLISH_QUIZ"
	AuditUnpublishQuiz  = "UNPUBLISH_QUIZ"
)

// Типы сущностей в журнале аудита
const (
	EntityUser     = "USER"
	EntityQuiz     = "QUIZ"
	EntityQuestion = "QUESTION"
	EntityOption   = "OPTION"
	EntityCategory = "CATEGORY"
)

// AuditLog - запись журнала аудита. Только добавляется, ядро ее не читает.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Action     string    `gorm:"size:50;not null" json:"action"`
	EntityType string    `gorm:"size:50;not null" json:"entity_type"`
	EntityID   uint      `gorm:"not null" json:"entity_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}
