package entity

import "time"

// Períodos canônicos de uma tarefa. A entrada do usuário chega em português
// (manha/tarde/noite) e é normalizada antes de persistir.
const (
	TaskPeriodMorning   = "morning"
	TaskPeriodAfternoon = "afternoon"
	TaskPeriodEvening   = "evening"
)

// Prioridades de tarefa.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// Task representa uma tarefa operacional do dia (abertura, compras, ligações etc.).
type Task struct {
	ID        string
	UserID    string
	UnitID    *string
	Title     string
	Date      time.Time
	Period    string // morning | afternoon | evening
	Priority  string // low | medium | high | urgent
	Notes     *string
	DueTime   *string // "HH:MM", opcional
	Done      bool
	CreatedAt time.Time
}
