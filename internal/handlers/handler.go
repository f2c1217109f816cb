package handlers

import (
	"github.com/ascendapp/ascend-api/internal/achievements"
	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/ascendapp/ascend-api/internal/report"
	"github.com/ascendapp/ascend-api/internal/services"
	"github.com/ascendapp/ascend-api/internal/tasks"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler carries the shared dependencies for every route. Everything is
// injected at construction; there is no package-level state.
type Handler struct {
	DB           *gorm.DB
	Notifier     *services.Notifier
	Tasks        *tasks.Queue
	Achievements *achievements.Service
	Resolver     report.NeedResolver
}

func New(db *gorm.DB, notifier *services.Notifier, queue *tasks.Queue) *Handler {
	return &Handler{
		DB:           db,
		Notifier:     notifier,
		Tasks:        queue,
		Achievements: achievements.NewService(db),
		Resolver:     report.SubstringResolver{},
	}
}

// questionLookup resolves a (needKey, category) pair to the active catalog
// question id. needKey alone is never enough — it is only unique within a
// category.
func (h *Handler) questionLookup() report.QuestionLookup {
	return func(needKey, category string) *uuid.UUID {
		var q models.Question
		err := h.DB.Select("id").
			Where("need_key = ? AND category = ? AND is_active = ?", needKey, category, true).
			Order("need_order ASC, created_at ASC").
			First(&q).Error
		if err != nil {
			return nil
		}
		id := q.ID
		return &id
	}
}
