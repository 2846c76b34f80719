package dto

import (
	"time"

	model "todaygenda.com/todaygenda/internal/models"
)

type DaylistResponse struct {
	ID           uint       `json:"id"`
	Expiry       time.Time  `json:"expiry"`
	PendingTasks []TaskItem `json:"pending_tasks"`
	DoneTasks    []TaskItem `json:"done_tasks"`
}

type AgendaItem struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AgendaResponse struct {
	Timeline   []AgendaItem `json:"timeline"`
	Finish     time.Time    `json:"finish"`
	PastExpiry bool         `json:"past_expiry"`
	Expiry     time.Time    `json:"expiry"`
}

func NewDaylistResponse(list *model.Daylist) DaylistResponse {
	return DaylistResponse{
		ID:           list.ID,
		Expiry:       list.Expiry,
		PendingTasks: NewTaskItems(list.Pending),
		DoneTasks:    NewTaskItems(list.Done),
	}
}

func NewAgendaResponse(agenda model.Agenda) AgendaResponse {
	timeline := make([]AgendaItem, 0, len(agenda.Timeline))
	for _, item := range agenda.Timeline {
		timeline = append(timeline, AgendaItem{Title: item.Title, Start: item.Start, End: item.End})
	}

	return AgendaResponse{
		Timeline:   timeline,
		Finish:     agenda.Finish,
		PastExpiry: agenda.PastExpiry,
		Expiry:     agenda.Expiry,
	}
}
