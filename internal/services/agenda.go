package services

import (
	"time"

	model "todaygenda.com/todaygenda/internal/models"
)

// BuildAgenda lays the pending tasks end to end starting at now, truncated to
// the minute.
func BuildAgenda(list *model.Daylist, now time.Time) model.Agenda {
	cursor := now.Truncate(time.Minute)

	timeline := make([]model.AgendaItem, 0, len(list.Pending))
	for _, task := range list.Pending {
		end := cursor.Add(task.Estimate)
		timeline = append(timeline, model.AgendaItem{
			TaskID: task.ID,
			Title:  task.Title,
			Start:  cursor,
			End:    end,
		})
		cursor = end
	}

	return model.Agenda{
		Timeline:   timeline,
		Finish:     cursor,
		PastExpiry: cursor.After(list.Expiry),
		Expiry:     list.Expiry,
	}
}
