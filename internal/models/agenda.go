package model

import "time"

type AgendaItem struct {
	TaskID uint
	Title  string
	Start  time.Time
	End    time.Time
}

// Agenda is a projection of when each pending task will run. It is derived on
// demand and never stored.
type Agenda struct {
	Timeline   []AgendaItem
	Finish     time.Time
	PastExpiry bool
	Expiry     time.Time
}
