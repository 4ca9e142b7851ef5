package model

import "time"

type User struct {
	Username string `json:"username"`
}

type Session struct {
	LoggedIn bool  `json:"loggedIn"`
	User     *User `json:"user"`
}

type HistoryAction string

const (
	ActionLogin  HistoryAction = "login"
	ActionLogout HistoryAction = "logout"
	ActionLoad   HistoryAction = "load"
	ActionAdd    HistoryAction = "add"
	ActionUpdate HistoryAction = "update"
	ActionDelete HistoryAction = "delete"
	ActionCycle  HistoryAction = "cycle"
)

// HistoryEntry records one user action. Entries live in memory only.
type HistoryEntry struct {
	ID     string        `json:"id"`
	Action HistoryAction `json:"action"`
	TaskID int64         `json:"taskId,omitempty"`
	At     time.Time     `json:"at"`
}
