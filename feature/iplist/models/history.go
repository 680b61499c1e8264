package models

import (
	"time"
)

// Run is one recorded reconciliation run.
type Run struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RunID      string    `gorm:"column:run_id;type:varchar(36);uniqueIndex;not null" json:"run_id"`
	StartedAt  time.Time `gorm:"column:started_at;type:datetime;not null" json:"started_at"`
	FinishedAt time.Time `gorm:"column:finished_at;type:datetime" json:"finished_at"`
	Source     string    `gorm:"column:source;type:varchar(32)" json:"source"` // cli, api
	DryRun     bool      `gorm:"column:dry_run" json:"dry_run"`
	Applied    bool      `gorm:"column:applied" json:"applied"`
	Published  string    `gorm:"column:published;type:varchar(255)" json:"published,omitempty"`

	FlowRows   int `gorm:"column:flow_rows" json:"flow_rows"`
	FlowsKept  int `gorm:"column:flows_kept" json:"flows_kept"`
	Lists      int `gorm:"column:lists" json:"lists"`
	Creates    int `gorm:"column:creates" json:"creates"`
	Updates    int `gorm:"column:updates" json:"updates"`
	Refreshes  int `gorm:"column:refreshes" json:"refreshes"`
	Reassigned int `gorm:"column:reassigned" json:"reassigned"`
	KeptDNS    int `gorm:"column:kept_dns" json:"kept_dns"`
	KeptFlow   int `gorm:"column:kept_flow" json:"kept_flow"`
	Stale      int `gorm:"column:stale" json:"stale"`
	Duplicates int `gorm:"column:duplicates" json:"duplicates"`

	Events []RunEvent `gorm:"foreignKey:RunID;references:RunID" json:"events,omitempty"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "iplist_runs"
}

// RunEvent is one change event of a recorded run, in plan order.
type RunEvent struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RunID    string `gorm:"column:run_id;type:varchar(36);index;not null" json:"-"`
	Seq      int    `gorm:"column:seq;not null" json:"seq"`
	Kind     string `gorm:"column:kind;type:varchar(16);not null" json:"kind"`
	ListName string `gorm:"column:list_name;type:varchar(255)" json:"list_name"`
	Payload  string `gorm:"column:payload;type:text" json:"payload"` // JSON encoded event
}

// TableName overrides the table name.
func (RunEvent) TableName() string {
	return "iplist_run_events"
}

// All returns every history model, in migration order.
func All() []interface{} {
	return []interface{}{Run{}, RunEvent{}}
}
