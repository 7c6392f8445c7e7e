package questqueue

import (
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
)

// QuestSyncJob carries a quest snapshot to the background sync worker.
// Deleted jobs render the terminal view from the snapshot alone; the record
// may already be purged by the time the job runs.
type QuestSyncJob struct {
	Quest   questtypes.Quest `json:"quest"`
	Deleted bool             `json:"deleted"`
}

// Kind returns the job type identifier for River.
func (QuestSyncJob) Kind() string { return "quest_sync" }
