// internal/workers/skill/get-review/models.go
package getreview

import "whiskey-reviewer/internal/models"

// DramSlot is the slot carrying the spoken dram name.
const DramSlot = "dram"

// JobOutput is the completion payload of a get-review job.
type JobOutput struct {
	SkillResponse *models.ResponseEnvelope `json:"skillResponse"`
}
