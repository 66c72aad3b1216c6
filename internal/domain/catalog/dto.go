package catalog

// MissionRequest for POST/PUT /catalog/missions
type MissionRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	PointsReward int    `json:"points_reward" validate:"required,gt=0"`
	Active       *bool  `json:"active"`
}

// RewardRequest for POST/PUT /catalog/rewards
type RewardRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"max=100"`
	PointCost   int    `json:"point_cost" validate:"required,gt=0"`
	Active      *bool  `json:"active"`
}

// ChecklistItemRequest for POST/PUT /catalog/checklist-items.
// An empty target_member_id makes the item common to all members.
type ChecklistItemRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=500"`
	TargetMemberID  string `json:"target_member_id,omitempty" validate:"omitempty,uuid"`
	DeductionPoints int    `json:"deduction_points" validate:"required,gt=0"`
	Active          *bool  `json:"active"`
}

func activeOrDefault(active *bool) bool {
	if active == nil {
		return true
	}
	return *active
}
