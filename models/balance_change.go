package models

// ChangeReason describes why a balance changed
type ChangeReason string

const (
	ChangeReasonDaily       ChangeReason = "daily"
	ChangeReasonBetWin      ChangeReason = "bet_win"
	ChangeReasonBetLoss     ChangeReason = "bet_loss"
	ChangeReasonAdminAdd    ChangeReason = "admin_add"
	ChangeReasonAdminDeduct ChangeReason = "admin_deduct"
)
