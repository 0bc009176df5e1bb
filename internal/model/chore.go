package model

type Chore struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  Timestamp `json:"createdAt"`
	Order      int       `json:"order"`
	Category   string    `json:"category"`
	XP         int       `json:"xp"`
	EstMinutes int       `json:"estMinutes"`
}

type ChoreLog struct {
	ID        string    `json:"id"`
	ChoreID   string    `json:"choreId"`
	MemberID  string    `json:"memberId"`
	Timestamp Timestamp `json:"timestamp"`
	IsManual  bool      `json:"isManual,omitempty"`
}

// DistributionItem is a display-ready slice of a per-member breakdown.
type DistributionItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
	ID    string `json:"id"`
}
