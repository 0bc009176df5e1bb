package model

type Member struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	JoinedAt Timestamp `json:"joinedAt"`
}
