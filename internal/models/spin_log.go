package models

// SpinLog 转轮审计日志（只追加，用于审计与回放）
type SpinLog struct {
	BaseModel
	TraceID  string  `gorm:"size:64;index" json:"trace_id"`
	UserID   uint    `gorm:"index;not null" json:"user_id"`
	GameID   string  `gorm:"index;size:100;not null" json:"game_id"`
	Event    string  `gorm:"size:20;not null" json:"event"` // bet, freespin, respin, gamble
	BetTotal float64 `json:"bet_total"`
	Lines    int     `json:"lines"`
	Win      float64 `json:"win"`
	Request  string  `gorm:"type:text" json:"request"`
	Response string  `gorm:"type:text" json:"response"`
}
