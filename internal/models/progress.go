package models

type PatternStat struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

type Progress struct {
	TotalScore      int                         `json:"totalScore"`
	GamesPlayed     int                         `json:"gamesPlayed"`
	CorrectAnswers  int                         `json:"correctAnswers"`
	SuccessRate     float64                     `json:"successRate"` // percentage
	AverageAttempts float64                     `json:"averageAttempts"`
	PatternStats    map[PatternType]PatternStat `json:"patternStats"`
	Recommendation  string                      `json:"recommendation"`
}
