package dto

type ImportRowErrorDTO struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResultDTO struct {
	Created  int                 `json:"created"`
	Skipped  int                 `json:"skipped"`
	Errors   []ImportRowErrorDTO `json:"errors"`
	Duration string              `json:"duration"`
}
