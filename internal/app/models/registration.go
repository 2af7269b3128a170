package models

import "fmt"

// DefaultRegisteredCount is the student count before any number is issued
const DefaultRegisteredCount = 1240

// RegistrationNumber formats a student registration number
func RegistrationNumber(year, n int) string {
	return fmt.Sprintf("QMC/REG/%d/%d", year, n)
}

// RegistrationState is the registration counter with its history
type RegistrationState struct {
	Count   int      `json:"count"`
	LastID  string   `json:"lastId"`
	History []string `json:"history"`
}
