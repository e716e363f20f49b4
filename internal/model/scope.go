package model

// Scope carries the authenticated caller identity through usecases.
type Scope struct {
	UserID string
	Email  string
	Role   string
}
