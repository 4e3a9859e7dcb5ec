package models

// Session is the local proof that a guest has been verified on this device,
// paired with a snapshot of their record taken at login time
type Session struct {
	Token string      `json:"token"`
	Guest GuestRecord `json:"guest"`
}
