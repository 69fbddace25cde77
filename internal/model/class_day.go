package model

import "time"

// ClassDay is a scheduled date on which attendance is taken.
// At most one class day exists per date. Num is how many rows were seeded.
type ClassDay struct {
	ID        int       `json:"id"`
	Classes   string    `json:"classes"`
	Date      Date      `json:"date"`
	Num       int       `json:"num"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateClassDayRequest is the payload for opening a class day.
// Num limits seeding to the first Num registered students. Omitted seeds everyone.
type CreateClassDayRequest struct {
	Classes string `json:"classes" binding:"required,notblank,max=100"`
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
	Num     *int   `json:"num" binding:"omitempty,min=0"`
}

// ClassDayResponse mirrors the rows produced by opening a class day.
type ClassDayResponse struct {
	Class      []ClassDay         `json:"class"`
	Attendance []AttendanceRecord `json:"attendance"`
}
