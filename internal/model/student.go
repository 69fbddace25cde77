package model

import "time"

// Student represents a registered student on the roster.
type Student struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	UID       *string   `json:"uid"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateStudentRequest is the payload for registering a student.
type CreateStudentRequest struct {
	Name string  `json:"name" binding:"required,notblank,max=100"`
	UID  *string `json:"uid" binding:"omitempty,max=64"`
}
