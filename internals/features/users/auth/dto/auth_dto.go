package dto

// ================== REQUEST ==================

type RegisterRequest struct {
	Role            string  `json:"role" validate:"required,oneof=student tutor"`
	FirstName       string  `json:"first_name" validate:"required"`
	LastName        string  `json:"last_name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	EnrollCourseIDs []int64 `json:"enroll_course_ids"` // students
	TutorCourseIDs  []int64 `json:"tutor_course_ids"`  // tutors
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// ================== RESPONSE ==================

type UserView struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}
