package dto

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Role      *string `json:"role" validate:"omitempty,oneof=student tutor"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type ReplaceCoursesRequest struct {
	CourseIDs []int64 `json:"course_ids" validate:"required,max=50,dive,gt=0"`
}
