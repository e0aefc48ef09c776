package dto

type PresignResourceRequest struct {
	Semester    string `json:"semester" validate:"required"`
	CourseID    int64  `json:"courseId" validate:"required,gt=0"`
	CourseCode  string `json:"courseCode" validate:"required,min=1,max=50"`
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=100"`
}

type PresignUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=100"`
}

type PresignResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}
