package student

type CreateStudentRequest struct {
	NIM          string `json:"nim" binding:"required"`
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	StudyProgram string `json:"study_program" binding:"required"`
	Semester     int    `json:"semester" binding:"required,min=1,max=14"`
}

type UpdateStudentRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	StudyProgram string `json:"study_program" binding:"required"`
	Semester     int    `json:"semester" binding:"required,min=1,max=14"`
}

type StudentResponse struct {
	ID           string `json:"id"`
	NIM          string `json:"nim"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	StudyProgram string `json:"study_program"`
	Semester     int    `json:"semester"`
	Unit         string `json:"unit"`
}
