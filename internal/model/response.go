package model

// SurveyResponse CSV 行在数据库中的镜像
// swagger:model
type SurveyResponse struct {
	BaseModel
	SubmissionID string `gorm:"type:varchar(36);index;comment:同一次提交的行共享" json:"submissionId"`
	Name         string `gorm:"type:varchar(255)" json:"name"`
	Gender       string `gorm:"type:varchar(64)" json:"gender"`
	Age          string `gorm:"type:varchar(16)" json:"age"`
	Experience3D string `gorm:"type:varchar(64)" json:"experience3d"`
	QuestionID   string `gorm:"type:varchar(64);index" json:"question"`
	Model        string `gorm:"type:varchar(32)" json:"model"`
	Rating       string `gorm:"type:varchar(16)" json:"rating"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

func NewSurveyResponse(submissionID string, row SubmissionRow) SurveyResponse {
	return SurveyResponse{
		SubmissionID: submissionID,
		Name:         row.Name,
		Gender:       row.Gender,
		Age:          row.Age,
		Experience3D: row.Experience,
		QuestionID:   row.QuestionID,
		Model:        row.Model,
		Rating:       row.Rating,
	}
}
