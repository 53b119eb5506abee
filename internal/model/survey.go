package model

// Question 一道对比题: 两个待评分的 3D 模型和一张参考图
// swagger:model
type Question struct {
	ID    string `yaml:"id" json:"id"`
	Text  string `yaml:"text" json:"text"`
	ItemA string `yaml:"item_a" json:"itemA"`
	ItemB string `yaml:"item_b" json:"itemB"`
	Image string `yaml:"image" json:"image"`
}

// ModelLabel 页面上显示的模型标签, 同时是评分字段名的后缀
type ModelLabel string

const (
	LabelA ModelLabel = "Model A"
	LabelB ModelLabel = "Model B"
)

// 人口统计字段在表单中的名称
const (
	FieldName       = "name"
	FieldGender     = "gender"
	FieldAge        = "age"
	FieldExperience = "experience"
)

// RatingFieldSeparator 评分字段名 "{questionId}_{modelLabel}"
const RatingFieldSeparator = "_"

// CSVHeader 结果文件表头, 顺序与 SubmissionRow.Record 一致
var CSVHeader = []string{"Name", "Gender", "Age", "Experience3D", "Question", "Model", "Rating"}

// RowArity 每行固定字段数
const RowArity = 7

// Demographics 一次提交中所有行共享的参与者信息
type Demographics struct {
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        string `json:"age"`
	Experience string `json:"experience"`
}

// SubmissionRow 一条 (参与者, 题目, 模型, 评分) 记录
type SubmissionRow struct {
	Demographics
	QuestionID string `json:"question"`
	Model      string `json:"model"`
	Rating     string `json:"rating"`
}

// Record 按表头顺序展开
func (r SubmissionRow) Record() []string {
	return []string{r.Name, r.Gender, r.Age, r.Experience, r.QuestionID, r.Model, r.Rating}
}

// RowFromRecord 是 Record 的逆操作, 调用方负责检查长度
func RowFromRecord(rec []string) SubmissionRow {
	return SubmissionRow{
		Demographics: Demographics{
			Name:       rec[0],
			Gender:     rec[1],
			Age:        rec[2],
			Experience: rec[3],
		},
		QuestionID: rec[4],
		Model:      rec[5],
		Rating:     rec[6],
	}
}
