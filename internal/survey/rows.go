package survey

import (
	"net/url"
	"sort"
	"strings"

	"github.com/kaanoztekin99/3d-object-generation/internal/model"
)

var demographicFields = map[string]bool{
	model.FieldName:       true,
	model.FieldGender:     true,
	model.FieldAge:        true,
	model.FieldExperience: true,
}

// IsDemographicField 人口统计字段不会变成数据行
func IsDemographicField(name string) bool {
	return demographicFields[name]
}

// ParseRatingField 按第一个分隔符拆分 "{questionId}_{modelLabel}", 任一部分为空时 ok 为 false
func ParseRatingField(name string) (questionID, label string, ok bool) {
	questionID, label, found := strings.Cut(name, model.RatingFieldSeparator)
	if !found || questionID == "" || label == "" {
		return "", "", false
	}
	return questionID, label, true
}

// DemographicsFrom 从表单中取出参与者信息
func DemographicsFrom(fields url.Values) model.Demographics {
	return model.Demographics{
		Name:       strings.TrimSpace(fields.Get(model.FieldName)),
		Gender:     fields.Get(model.FieldGender),
		Age:        strings.TrimSpace(fields.Get(model.FieldAge)),
		Experience: fields.Get(model.FieldExperience),
	}
}

// BuildRows 每个合法的评分字段产出一行, 格式不对的字段直接丢弃.
// 行按字段名排序, 同样的表单总是得到同样的顺序.
func BuildRows(fields url.Values) []model.SubmissionRow {
	demo := DemographicsFrom(fields)

	names := make([]string, 0, len(fields))
	for name := range fields {
		if IsDemographicField(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]model.SubmissionRow, 0, len(names))
	for _, name := range names {
		questionID, label, ok := ParseRatingField(name)
		if !ok {
			continue
		}
		rows = append(rows, model.SubmissionRow{
			Demographics: demo,
			QuestionID:   questionID,
			Model:        label,
			Rating:       fields.Get(name),
		})
	}
	return rows
}

// Records 转换为提交给 /save 的定长元组
func Records(rows []model.SubmissionRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Record()
	}
	return out
}
