package survey

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/kaanoztekin99/3d-object-generation/internal/model"
)

// Side 页面一侧显示的模型及其标签
type Side struct {
	Item  string
	Label model.ModelLabel
	Field string
}

// Assignment 一次页面渲染中某道题的左右分配.
// Swap 为 false 时 ItemA 在左并标为 "Model A", 否则 ItemB 在左并标为 "Model B".
type Assignment struct {
	Question model.Question
	Swap     bool
}

func (a Assignment) Left() Side {
	if a.Swap {
		return a.side(a.Question.ItemB, model.LabelB)
	}
	return a.side(a.Question.ItemA, model.LabelA)
}

func (a Assignment) Right() Side {
	if a.Swap {
		return a.side(a.Question.ItemA, model.LabelA)
	}
	return a.side(a.Question.ItemB, model.LabelB)
}

func (a Assignment) side(item string, label model.ModelLabel) Side {
	return Side{Item: item, Label: label, Field: RatingField(a.Question.ID, label)}
}

// RatingField 评分单选组的字段名
func RatingField(questionID string, label model.ModelLabel) string {
	return questionID + model.RatingFieldSeparator + string(label)
}

// Randomizer 为每道题独立抽取一次 swap
type Randomizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomizer src 为 nil 时使用时间种子
func NewRandomizer(src rand.Source) *Randomizer {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1|1)
	}
	return &Randomizer{rng: rand.New(src)}
}

// Assign 每次调用都重新抽取, 结果只在本次渲染内有效
func (r *Randomizer) Assign(c *Catalog) []Assignment {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Assignment, len(c.Questions))
	for i, q := range c.Questions {
		out[i] = Assignment{Question: q, Swap: r.rng.IntN(2) == 1}
	}
	return out
}
