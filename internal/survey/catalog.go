package survey

import (
	"fmt"
	"os"
	"strings"

	"github.com/kaanoztekin99/3d-object-generation/internal/model"
	"github.com/kaanoztekin99/3d-object-generation/internal/util"
	"gopkg.in/yaml.v3"
)

// Catalog 进程启动时确定的题目列表, 之后只读
type Catalog struct {
	Questions []model.Question `yaml:"questions" json:"questions"`
}

// DefaultCatalog 未配置题目文件时使用
func DefaultCatalog() *Catalog {
	return &Catalog{
		Questions: []model.Question{
			{
				ID:    "q1",
				Text:  "How closely does each model match the reference image?",
				ItemA: "assets/models/midi3d_lib_table.glb",
				ItemB: "assets/models/partCrafter_lib_table.glb",
				Image: "assets/images/lib_table.png",
			},
		},
	}
}

// LoadCatalog 读取 YAML 题目文件; path 为空时返回默认题目
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate id 必须非空、唯一且不含分隔符, 两个模型都必须给出
func (c *Catalog) Validate() error {
	if len(c.Questions) == 0 {
		return util.ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(c.Questions))
	for i, q := range c.Questions {
		switch {
		case q.ID == "":
			return fmt.Errorf("%w: question %d has no id", util.ErrInvalidQuestion, i)
		case strings.Contains(q.ID, model.RatingFieldSeparator):
			return fmt.Errorf("%w: id %q contains %q", util.ErrInvalidQuestion, q.ID, model.RatingFieldSeparator)
		case q.ItemA == "" || q.ItemB == "":
			return fmt.Errorf("%w: %s needs two models", util.ErrInvalidQuestion, q.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: %s", util.ErrDuplicateQuestion, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

func (c *Catalog) Lookup(id string) (model.Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return model.Question{}, false
}

func (c *Catalog) Len() int {
	return len(c.Questions)
}
