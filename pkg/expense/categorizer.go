package expense

import (
	log "github.com/sirupsen/logrus"
)

type CategoryRule struct {
	Name     Category
	Keywords []string
}

type compiledRule struct {
	name    Category
	matcher keywordMatcher
}

// Categorizer maps descriptions to categories using an ordered keyword table.
// Rules are checked in order, so earlier entries take priority.
type Categorizer struct {
	rules    []compiledRule
	fallback Category
}

func NewCategorizer(rules []CategoryRule, fallback Category) *Categorizer {
	if fallback == "" {
		fallback = Other
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		compiled = append(compiled, compiledRule{name: rule.Name, matcher: newKeywordMatcher(rule.Keywords)})
	}
	return &Categorizer{rules: compiled, fallback: fallback}
}

// Categorize never fails: a description without any matching keyword gets the fallback category.
func (c *Categorizer) Categorize(description string) Category {
	words := tokenize(description)
	for _, rule := range c.rules {
		if kw, ok := rule.matcher.match(words); ok {
			log.Debugf("categorized %q as %s (keyword %q)", description, rule.name, kw)
			return rule.name
		}
	}
	return c.fallback
}

// Categories lists every category the categorizer can return, in priority order.
func (c *Categorizer) Categories() []Category {
	categories := make([]Category, 0, len(c.rules)+1)
	seen := make(map[Category]bool, len(c.rules)+1)
	for _, rule := range c.rules {
		if !seen[rule.name] {
			seen[rule.name] = true
			categories = append(categories, rule.name)
		}
	}
	if !seen[c.fallback] {
		categories = append(categories, c.fallback)
	}
	return categories
}

// DefaultCategoryRules is the built-in keyword table used when the configuration has none.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			Name: Food,
			Keywords: []string{
				"phở", "pho", "cơm", "com", "bún", "bun", "miến", "hủ tiếu", "mì", "bánh", "banh", "xôi", "xoi",
				"cháo", "chao", "súp", "lẩu", "nướng", "gà", "thịt", "cá", "tôm", "trứng", "rau", "trái cây",
				"hoa quả", "đồ ăn", "do an", "ăn sáng", "ăn trưa", "ăn tối", "an sang", "an trua", "an toi",
				"cà phê", "ca phe", "cafe", "café", "cf", "trà đá", "tra da", "trà chanh", "nước", "nuoc",
				"sinh tố", "kem", "kẹo", "snack", "đi chợ", "chợ", "siêu thị",
			},
		},
		{
			Name: Transport,
			Keywords: []string{
				"xăng", "xang", "xe", "xe ôm", "grab*", "be", "gojek", "uber", "taxi", "gửi xe", "gui xe",
				"vé xe", "vé tàu", "tàu", "máy bay", "may bay", "bus", "buýt", "buyt", "sửa xe", "rửa xe",
				"thay nhớt", "ship", "giao hàng", "giao hang",
			},
		},
		{
			Name: Education,
			Keywords: []string{
				"sách", "sach", "vở", "bút", "học", "hoc", "học phí", "hoc phi", "khóa học", "khoa hoc",
				"tài liệu", "tai lieu", "giáo trình", "photo", "photocopy", "mực", "thước", "compa",
				"máy tính", "may tinh", "calculator", "đăng ký", "dang ky",
			},
		},
	}
}
