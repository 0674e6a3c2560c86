package expense

import (
	log "github.com/sirupsen/logrus"
)

// WasteDetector flags impulse spending. It is independent of the Categorizer.
type WasteDetector struct {
	matcher  keywordMatcher
	warnings []string
}

func NewWasteDetector(keywords []string, warnings []string) *WasteDetector {
	return &WasteDetector{matcher: newKeywordMatcher(keywords), warnings: warnings}
}

func (d *WasteDetector) IsWasteful(description string) bool {
	kw, ok := d.matcher.match(tokenize(description))
	if ok {
		log.Debugf("wasteful keyword %q found in %q", kw, description)
	}
	return ok
}

// Warning returns one of the configured scolding messages. pick receives the number of
// messages and returns the index to use.
func (d *WasteDetector) Warning(pick func(n int) int) string {
	if len(d.warnings) == 0 {
		return ""
	}
	i := pick(len(d.warnings))
	if i < 0 || i >= len(d.warnings) {
		i = 0
	}
	return d.warnings[i]
}

func DefaultWasteKeywords() []string {
	return []string{
		"game*", "nạp game", "nap game", "nạp thẻ", "thẻ game", "the game", "top up", "topup", "skin",
		"gacha", "pubg", "lol", "liên quân", "lien quan", "mobile legend*", "genshin", "gift code",
		"trà sữa", "tra sua", "toco", "mixue", "phim", "netflix", "spotify", "youtube premium",
		"premium", "vip", "đồ chơi", "do choi", "mô hình", "mo hinh", "nhậu", "bia",
	}
}

func DefaultWasteWarnings() []string {
	return []string{
		"Tiền không phải lá mít đâu nhé! 💸",
		"Lại tốn tiền vào cái này rồi, chán thanh niên! 😒",
		"Bớt bớt lại đi, cuối tháng ăn mì gói bây giờ! 🍜",
		"Tiêu tiền như nước, rồi lại than nghèo! 💧",
		"Cẩn thận kẻo hết tiền trước khi hết tháng! ⚠️",
		"Nhớ tiết kiệm một chút, đừng phung phí quá! 💰",
		"Lại chi tiêu không cần thiết rồi, cẩn thận nhé! 🚨",
		"Tiền kiếm được khó lắm, đừng vứt đi như vậy! 😤",
		"Có tiền thì tiêu, không có tiền thì... than! 😅",
		"Nhớ mục tiêu tiết kiệm của mình nhé! 🎯",
	}
}
