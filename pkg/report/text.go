package report

import (
	"fmt"
	"strings"

	"github.com/chitieu/chitieu/pkg/amount"
)

const divider = "━━━━━━━━━━━━━━━━━━\n"

// FinancialContext is the plain-text snapshot given to the assistant along with a question.
func FinancialContext(s Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DỮ LIỆU TÀI CHÍNH THỰC TẾ (Cập nhật lúc %s):\n", s.GeneratedAt.Format("15:04:05"))
	fmt.Fprintf(&sb, "- Hôm nay (%s): Đã tiêu %s.\n", s.GeneratedAt.Format("02/01/2006"), amount.Format(s.Today))
	fmt.Fprintf(&sb, "- Tháng này: %s.\n", amount.Format(s.Month))
	fmt.Fprintf(&sb, "- Ngân sách tuần: Đã tiêu %s / %s, còn dư %s.\n",
		amount.Format(s.Week.Spent), amount.Format(s.Week.Limit), amount.Format(s.Week.Remaining))
	if len(s.Recent) == 0 {
		sb.WriteString("- 5 giao dịch gần nhất: Không có dữ liệu.")
		return sb.String()
	}
	sb.WriteString("- 5 giao dịch gần nhất:")
	for i, row := range s.Recent {
		fmt.Fprintf(&sb, "\n  %d. %s: %s (%s) - %d/%d/%d",
			i+1, row.Description, amount.Format(row.Amount), row.Category, row.Day, row.Month, row.Year)
	}
	return sb.String()
}

// Text renders the summary as a chat message.
func Text(s Summary) string {
	var sb strings.Builder
	sb.WriteString("📊 **BÁO CÁO CHI TIÊU**\n")
	sb.WriteString(divider)
	fmt.Fprintf(&sb, "📅 Hôm nay: **%s**\n", amount.Format(s.Today))
	fmt.Fprintf(&sb, "🗓️ Tháng %d: **%s**\n", int(s.GeneratedAt.Month()), amount.Format(s.Month))
	fmt.Fprintf(&sb, "📆 Tuần này: **%s / %s**\n", amount.Format(s.Week.Spent), amount.Format(s.Week.Limit))
	sb.WriteString(divider)
	if len(s.TopCategories) == 0 {
		sb.WriteString("📝 Chưa có dữ liệu chi tiêu trong tháng này.\n")
		return sb.String()
	}
	sb.WriteString("🔥 **Top chi tiêu tháng:**\n")
	for i, total := range s.TopCategories {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, total.Category, amount.Format(total.Amount))
	}
	return sb.String()
}
