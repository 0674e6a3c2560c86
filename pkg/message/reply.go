package message

import (
	"fmt"
	"strings"
	"time"

	"github.com/chitieu/chitieu/pkg/amount"
	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/expense"
)

const UsageHint = "❌ Em không hiểu, vui lòng nhập kiểu:\n" +
	"• `Món ăn + số tiền`\n" +
	"• `cơm 35k, trà 5k`\n\n" +
	"Ví dụ:\n" +
	"• `phở 50k`\n" +
	"• `xăng 200k`\n" +
	"• `cơm 35k, trà đá 5k`"

const nothingToUndo = "❌ Không có gì để xóa.\n\nChưa có giao dịch nào trong phiên này."

const helpText = "📖 **HƯỚNG DẪN SỬ DỤNG**\n\n" +
	"📝 **Ghi chi tiêu:** nhập `Món + số tiền`, nhiều món cách nhau bởi dấu phẩy hoặc xuống dòng.\n" +
	"• `cơm 35k, trà đá 5k`\n" +
	"• `xăng 1.5tr`\n\n" +
	"⚙️ **Lệnh:**\n" +
	"• `/report` - Báo cáo chi tiêu\n" +
	"• `/undo` - Xóa giao dịch cuối cùng\n" +
	"• `/chia 500k 4` - Chia tiền"

var dayNames = map[time.Weekday]string{
	time.Monday:    "Thứ 2",
	time.Tuesday:   "Thứ 3",
	time.Wednesday: "Thứ 4",
	time.Thursday:  "Thứ 5",
	time.Friday:    "Thứ 6",
	time.Saturday:  "Thứ 7",
	time.Sunday:    "Chủ Nhật",
}

func expenseText(reply Reply, now time.Time) string {
	var sb strings.Builder
	if len(reply.Transactions) == 1 {
		sb.WriteString("✅ **Đã lưu:**\n")
		sb.WriteString(itemLine(reply.Transactions[0]))
	} else {
		fmt.Fprintf(&sb, "✅ **Đã lưu %d khoản chi:**\n", len(reply.Transactions))
		total := int64(0)
		for _, tx := range reply.Transactions {
			sb.WriteString(itemLine(tx))
			sb.WriteString("\n")
			total += tx.Amount
		}
		fmt.Fprintf(&sb, "\n💰 **Tổng cộng: %s**", amount.Format(total))
	}

	sb.WriteString(budgetLine(reply.Budget))

	if reply.Budget.Level == budget.LevelWarning {
		day := now
		if !reply.Budget.WeekStart.IsZero() {
			day = now.In(reply.Budget.WeekStart.Location())
		}
		fmt.Fprintf(&sb, "\n\n⚠️ **Cảnh báo:** Tiêu chậm thôi, mới %s đấy! (%.1f%% đã dùng)",
			dayNames[day.Weekday()], reply.Budget.UsedPercent)
	}
	if reply.WasteWarning != "" {
		fmt.Fprintf(&sb, "\n\n🚨 %s", reply.WasteWarning)
	}
	if !reply.Persisted {
		sb.WriteString("\n\n⚠️ Chưa đồng bộ được dữ liệu, giao dịch vẫn được ghi trong phiên này.")
	}
	return sb.String()
}

func undoText(tx expense.Transaction, status budget.Status) string {
	var sb strings.Builder
	sb.WriteString("✅ **Đã xóa giao dịch cuối cùng thành công!**\n\n")
	sb.WriteString("📝 Giao dịch đã xóa:\n")
	fmt.Fprintf(&sb, "• %s: %s\n", tx.Description, amount.Format(tx.Amount))
	fmt.Fprintf(&sb, "• Phân loại: %s\n", tx.Category)
	date := tx.Timestamp
	if !status.WeekStart.IsZero() {
		date = date.In(status.WeekStart.Location())
	}
	fmt.Fprintf(&sb, "• Ngày: %s", date.Format("02/01/2006"))
	sb.WriteString(budgetLine(status))
	return sb.String()
}

func itemLine(tx expense.Transaction) string {
	return fmt.Sprintf("• %s: %s (%s)", tx.Description, amount.Format(tx.Amount), tx.Category)
}

func budgetLine(status budget.Status) string {
	line := fmt.Sprintf("\n\n📊 **Tuần này:** %s / %s", amount.Format(status.Spent), amount.Format(status.Limit))
	if status.Remaining < 0 {
		return line + fmt.Sprintf("\n⚠️ **BÁO ĐỘNG:** Bạn đã tiêu lố %s so với định mức tuần!", amount.Format(-status.Remaining))
	}
	return line + fmt.Sprintf(" (Còn dư: %s)", amount.Format(status.Remaining))
}
