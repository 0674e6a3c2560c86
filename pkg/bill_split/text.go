package bill_split

import (
	"fmt"
	"strings"

	"github.com/chitieu/chitieu/pkg/amount"
)

const divider = "━━━━━━━━━━━━━━━━━━\n"

// Usage is shown when a split command cannot be understood.
const Usage = "❌ **Sai cú pháp!**\n\n" +
	"💡 **Cách sử dụng:**\n" +
	"• `/chia 500k 4` - Chia 500k cho 4 người\n" +
	"• `/chia 300k Nam, Hùng, Lộc` - Chia 300k cho 3 người"

// Text renders the bill the way it is sent to the group chat.
func (b Bill) Text() string {
	var sb strings.Builder
	sb.WriteString("🧾 **HÓA ĐƠN CHIA TIỀN**\n")
	fmt.Fprintf(&sb, "💰 Tổng: %s\n", amount.Format(b.Total))
	fmt.Fprintf(&sb, "👥 Số người: %d\n", b.People)
	sb.WriteString(divider)
	if len(b.Shares) == 0 {
		fmt.Fprintf(&sb, "💵 **Mỗi người: %s**\n", amount.Format(b.PerPerson))
		if b.Remainder > 0 {
			fmt.Fprintf(&sb, "⚠️ Dư: %s (có thể để tiền lẻ hoặc ai đó chịu thêm)\n", amount.Format(b.Remainder))
		}
	}
	for _, share := range b.Shares {
		if share.Remainder > 0 {
			fmt.Fprintf(&sb, "👤 **%s**: %s (gồm %s dư)\n", share.Name, amount.Format(share.Amount), amount.Format(share.Remainder))
			continue
		}
		fmt.Fprintf(&sb, "👤 **%s**: %s\n", share.Name, amount.Format(share.Amount))
	}
	sb.WriteString(divider)
	sb.WriteString("👉 *Copy đoạn này gửi đòi nợ nhé!*")
	return sb.String()
}
