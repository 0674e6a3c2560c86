package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chitieu/chitieu/internal/config"
	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

var errEmptyAnswer = errors.New("empty answer from gemini")

// GeminiAssistant answers questions with a Google Gemini model. A client is created per question,
// the assistant is only used for messages that carry no expense.
type GeminiAssistant struct {
	apiKey      string
	model       string
	temperature float32
	timeout     time.Duration
	options     []option.ClientOption
}

func NewGeminiAssistant(cfg config.Gemini, opts ...option.ClientOption) *GeminiAssistant {
	return &GeminiAssistant{
		apiKey:      cfg.ApiKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		options:     opts,
	}
}

func (g *GeminiAssistant) IsAvailable() bool {
	return g.apiKey != ""
}

func (g *GeminiAssistant) Ask(ctx context.Context, question string, financialContext string) (string, error) {
	if !g.IsAvailable() {
		return "", ErrNotConfigured
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	opts := append([]option.ClientOption{option.WithAPIKey(g.apiKey)}, g.options...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(question, financialContext)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	answer, err := answerText(resp)
	if err != nil {
		return "", err
	}
	log.Debugf("gemini answered with %d characters", len(answer))
	return answer, nil
}

func buildPrompt(question string, financialContext string) string {
	var sb strings.Builder

	sb.WriteString(`Bạn là trợ lý quản lý chi tiêu cá nhân, xưng "em" và gọi người dùng là "anh/chị".
Trả lời ngắn gọn bằng tiếng Việt, tối đa 5 câu, dựa trên số liệu thực tế bên dưới.
Không bịa ra giao dịch không có trong dữ liệu. Số tiền viết dạng 35,000đ.
Nếu người dùng muốn ghi chi tiêu, nhắc họ nhập theo dạng "Món ăn + số tiền", ví dụ "cơm 35k".

`)
	if financialContext != "" {
		sb.WriteString(financialContext)
		sb.WriteString("\n\n")
	}
	sb.WriteString("CÂU HỎI: ")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n")

	return sb.String()
}

// answerText joins the text parts of the first candidate.
func answerText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyAnswer
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	answer := strings.TrimSpace(strings.Join(parts, ""))
	// models sometimes wrap plain answers in markdown code blocks
	answer = strings.TrimPrefix(answer, "```markdown")
	answer = strings.TrimPrefix(answer, "```")
	answer = strings.TrimSuffix(answer, "```")
	answer = strings.TrimSpace(answer)

	if answer == "" {
		return "", errEmptyAnswer
	}
	return answer, nil
}
