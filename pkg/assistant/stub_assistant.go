package assistant

import "context"

// StubAssistant returns a canned answer and remembers what it was asked.
type StubAssistant struct {
	Answer    string
	Err       error
	Questions []string
	Contexts  []string
}

func (s *StubAssistant) Ask(ctx context.Context, question string, financialContext string) (string, error) {
	s.Questions = append(s.Questions, question)
	s.Contexts = append(s.Contexts, financialContext)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Answer, nil
}
