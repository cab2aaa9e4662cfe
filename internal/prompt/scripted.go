package prompt

import "fmt"

// Scripted is a Prompter that replays pre-recorded answers. It exists for
// tests and for non-interactive callers that know their answers up front.
type Scripted struct {
	// Choices are returned by ChooseOne in order.
	Choices []int
	// Confirms are returned by Confirm in order.
	Confirms []bool
	// Texts are returned by ReadText in order.
	Texts []string

	choiceIdx  int
	confirmIdx int
	textIdx    int
}

// ChooseOne returns the next scripted choice.
func (s *Scripted) ChooseOne(prompt string, options []string) (int, error) {
	if s.choiceIdx >= len(s.Choices) {
		return 0, fmt.Errorf("no scripted choice left for %q", prompt)
	}
	choice := s.Choices[s.choiceIdx]
	s.choiceIdx++
	if choice < 0 || choice >= len(options) {
		return 0, fmt.Errorf("scripted choice %d out of range for %q", choice, prompt)
	}
	return choice, nil
}

// Confirm returns the next scripted confirmation.
func (s *Scripted) Confirm(message string) (bool, error) {
	if s.confirmIdx >= len(s.Confirms) {
		return false, fmt.Errorf("no scripted confirmation left for %q", message)
	}
	answer := s.Confirms[s.confirmIdx]
	s.confirmIdx++
	return answer, nil
}

// ReadText returns the next scripted text.
func (s *Scripted) ReadText(prompt string) (string, error) {
	if s.textIdx >= len(s.Texts) {
		return "", fmt.Errorf("no scripted text left for %q", prompt)
	}
	text := s.Texts[s.textIdx]
	s.textIdx++
	return text, nil
}
