package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/tailor/internal/credential"
	"github.com/mark3labs/tailor/internal/tui/theme"
)

// CredentialModal asks for an API key on behalf of a blocked generation and
// replies on the request's result channel exactly once.
type CredentialModal struct {
	req      credential.PromptRequest
	input    textinput.Model
	remember bool
	answered bool
}

// NewCredentialModal creates a modal for req with the key input focused.
func NewCredentialModal(req credential.PromptRequest) (*CredentialModal, tea.Cmd) {
	input := newInput("API key: ", "sk-...", 44)
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	cmd := input.Focus()
	return &CredentialModal{req: req, input: input}, cmd
}

// Remember reports whether the key will be saved to the global config.
func (m *CredentialModal) Remember() bool {
	return m.remember
}

// Update handles a key. It reports whether the modal is done.
func (m *CredentialModal) Update(msg tea.KeyPressMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.reply(credential.PromptResult{Declined: true})
		return true, nil
	case "enter":
		key := strings.TrimSpace(m.input.Value())
		if key == "" {
			return false, nil
		}
		m.reply(credential.PromptResult{Answer: credential.Answer{Key: key, Remember: m.remember}})
		return true, nil
	case "tab":
		m.remember = !m.remember
		return false, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return false, cmd
}

// Decline answers the request as declined if it has not been answered.
func (m *CredentialModal) Decline() {
	m.reply(credential.PromptResult{Declined: true})
}

// reply never blocks: the result channel is buffered and read once.
func (m *CredentialModal) reply(res credential.PromptResult) {
	if m.answered {
		return
	}
	m.answered = true
	select {
	case m.req.ResultCh <- res:
	default:
	}
}

// View renders the modal box.
func (m *CredentialModal) View() string {
	s := theme.Current().S()

	check := "[ ]"
	if m.remember {
		check = "[x]"
	}

	content := strings.Join([]string{
		s.ModalTitle.Render("API key required"),
		"",
		"Generating mockups needs an image API key.",
		"",
		m.input.View(),
		"",
		check + " Remember this key",
		"",
		renderHintBar("enter", "use key", "tab", "remember", "esc", "cancel"),
	}, "\n")

	return s.ModalContainer.Width(60).Align(lipgloss.Left).Render(content)
}
