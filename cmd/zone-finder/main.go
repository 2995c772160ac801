package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"sage-portal/usecases"
	"sage-portal/zones"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const requestTimeout = 10 * time.Second

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")).
			Padding(0, 1)
)

type detectResponse struct {
	Data usecases.Detection `json:"data"`
}

type detectedMsg usecases.Detection
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type model struct {
	input     textinput.Model
	serverURL string
	loading   bool
	detection *usecases.Detection
	err       error
	quitting  bool
}

func initialModel(serverURL string) model {
	ti := textinput.New()
	ti.Placeholder = "06600, Nice, 75008..."
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Focus()
	return model{input: ti, serverURL: strings.TrimRight(serverURL, "/")}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// detect asks the portal to classify the input. An empty input lets the
// server fall back to the caller's IP address.
func detect(serverURL, input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		body, err := json.Marshal(usecases.Signal{Input: input})
		if err != nil {
			return errMsg{err}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/api/v1/zones/detect", bytes.NewReader(body))
		if err != nil {
			return errMsg{err}
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("portal not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("portal returned %d", resp.StatusCode)}
		}
		var out detectResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return errMsg{fmt.Errorf("invalid response: %w", err)}
		}
		return detectedMsg(out.Data)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, detect(m.serverURL, strings.TrimSpace(m.input.Value()))
		}

	case detectedMsg:
		d := usecases.Detection(msg)
		m.loading = false
		m.detection = &d
		m.input.SetValue("")
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Zone d'intervention"))
	s.WriteString("\n")
	s.WriteString("Code postal ou ville (Entrée vide pour la détection par IP):\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	switch {
	case m.loading:
		s.WriteString("Recherche...\n")
	case m.err != nil:
		s.WriteString(errorStyle.Render("✗ "+m.err.Error()) + "\n")
	case m.detection != nil:
		s.WriteString(renderDetection(m.detection))
		s.WriteString("\n")
	}

	s.WriteString("\n(Esc pour quitter)\n")
	return s.String()
}

func renderDetection(d *usecases.Detection) string {
	var s strings.Builder
	if d.Error != "" {
		s.WriteString(warnStyle.Render(d.Error) + "\n")
	} else {
		s.WriteString(successStyle.Render("✓ Zone trouvée ("+d.Method+")") + "\n")
	}
	if d.Zone != nil {
		s.WriteString(renderZone(d.Zone))
	}
	return s.String()
}

func renderZone(z *zones.Zone) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", labelStyle.Render(z.Name))
	b.WriteString(labelStyle.Render("Services") + "\n")
	for _, svc := range z.Services {
		fmt.Fprintf(&b, "  • %s\n", svc)
	}
	fmt.Fprintf(&b, "\n%s\n  %s\n  %s\n  %s\n",
		labelStyle.Render("Contact"), z.Contact.Phone, z.Contact.Email, z.Contact.Address)

	var modes []string
	if z.Availability.OnSite {
		modes = append(modes, "sur site")
	}
	if z.Availability.Remote {
		modes = append(modes, "à distance")
	}
	fmt.Fprintf(&b, "\n%s\n  %s, réponse %s\n",
		labelStyle.Render("Disponibilité"), strings.Join(modes, " / "), z.Availability.ResponseTime)
	fmt.Fprintf(&b, "\n%s\n  Sur site: %s\n  À distance: %s\n  Urgence: %s",
		labelStyle.Render("Tarifs"), z.Pricing.OnSite, z.Pricing.Remote, z.Pricing.Emergency)
	return cardStyle.Render(b.String())
}

func main() {
	serverURL := flag.String("server", envOr("PORTAL_URL", "http://localhost:3536"), "portal base URL")
	flag.Parse()

	p := tea.NewProgram(initialModel(*serverURL))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
