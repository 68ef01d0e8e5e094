package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"virtual-pet-service/internal/platform/httpclient"
)

// petwatch es un cliente de terminal para mirar y cuidar mascotas
// contra la API. Config por env:
// - API_BASE_URL (default http://localhost:8080)
// - PET_USER_ID  (se manda como X-Debug-User-ID; requiere API en modo dev)
func main() {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	userID := strings.TrimSpace(os.Getenv("PET_USER_ID"))
	if userID == "" {
		fmt.Fprintln(os.Stderr, "PET_USER_ID es obligatorio")
		os.Exit(1)
	}

	api, err := newAPIClient(baseURL, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "base url inválida: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type petView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Level     int    `json:"level"`
	Health    int    `json:"health"`
	Hunger    int    `json:"hunger"`
	Happiness int    `json:"happiness"`
	Energy    int    `json:"energy"`
	Status    string `json:"status"`
}

type apiClient struct {
	http   *httpclient.Client
	userID string
}

func newAPIClient(baseURL, userID string) (*apiClient, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, 10*time.Second)
	if err != nil {
		return nil, err
	}
	return &apiClient{http: hc, userID: userID}, nil
}

func (c *apiClient) headers() map[string]string {
	return map[string]string{"X-Debug-User-ID": c.userID}
}

func (c *apiClient) listPets(ctx context.Context) ([]petView, error) {
	var out []petView
	err := c.http.DoJSON(ctx, http.MethodGet, "/pets", c.headers(), nil, &out)
	return out, err
}

func (c *apiClient) applyAction(ctx context.Context, petID, action string) (petView, error) {
	var out petView
	err := c.http.DoJSON(ctx, http.MethodPost, "/pets/"+petID+"/"+action, c.headers(), nil, &out)
	return out, err
}

type petsMsg []petView
type actionDoneMsg struct {
	pet    petView
	action string
}
type errMsg struct{ err error }
type pollMsg time.Time

type model struct {
	api      *apiClient
	pets     []petView
	choice   int
	message  string
	quitting bool
}

func newModel(api *apiClient) model {
	return model{api: api, message: "cargando..."}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), poll())
}

func poll() tea.Cmd {
	return tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (m model) fetch() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pets, err := api.listPets(ctx)
		if err != nil {
			return errMsg{err}
		}
		return petsMsg(pets)
	}
}

func (m model) act(action string) tea.Cmd {
	if len(m.pets) == 0 {
		return nil
	}
	api := m.api
	petID := m.pets[m.choice].ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		p, err := api.applyAction(ctx, petID, action)
		if err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{pet: p, action: action}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.choice > 0 {
				m.choice--
			}
		case "down", "j":
			if m.choice < len(m.pets)-1 {
				m.choice++
			}
		case "r":
			return m, m.fetch()
		case "f":
			return m, m.act("feed")
		case "p":
			return m, m.act("play")
		case "s":
			return m, m.act("sleep")
		case "h":
			return m, m.act("heal")
		}

	case petsMsg:
		m.pets = msg
		if m.choice >= len(m.pets) {
			m.choice = 0
		}
		if len(m.pets) == 0 {
			m.message = "sin mascotas (creá una por la API)"
		} else {
			m.message = ""
		}
		return m, nil

	case actionDoneMsg:
		for i := range m.pets {
			if m.pets[i].ID == msg.pet.ID {
				m.pets[i] = msg.pet
			}
		}
		m.message = actionMessage(msg.action)
		return m, nil

	case errMsg:
		m.message = "error: " + msg.err.Error()
		return m, nil

	case pollMsg:
		return m, tea.Batch(m.fetch(), poll())
	}

	return m, nil
}

func actionMessage(action string) string {
	switch action {
	case "feed":
		return "🍖 ñam"
	case "play":
		return "🎾 a jugar"
	case "sleep":
		return "😴 a dormir"
	case "heal":
		return "💊 curada"
	default:
		return ""
	}
}

var styles = struct {
	title    lipgloss.Style
	selected lipgloss.Style
	normal   lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")),

	normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),
}

func typeEmoji(t string) string {
	switch t {
	case "cat":
		return "🐱"
	case "dog":
		return "🐶"
	case "bird":
		return "🐦"
	case "fish":
		return "🐟"
	case "rabbit":
		return "🐰"
	default:
		return "🐾"
	}
}

func makeBar(value int) string {
	filled := value / 20
	bar := ""
	for i := 0; i < 5; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func (m model) View() string {
	if m.quitting {
		return "¡Hasta luego!\n"
	}

	var s strings.Builder
	s.WriteString(styles.title.Render("🐾 petwatch") + "\n\n")

	for i, p := range m.pets {
		cursor := "  "
		style := styles.normal
		if i == m.choice {
			cursor = "> "
			style = styles.selected
		}
		line := fmt.Sprintf("%s%s %s  nivel %d  [%s]", cursor, typeEmoji(p.Type), p.Name, p.Level, p.Status)
		s.WriteString(style.Render(line) + "\n")
	}

	if len(m.pets) > 0 {
		p := m.pets[m.choice]
		s.WriteString("\n")
		s.WriteString(fmt.Sprintf("  Salud:     [%s] %3d%%\n", makeBar(p.Health), p.Health))
		s.WriteString(fmt.Sprintf("  Hambre:    [%s] %3d%%\n", makeBar(p.Hunger), p.Hunger))
		s.WriteString(fmt.Sprintf("  Felicidad: [%s] %3d%%\n", makeBar(p.Happiness), p.Happiness))
		s.WriteString(fmt.Sprintf("  Energía:   [%s] %3d%%\n", makeBar(p.Energy), p.Energy))
	}

	if m.message != "" {
		s.WriteString("\n" + styles.status.Render("  "+m.message) + "\n")
	}

	s.WriteString("\n" + styles.help.Render("  f alimentar · p jugar · s dormir · h curar · r refrescar · q salir") + "\n")
	return s.String()
}
