package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/graph"
)

// inspectCommand creates the inspect command, an interactive terminal
// browser over the generations of a laid-out tree.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect [tree.json]",
		Short: "Browse a tree generation by generation",
		Long: `Browse a tree generation by generation in the terminal.

The inspect command computes the layout and presents each generation row as
a table of persons with their dates, spouses, and parents. Use the arrow
keys to move between generations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, noCache bool) error {
	t, err := graph.ReadTreeFile(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, err := runner.ComputeLayout(ctx, t, c.baseOptions())
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	model := newInspectModel(t, l)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// InspectModel - Generation browser
// =============================================================================

// personRow is one person in a generation, enriched with relations for
// display.
type personRow struct {
	name    string
	dates   string
	spouses string
	parents string
	root    bool
}

// generation is one layout row with its persons in left-to-right order.
type generation struct {
	level   int
	persons []personRow
}

// inspectModel is the bubbletea model for the generation browser.
type inspectModel struct {
	treeName    string
	generations []generation
	cursor      int
}

// newInspectModel builds the browsable view from a tree and its layout.
// Persons within a generation follow their horizontal layout order.
func newInspectModel(t graph.Tree, l graph.Layout) inspectModel {
	byID := make(map[string]*graph.Person, len(t.Persons))
	for i := range t.Persons {
		byID[t.Persons[i].ID] = &t.Persons[i]
	}

	byLevel := make(map[int][]graph.LayoutNode)
	for _, n := range l.Nodes {
		byLevel[n.Generation] = append(byLevel[n.Generation], n)
	}

	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	m := inspectModel{treeName: t.Name}
	if m.treeName == "" {
		m.treeName = "Family Tree"
	}

	for _, level := range levels {
		nodes := byLevel[level]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].X < nodes[j].X })

		g := generation{level: level}
		for _, n := range nodes {
			row := personRow{name: n.Name, root: n.Root}
			if row.name == "" {
				row.name = n.ID
			}
			row.dates = formatDates(n.BirthDate, n.DeathDate)
			if p := byID[n.ID]; p != nil {
				row.spouses = joinNames(byID, p.Spouses)
				row.parents = joinNames(byID, p.Parents)
			}
			g.persons = append(g.persons, row)
		}
		m.generations = append(m.generations, g)
	}

	return m
}

func formatDates(birth, death string) string {
	switch {
	case birth != "" && death != "":
		return birth + " - " + death
	case birth != "":
		return "* " + birth
	case death != "":
		return "+ " + death
	default:
		return "—"
	}
}

func joinNames(byID map[string]*graph.Person, ids []string) string {
	if len(ids) == 0 {
		return "—"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		if p := byID[id]; p != nil {
			names[i] = p.DisplayName()
		} else {
			names[i] = id
		}
	}
	return strings.Join(names, ", ")
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.generations)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.generations) - 1
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.treeName))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ change generation  q quit"))
	b.WriteString("\n\n")

	if len(m.generations) == 0 {
		b.WriteString(StyleDim.Render("  (empty tree)"))
		return b.String()
	}

	// Generation selector line.
	for i, g := range m.generations {
		label := fmt.Sprintf(" G%d ", g.level)
		if i == m.cursor {
			b.WriteString(StyleHighlight.Bold(true).Render(label))
		} else {
			b.WriteString(StyleDim.Render(label))
		}
	}
	b.WriteString("\n\n")

	g := m.generations[m.cursor]
	rows := make([][]string, 0, len(g.persons))
	for _, p := range g.persons {
		marker := ""
		if p.root {
			marker = "◆"
		}
		rows = append(rows, []string{marker, p.name, p.dates, p.spouses, p.parents})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Person", "Dates", "Spouses", "Parents").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case 1:
				return lipgloss.NewStyle().Foreground(colorWhite)
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  generation %d of %d · %d persons",
		m.cursor+1, len(m.generations), len(g.persons))))

	return b.String()
}
