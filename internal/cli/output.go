package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mcp-registry/pkg/config"
	"github.com/matzehuels/mcp-registry/pkg/registry"
)

const (
	statusUnknown = "unknown"
	notAvailable  = "N/A"
	ellipsis      = "..."
)

// printer renders registry results in the configured output format.
type printer struct {
	w         io.Writer
	format    string
	descWidth int
	indent    int
}

func newPrinter(w io.Writer, out config.OutputConfig) *printer {
	return &printer{
		w:         w,
		format:    out.Format,
		descWidth: out.TableMaxDescWidth,
		indent:    out.JSONIndent,
	}
}

// =============================================================================
// Search Results
// =============================================================================

// serverSummary is one search result in JSON and YAML output.
type serverSummary struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
	Status      string `json:"status" yaml:"status"`
	Repository  string `json:"repository" yaml:"repository"`
	ID          string `json:"id" yaml:"id"`
	PublishedAt string `json:"published_at" yaml:"published_at"`
	UpdatedAt   string `json:"updated_at" yaml:"updated_at"`
}

func summarize(s *registry.Server) serverSummary {
	return serverSummary{
		Name:        s.Name,
		Description: s.Description,
		Version:     s.Version,
		Status:      orDefault(s.Status, statusUnknown),
		Repository:  orDefault(s.Repository.URL, notAvailable),
		ID:          s.ID(),
		PublishedAt: formatTime(s.Meta.Official.PublishedAt),
		UpdatedAt:   formatTime(s.Meta.Official.UpdatedAt),
	}
}

// servers prints search results.
func (p *printer) servers(servers []registry.Server) error {
	switch p.format {
	case config.FormatJSON, config.FormatYAML:
		out := make([]serverSummary, len(servers))
		for i := range servers {
			out[i] = summarize(&servers[i])
		}
		return p.encode(out)
	default:
		p.table(servers)
		return nil
	}
}

// table prints NAME / DESCRIPTION / VERSION with descriptions cut to the
// configured width.
func (p *printer) table(servers []registry.Server) {
	if len(servers) == 0 {
		fmt.Fprintln(p.w, "No servers found.")
		return
	}

	rows := make([][]string, len(servers))
	for i, s := range servers {
		rows[i] = []string{s.Name, truncate(s.Description, p.descWidth), s.Version}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("NAME", "DESCRIPTION", "VERSION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return styleTableCell
		})

	fmt.Fprintln(p.w, t.Render())
}

// =============================================================================
// Server Details
// =============================================================================

// serverDetail is the detailed JSON and YAML view of a server. Absent optional
// values are emitted as null.
type serverDetail struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	Version     string           `json:"version" yaml:"version"`
	Status      string           `json:"status" yaml:"status"`
	Schema      *string          `json:"schema" yaml:"schema"`
	Repository  repositoryDetail `json:"repository" yaml:"repository"`
	Metadata    metadataDetail   `json:"metadata" yaml:"metadata"`
	Remotes     []remoteDetail   `json:"remotes,omitempty" yaml:"remotes,omitempty"`
	Packages    []packageDetail  `json:"packages,omitempty" yaml:"packages,omitempty"`
}

type repositoryDetail struct {
	URL       string  `json:"url" yaml:"url"`
	Source    string  `json:"source" yaml:"source"`
	ID        *string `json:"id" yaml:"id"`
	Subfolder *string `json:"subfolder" yaml:"subfolder"`
}

type metadataDetail struct {
	ID          string `json:"id" yaml:"id"`
	PublishedAt string `json:"published_at" yaml:"published_at"`
	UpdatedAt   string `json:"updated_at" yaml:"updated_at"`
	IsLatest    bool   `json:"is_latest" yaml:"is_latest"`
}

type remoteDetail struct {
	Type string `json:"type" yaml:"type"`
	URL  string `json:"url" yaml:"url"`
}

type packageDetail struct {
	RegistryType         string           `json:"registry_type" yaml:"registry_type"`
	Identifier           string           `json:"identifier" yaml:"identifier"`
	Version              string           `json:"version" yaml:"version"`
	RegistryBaseURL      string           `json:"registry_base_url,omitempty" yaml:"registry_base_url,omitempty"`
	RuntimeHint          string           `json:"runtime_hint,omitempty" yaml:"runtime_hint,omitempty"`
	Transport            *transportDetail `json:"transport,omitempty" yaml:"transport,omitempty"`
	EnvironmentVariables []envDetail      `json:"environment_variables,omitempty" yaml:"environment_variables,omitempty"`
}

type transportDetail struct {
	Type string  `json:"type" yaml:"type"`
	URL  *string `json:"url" yaml:"url"`
}

type envDetail struct {
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description"`
	IsRequired  bool    `json:"is_required" yaml:"is_required"`
	IsSecret    bool    `json:"is_secret" yaml:"is_secret"`
	Format      *string `json:"format" yaml:"format"`
}

func detail(s *registry.Server) serverDetail {
	d := serverDetail{
		Name:        s.Name,
		Description: s.Description,
		Version:     s.Version,
		Status:      orDefault(s.Status, statusUnknown),
		Schema:      optional(s.Schema),
		Repository: repositoryDetail{
			URL:       s.Repository.URL,
			Source:    s.Repository.Source,
			ID:        optional(s.Repository.ID),
			Subfolder: optional(s.Repository.Subfolder),
		},
		Metadata: metadataDetail{
			ID:          s.ID(),
			PublishedAt: formatTime(s.Meta.Official.PublishedAt),
			UpdatedAt:   formatTime(s.Meta.Official.UpdatedAt),
			IsLatest:    s.Meta.Official.IsLatest,
		},
	}
	for _, r := range s.Remotes {
		d.Remotes = append(d.Remotes, remoteDetail{Type: r.Type, URL: r.URL})
	}
	for _, pkg := range s.Packages {
		pd := packageDetail{
			RegistryType:    pkg.RegistryType,
			Identifier:      pkg.Identifier,
			Version:         pkg.Version,
			RegistryBaseURL: pkg.RegistryBaseURL,
			RuntimeHint:     pkg.RuntimeHint,
		}
		if pkg.Transport != nil {
			pd.Transport = &transportDetail{Type: pkg.Transport.Type, URL: optional(pkg.Transport.URL)}
		}
		for _, ev := range pkg.EnvironmentVariables {
			pd.EnvironmentVariables = append(pd.EnvironmentVariables, envDetail{
				Name:        ev.Name,
				Description: optional(ev.Description),
				IsRequired:  ev.IsRequired,
				IsSecret:    ev.IsSecret,
				Format:      optional(ev.Format),
			})
		}
		d.Packages = append(d.Packages, pd)
	}
	return d
}

// details prints one or more servers. A single server is printed as an
// object, several as a list.
func (p *printer) details(servers []*registry.Server) error {
	switch p.format {
	case config.FormatJSON, config.FormatYAML:
		if len(servers) == 1 {
			return p.encode(detail(servers[0]))
		}
		out := make([]serverDetail, len(servers))
		for i, s := range servers {
			out[i] = detail(s)
		}
		return p.encode(out)
	default:
		for i, s := range servers {
			if i > 0 {
				fmt.Fprintln(p.w)
			}
			p.humanReadable(s)
		}
		return nil
	}
}

func (p *printer) humanReadable(s *registry.Server) {
	status := orDefault(s.Status, statusUnknown)
	if s.Active() {
		status = styleStatusOK.Render(status)
	}
	repo := notAvailable
	if s.Repository.URL != "" {
		repo = StyleLink.Render(s.Repository.URL)
	}

	printKeyValue(p.w, "Name", s.Name)
	printKeyValue(p.w, "Description", s.Description)
	printKeyValue(p.w, "Version", s.Version)
	printKeyValue(p.w, "Status", status)
	printKeyValue(p.w, "Repository", repo)

	if len(s.Remotes) > 0 {
		printSection(p.w, "Remotes")
		for _, r := range s.Remotes {
			printBullet(p.w, "%s: %s", r.Type, r.URL)
		}
	}
	if len(s.Packages) > 0 {
		printSection(p.w, "Packages")
		for _, pkg := range s.Packages {
			printBullet(p.w, "%s (%s)", pkg.Identifier, pkg.Version)
		}
	}
}

// =============================================================================
// Encoding
// =============================================================================

func (p *printer) encode(v any) error {
	if p.format == config.FormatYAML {
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	var (
		data []byte
		err  error
	)
	if p.indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", p.indent))
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

// truncate cuts s to width runes, ending in "..." when shortened.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return string(r[:width])
	}
	return string(r[:width-len(ellipsis)]) + ellipsis
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
