package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mchmarny/slidemenu/pkg/slider"
	"github.com/mchmarny/slidemenu/pkg/view"
)

// ErrNoPrimaryItems is returned for a menu without a root level.
var ErrNoPrimaryItems = errors.New("menu has no primary items")

// Menu represents the root menu structure.
type Menu struct {
	// Title is shown in the drawer header.
	Title string `json:"title" yaml:"title"`

	// Description of the menu
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Primary items make up the root level.
	Primary []Item `json:"primary" yaml:"primary"`

	// Secondary items are listed on the root level below the primary ones.
	Secondary []Item `json:"secondary,omitempty" yaml:"secondary,omitempty"`

	// Extra is free text shown at the bottom of the root level.
	Extra string `json:"extra,omitempty" yaml:"extra,omitempty"`

	// Panels are descendant levels declared flat, linked to their parent
	// item by ref.
	Panels []Panel `json:"panels,omitempty" yaml:"panels,omitempty"`
}

// Panel is a flat descendant level.
type Panel struct {
	Parent string `json:"parent" yaml:"parent"`
	Active bool   `json:"active,omitempty" yaml:"active,omitempty"`
	Items  []Item `json:"items" yaml:"items"`
}

// Load reads a menu definition from a YAML file.
func Load(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading menu %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing menu %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML menu definition and validates it.
func Parse(data []byte) (*Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the menu can be turned into a slider.
func (m *Menu) Validate() error {
	if len(m.Primary) == 0 {
		return ErrNoPrimaryItems
	}
	var errs []error
	m.Walk(func(path []string, it *Item) {
		if it.Label == "" {
			errs = append(errs, fmt.Errorf("item at %v has no label", path))
		}
	})
	return errors.Join(errs...)
}

// Walk visits every item of the menu depth first, with the labels of its
// ancestors.
func (m *Menu) Walk(fn func(path []string, it *Item)) {
	for i := range m.Primary {
		walkItem(nil, &m.Primary[i], fn)
	}
	for i := range m.Secondary {
		walkItem(nil, &m.Secondary[i], fn)
	}
	for i := range m.Panels {
		for j := range m.Panels[i].Items {
			walkItem([]string{m.Panels[i].Parent}, &m.Panels[i].Items[j], fn)
		}
	}
}

// walkItem recursively visits an item and all its sub-items.
func walkItem(path []string, it *Item, fn func([]string, *Item)) {
	fn(path, it)

	sub := append(append([]string{}, path...), it.Label)
	for i := range it.Items {
		walkItem(sub, &it.Items[i], fn)
	}
}

// SliderConfig flattens the menu into slider input. Every item with
// sub-items becomes a descendant panel keyed by the item's ref; flat
// panels are appended as declared.
func (m *Menu) SliderConfig(mode slider.DisplayMode, onNavigate func(slider.Link)) slider.Config {
	cfg := slider.Config{
		Mode:       mode,
		OnNavigate: onNavigate,
	}
	taken := make(map[slider.Ref]bool)
	cfg.Primary = flatten(m.Primary, nil, &cfg, taken)
	cfg.Secondary = flatten(m.Secondary, nil, &cfg, taken)
	if m.Extra != "" {
		cfg.Extra = view.NewText(m.Extra, view.Styles.Muted)
	}
	for _, p := range m.Panels {
		cfg.Panels = append(cfg.Panels, slider.PanelDescriptor{
			ParentRef: slider.Ref(p.Parent),
			Active:    p.Active,
			Links:     flatten(p.Items, []string{p.Parent}, &cfg, taken),
		})
	}
	return cfg
}

func flatten(items []Item, path []string, cfg *slider.Config, taken map[slider.Ref]bool) []slider.Link {
	links := make([]slider.Link, 0, len(items))
	for i := range items {
		it := &items[i]
		p := append(append([]string{}, path...), it.Label)
		l := slider.Link{
			Label:       it.Label,
			Href:        it.Href,
			Description: it.Description,
			Selected:    it.Selected,
		}
		if it.leadsSomewhere() {
			l.ChildRef = it.ref(p, taken)
			taken[l.ChildRef] = true
		}
		if len(it.Items) > 0 {
			cfg.Panels = append(cfg.Panels, slider.PanelDescriptor{
				ParentRef: l.ChildRef,
				Active:    it.Active,
				Links:     flatten(it.Items, p, cfg, taken),
			})
		}
		links = append(links, l)
	}
	return links
}

// Handler returns an HTTP handler that responds with the menu structure as JSON.
func (m *Menu) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("handling menu request",
			"method", r.Method,
			"url", r.URL.Path,
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(m); err != nil {
			slog.Error("failed to encode menu", "error", err)
			return
		}
	})
}
