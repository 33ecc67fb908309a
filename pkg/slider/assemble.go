package slider

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Tree is the output of the assembler.
type Tree struct {
	// Panels in build order: descendants first, the root panel last.
	// Document order carries no meaning; IsActive alone decides visibility.
	Panels []*Panel

	Root   *Panel
	Active *Panel

	// Dropped holds one error per descendant panel left out of the tree.
	Dropped []error
}

type owner struct {
	item  *ActionItem
	panel int // descriptor index, -1 for the root panel
}

// assemble builds the panel tree. Descendant panels that cannot be linked
// to the root are reported and skipped; only a missing root is fatal.
func assemble(cfg Config, h handler, report Reporter) (*Tree, error) {
	if len(cfg.Primary) == 0 {
		return nil, ErrNoPrimaryLinks
	}

	primary := buildItems("root/primary", cfg.Primary, h)
	secondary := buildItems("root/secondary", cfg.Secondary, h)
	descItems := make([][]*ActionItem, len(cfg.Panels))
	for i, d := range cfg.Panels {
		descItems[i] = buildItems("panel:"+string(d.ParentRef), d.Links, h)
	}

	// Every item of every level may lead somewhere. The first item claiming
	// a ref wins.
	pool := make(map[Ref]owner)
	claim := func(items []*ActionItem, panel int) {
		for _, it := range items {
			ref := it.ChildRef()
			if ref == RootRef {
				continue
			}
			if _, taken := pool[ref]; !taken {
				pool[ref] = owner{item: it, panel: panel}
			}
		}
	}
	claim(primary, -1)
	claim(secondary, -1)
	for i := range descItems {
		claim(descItems[i], i)
	}

	t := &Tree{}
	drop := func(d PanelDescriptor, err error) {
		err = fmt.Errorf("panel %q: %w", d.ParentRef, err)
		t.Dropped = append(t.Dropped, err)
		if report != nil {
			report(err)
		}
	}

	owners := make(map[int]owner, len(cfg.Panels))
	seen := make(map[Ref]bool, len(cfg.Panels))
	for i, d := range cfg.Panels {
		if seen[d.ParentRef] {
			drop(d, ErrDuplicatePanel)
			continue
		}
		o, ok := pool[d.ParentRef]
		if !ok || d.ParentRef == RootRef {
			drop(d, ErrUnresolvedParent)
			continue
		}
		seen[d.ParentRef] = true
		owners[i] = o
	}

	// A panel is reachable when its owning item sits on the root panel or
	// on another reachable panel.
	reachable := make(map[int]bool, len(owners))
	for changed := true; changed; {
		changed = false
		for i, o := range owners {
			if !reachable[i] && (o.panel < 0 || reachable[o.panel]) {
				reachable[i] = true
				changed = true
			}
		}
	}

	built := make(map[int]*Panel, len(reachable))
	var pending []int
	for i := range cfg.Panels {
		if _, ok := owners[i]; !ok {
			continue
		}
		if !reachable[i] {
			drop(cfg.Panels[i], ErrOrphanedPanel)
			continue
		}
		pending = append(pending, i)
	}

	// Back labels need the owning panel's headline, so owners are built
	// before the panels beneath them.
	var build func(i int) *Panel
	build = func(i int) *Panel {
		if p, ok := built[i]; ok {
			return p
		}
		o := owners[i]
		backTarget, backLabel := RootRef, "main menu"
		if o.panel >= 0 {
			parent := build(o.panel)
			backTarget, backLabel = parent.ParentRef, parent.Headline
		}
		p := buildDescendantPanel(cfg.Panels[i], descItems[i], o.item.Link.Label, backLabel, backTarget, h)
		built[i] = p
		return p
	}
	for _, i := range pending {
		t.Panels = append(t.Panels, build(i))
	}

	t.Root = buildRootPanel(primary, secondary, cfg.Extra)
	t.Panels = append(t.Panels, t.Root)

	t.Active = t.Root
	for _, i := range pending {
		if !cfg.Panels[i].Active {
			continue
		}
		if t.Active != t.Root {
			slog.Warn("more than one panel flagged active, keeping the first",
				"kept", t.Active.ParentRef,
				"ignored", cfg.Panels[i].ParentRef)
			continue
		}
		t.Active = built[i]
	}
	t.Active.IsActive = true
	t.Active.paintable = true

	return t, nil
}

func buildItems(prefix string, links []Link, h handler) []*ActionItem {
	items := make([]*ActionItem, 0, len(links))
	for i, l := range links {
		items = append(items, newActionItem(prefix+"/"+strconv.Itoa(i), l, h))
	}
	return items
}
