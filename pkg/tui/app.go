package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/pluqqy/stash-cli/pkg/categories"
	"github.com/pluqqy/stash-cli/pkg/explore"
	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/store"
)

const (
	statusTimeout = 3 * time.Second
	loadTimeout   = 30 * time.Second
)

// writeClipboard is swapped in tests
var writeClipboard = clipboard.WriteAll

// Options configure the app. Anything left nil is opened from settings.
type Options struct {
	ConfigPath string
	Settings   *models.Settings
	Store      store.Store
	Explore    *explore.Client
	Categories *categories.Registry
	Logger     *log.Logger
}

type (
	collectionsTab = controllerTab[models.Collection, lists.CollectionSortKey, lists.CollectionFilter]
	itemsTab       = controllerTab[models.Item, lists.ItemSortKey, lists.ItemFilter]
	wishTab        = controllerTab[models.WishItem, lists.WishSortKey, lists.WishFilter]
)

// App is the root bubbletea model: four list tabs and, on top of them, an
// optional detail list of one collection's items
type App struct {
	settings *models.Settings
	store    store.Store
	explore  *explore.Client
	registry *categories.Registry
	logger   *log.Logger
	closers  []io.Closer

	collections *collectionsTab
	items       *itemsTab
	wishes      *wishTab
	exploreTab  *collectionsTab
	tabs        []listTab
	active      int

	// detail lists the items of an opened collection
	detail   listTab
	detailID string

	searchBar   *SearchBar
	confirm     *ConfirmationModel
	showPreview bool

	snap       *store.Snapshot
	exploreErr error
	stale      bool

	width     int
	height    int
	statusMsg string
	statusID  int
}

// NewApp builds the app, opening whatever opts leaves unset
func NewApp(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	settings := opts.Settings
	if settings == nil {
		var err error
		settings, err = files.ReadSettings(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	a := &App{
		settings:    settings,
		store:       opts.Store,
		explore:     opts.Explore,
		registry:    opts.Categories,
		logger:      logger,
		searchBar:   NewSearchBar(),
		confirm:     NewConfirmation(),
		showPreview: settings.UI.ShowPreview,
	}

	if a.store == nil {
		st, err := store.Open(settings, logger.WithPrefix("store"))
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		a.store = st
		a.closers = append(a.closers, st)
	}
	if a.explore == nil {
		a.explore = explore.New(settings.Explore, explore.WithLogger(logger.WithPrefix("explore")))
		a.closers = append(a.closers, a.explore)
	}
	if a.registry == nil {
		registry, err := categories.NewRegistry()
		if err != nil {
			logger.Warn("category colors unavailable", "err", err)
		}
		a.registry = registry
	}

	listOpts := a.listOptions()
	a.collections = newCollectionsTab(listOpts)
	a.items = newItemsTab(listOpts, "Items")
	a.wishes = newWishTab(listOpts)
	a.exploreTab = newExploreTab(listOpts)
	a.exploreTab.SetQuery(a.exploreTab.defaultQuery)
	a.tabs = []listTab{a.collections, a.items, a.wishes, a.exploreTab}

	return a, nil
}

// Close releases what NewApp opened
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func (a *App) listOptions() lists.Options {
	return lists.Options{Settings: a.settings, Logger: a.logger.WithPrefix("lists")}
}

// Messages

type snapshotLoadedMsg struct {
	snap *store.Snapshot
	err  error
}

type exploreLoadedMsg struct {
	collections []models.Collection
	stale       bool
	err         error
}

type remoteItemsLoadedMsg struct {
	collection models.Collection
	items      []models.Item
	err        error
}

type recordDeletedMsg struct {
	kind string
	name string
	err  error
}

// StatusMsg shows a transient message in the status bar
type StatusMsg string

type clearStatusMsg struct {
	id int
}

// Commands

func (a *App) loadSnapshot() tea.Cmd {
	st := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		snap, err := store.LoadSnapshot(ctx, st)
		return snapshotLoadedMsg{snap: snap, err: err}
	}
}

func (a *App) loadExplore(refresh bool) tea.Cmd {
	client := a.explore
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		collections, stale, err := client.Load(ctx, refresh)
		return exploreLoadedMsg{collections: collections, stale: stale, err: err}
	}
}

func (a *App) loadRemoteItems(collection models.Collection) tea.Cmd {
	client := a.explore
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		items, err := client.CollectionItems(ctx, collection.ID)
		return remoteItemsLoadedMsg{collection: collection, items: items, err: err}
	}
}

func (a *App) deleteRecord(kind, id, name string) tea.Cmd {
	st := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		var err error
		switch kind {
		case store.KindCollection:
			err = st.DeleteCollection(ctx, id)
		case store.KindItem:
			err = st.DeleteItem(ctx, id)
		case store.KindWish:
			err = st.DeleteWishItem(ctx, id)
		}
		return recordDeletedMsg{kind: kind, name: name, err: err}
	}
}

func statusCmd(format string, args ...any) tea.Cmd {
	msg := StatusMsg(fmt.Sprintf(format, args...))
	return func() tea.Msg { return msg }
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadSnapshot(), a.loadExplore(false))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.searchBar.SetWidth(msg.Width)
		return a, nil

	case snapshotLoadedMsg:
		if msg.err != nil {
			a.logger.Error("loading records", "err", msg.err)
			return a, statusCmd("Failed to load records: %v", msg.err)
		}
		a.applySnapshot(msg.snap)
		return a, nil

	case exploreLoadedMsg:
		a.exploreErr = msg.err
		a.stale = msg.stale
		if msg.err != nil {
			a.logger.Warn("loading explore", "err", msg.err)
			if a.active == a.tabIndex(a.exploreTab) {
				return a, statusCmd("Explore unavailable: %v", msg.err)
			}
			return a, nil
		}
		a.exploreTab.setSource(msg.collections)
		if msg.stale {
			return a, statusCmd("Explore is offline, showing the cached catalogue")
		}
		return a, nil

	case remoteItemsLoadedMsg:
		if msg.err != nil {
			return a, statusCmd("Failed to load %s: %v", msg.collection.Name, msg.err)
		}
		tab := newItemsTab(a.listOptions(), msg.collection.Name)
		tab.setSource(msg.items)
		a.openDetail(tab, "")
		return a, nil

	case recordDeletedMsg:
		if msg.err != nil {
			a.logger.Error("deleting record", "kind", msg.kind, "name", msg.name, "err", msg.err)
			return a, statusCmd("Failed to delete %s: %v", msg.name, msg.err)
		}
		a.logger.Info("deleted record", "kind", msg.kind, "name", msg.name)
		return a, tea.Batch(statusCmd("Deleted %s %q", msg.kind, msg.name), a.loadSnapshot())

	case StatusMsg:
		a.statusMsg = string(msg)
		a.statusID++
		id := a.statusID
		return a, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })

	case clearStatusMsg:
		if msg.id == a.statusID {
			a.statusMsg = ""
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.confirm.Active() {
			return a, a.confirm.Update(msg)
		}
		if a.searchBar.Active() {
			return a.updateSearch(msg)
		}
		return a.handleKey(msg)
	}

	return a, nil
}

// applySnapshot feeds freshly loaded records to every local tab
func (a *App) applySnapshot(snap *store.Snapshot) {
	a.snap = snap
	a.collections.setSource(snap.Collections)
	a.items.setSource(snap.Items)
	a.wishes.setSource(snap.WishItems)

	if a.detailID == "" {
		return
	}
	collection, ok := snap.CollectionByID(a.detailID)
	if !ok {
		a.closeDetail()
		return
	}
	if tab, ok := a.detail.(*controllerTab[lists.PositionedItem, lists.ItemSortKey, lists.ItemFilter]); ok {
		tab.title = collection.Name
		lists.ShowCollection(tab.c, collection, snap.Items)
		tab.clamp()
	}
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		a.searchBar.SetActive(false)
		return a, nil
	}

	var cmd tea.Cmd
	a.searchBar, cmd = a.searchBar.Update(msg)
	a.current().SetQuery(a.searchBar.Value())
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab := a.current()

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		if a.detail != nil {
			a.closeDetail()
		}
	case "tab":
		a.switchTab((a.active + 1) % len(a.tabs))
	case "shift+tab":
		a.switchTab((a.active + len(a.tabs) - 1) % len(a.tabs))
	case "1", "2", "3", "4":
		a.switchTab(int(msg.Runes[0] - '1'))
	case "up", "k":
		a.move(-1)
	case "down", "j":
		a.move(1)
	case "pgup":
		a.move(-a.tableHeight())
	case "pgdown":
		a.move(a.tableHeight())
	case "g", "home":
		tab.SetCursor(0)
	case "G", "end":
		tab.SetCursor(max(tab.Len()-1, 0))
	case "/":
		a.searchBar.SetValue(tab.Query())
		a.searchBar.SetActive(true)
		return a, nil
	case "s":
		tab.NextSort(false)
	case "S":
		tab.NextSort(true)
	case "f":
		tab.CycleCategory()
		a.searchBar.SetValue(tab.Query())
	case "p":
		tab.ToggleBool()
		a.searchBar.SetValue(tab.Query())
	case "r":
		tab.Reset()
		a.searchBar.SetValue(tab.Query())
	case "v":
		a.showPreview = !a.showPreview
	case "enter":
		return a, a.open()
	case "y":
		return a, a.copySelected()
	case "d":
		a.confirmDelete()
	case "R":
		if a.current() == listTab(a.exploreTab) {
			return a, a.loadExplore(true)
		}
		return a, a.loadSnapshot()
	}
	return a, nil
}

func (a *App) current() listTab {
	if a.detail != nil {
		return a.detail
	}
	return a.tabs[a.active]
}

func (a *App) tabIndex(tab listTab) int {
	for i, t := range a.tabs {
		if t == tab {
			return i
		}
	}
	return -1
}

func (a *App) switchTab(i int) {
	if i < 0 || i >= len(a.tabs) {
		return
	}
	a.closeDetail()
	a.active = i
	a.searchBar.SetValue(a.current().Query())
}

func (a *App) move(delta int) {
	tab := a.current()
	if tab.Len() == 0 {
		return
	}
	tab.SetCursor(min(max(tab.Cursor()+delta, 0), tab.Len()-1))
}

// open shows the items of the selected collection. Local collections come
// from the snapshot, explore collections are fetched.
func (a *App) open() tea.Cmd {
	if a.detail != nil {
		return nil
	}

	switch a.tabs[a.active] {
	case listTab(a.collections):
		collection, ok := a.collections.record(a.collections.Cursor())
		if !ok || a.snap == nil {
			return nil
		}
		a.openDetail(newCollectionItemsTab(a.listOptions(), collection, a.snap.Items), collection.ID)
	case listTab(a.exploreTab):
		collection, ok := a.exploreTab.record(a.exploreTab.Cursor())
		if !ok {
			return nil
		}
		return tea.Batch(statusCmd("Loading %s...", collection.Name), a.loadRemoteItems(collection))
	}
	return nil
}

func (a *App) openDetail(tab listTab, collectionID string) {
	a.detail = tab
	a.detailID = collectionID
	a.searchBar.SetValue(tab.Query())
}

func (a *App) closeDetail() {
	a.detail = nil
	a.detailID = ""
	a.searchBar.SetValue(a.current().Query())
}

// selectedKind is the store kind of the records in the current list, or ""
// when they cannot be deleted from here
func (a *App) selectedKind() string {
	if a.detail != nil {
		if a.detailID == "" {
			return ""
		}
		return store.KindItem
	}
	switch a.tabs[a.active] {
	case listTab(a.collections):
		return store.KindCollection
	case listTab(a.items):
		return store.KindItem
	case listTab(a.wishes):
		return store.KindWish
	}
	return ""
}

func (a *App) confirmDelete() {
	tab := a.current()
	kind := a.selectedKind()
	id, name := tab.ID(tab.Cursor()), tab.Name(tab.Cursor())
	if kind == "" || id == "" {
		return
	}
	a.confirm.Show(fmt.Sprintf("Delete %s %q?", kind, name), true, func() tea.Cmd {
		return a.deleteRecord(kind, id, name)
	})
}

func (a *App) copySelected() tea.Cmd {
	tab := a.current()
	name := tab.Name(tab.Cursor())
	if name == "" {
		return nil
	}
	if err := writeClipboard(name); err != nil {
		return statusCmd("Failed to copy: %v", err)
	}
	return statusCmd("Copied %q to clipboard", name)
}

func (a *App) categoryColor(name string) string {
	if a.registry == nil {
		return models.CategoryColor(models.NormalizeCategory(name), "")
	}
	return a.registry.Color(name)
}

// tableHeight is the number of rows left for records once the header,
// search bar, info line, column header, preview, footer and status bar
// are drawn
func (a *App) tableHeight() int {
	used := 1 + 3 + 1 + 1 + 1
	if a.showPreview {
		used += previewHeight + 1
	}
	if a.statusMsg != "" {
		used++
	}
	return max(a.height-used, 1)
}

func (a *App) renderInfo(tab listTab) string {
	info := renderInfo(tab, a.width)
	if tab == listTab(a.exploreTab) && a.stale {
		info += " " + EmptyActiveStyle.Render("offline")
	}
	return info
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	tab := a.current()
	titles := make([]string, len(a.tabs))
	for i, t := range a.tabs {
		titles[i] = t.Title()
	}
	breadcrumb := ""
	if a.detail != nil {
		breadcrumb = a.detail.Title()
	}

	sections := []string{
		renderHeader(a.width, titles, a.active, breadcrumb),
		a.searchBar.View(),
		a.renderInfo(tab),
	}

	if tab == listTab(a.exploreTab) && a.exploreErr != nil && tab.Len() == 0 {
		body := ErrorStyle.Render("  Explore unavailable: " + a.exploreErr.Error())
		sections = append(sections, lipgloss.NewStyle().Height(a.tableHeight()+1).Render(body))
	} else {
		sections = append(sections, renderTable(tab, a.width, a.tableHeight(), a.categoryColor))
	}

	if a.showPreview {
		sections = append(sections, renderPreview(tab, a.width))
	}
	if a.confirm.Active() {
		sections = append(sections, a.confirm.View(a.width))
	} else {
		sections = append(sections, renderFooter(a.searchBar.Active(), a.detail != nil, a.width))
	}

	if a.statusMsg != "" {
		sections = append(sections, StatusStyle.Render(a.statusMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
